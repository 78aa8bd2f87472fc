// Package collection provides the ordered, homogeneous container shared by
// every OneWelcome value-object collection.
//
// A Collection is not safe for concurrent mutation. Callers that append from
// several goroutines must serialize access themselves.
package collection

import "iter"

// Collection is an ordered sequence of items with an internal cursor.
// The zero value is an empty, usable collection. Read-only methods have value
// receivers so they can be called on a collection returned by a getter. The
// cursor methods and Append need an addressable collection.
type Collection[T any] struct {
	items  []T
	cursor int
}

// New returns a collection holding items in order.
func New[T any](items ...T) Collection[T] {
	c := Collection[T]{}
	c.items = append(c.items, items...)
	return c
}

// Append adds item to the end of the collection.
func (c *Collection[T]) Append(item T) {
	c.items = append(c.items, item)
}

// Len returns the number of items.
func (c Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the underlying slice.
func (c Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// At returns the item at index i.
func (c Collection[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// All iterates over index/item pairs without touching the cursor.
func (c Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Current returns the item under the cursor.
func (c *Collection[T]) Current() (T, bool) {
	return c.At(c.cursor)
}

// Next advances the cursor and returns the item it lands on.
func (c *Collection[T]) Next() (T, bool) {
	if c.cursor < len(c.items) {
		c.cursor++
	}
	return c.At(c.cursor)
}

// Rewind moves the cursor back to the first item.
func (c *Collection[T]) Rewind() {
	c.cursor = 0
}

// First returns the first item regardless of the cursor.
func (c Collection[T]) First() (T, bool) {
	return c.At(0)
}

// Clone returns an independent copy with the cursor rewound.
func (c Collection[T]) Clone() Collection[T] {
	return New(c.items...)
}

// Filter returns a new collection with the items for which keep returns true,
// in their original order. The receiver is not modified.
func (c Collection[T]) Filter(keep func(T) bool) Collection[T] {
	out := Collection[T]{}
	for _, item := range c.items {
		if keep(item) {
			out.items = append(out.items, item)
		}
	}
	return out
}

// WireList maps every item through toWire. The result is never nil.
func (c Collection[T]) WireList(toWire func(T) map[string]any) []any {
	out := make([]any, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, toWire(item))
	}
	return out
}
