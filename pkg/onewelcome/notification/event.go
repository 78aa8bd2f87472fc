// Package notification maps paged OneWelcome lifecycle notifications.
package notification

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
	"github.com/sellvation/onewelcome/pkg/onewelcome/collection"
	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
	"github.com/sellvation/onewelcome/pkg/onewelcome/lifecycle"
)

// Event is a single identity lifecycle event. State is set only for status
// transitions and is always one of ACTIVE, GRACE or INACTIVE.
type Event struct {
	version   string
	typeID    string
	category  string
	name      string
	timestamp time.Time
	userID    string
	state     *lifecycle.State
}

// ParseEvent builds an Event from an entry of a notification page.
func ParseEvent(m map[string]any) (Event, error) {
	var (
		e   Event
		err error
	)

	if e.version, err = wire.RequireScalar(m, "version"); err != nil {
		return Event{}, err
	}
	if e.typeID, err = wire.RequireScalar(m, "event_type_id"); err != nil {
		return Event{}, err
	}

	details, err := wire.RequireObject(m, "event_type_details")
	if err != nil {
		return Event{}, err
	}
	if e.category, err = wire.RequireScalar(details, "category"); err != nil {
		return Event{}, wire.Within("event_type_details", err)
	}
	if e.name, err = wire.RequireScalar(details, "name"); err != nil {
		return Event{}, wire.Within("event_type_details", err)
	}

	if e.timestamp, err = wire.RequireTime(m, "timestamp"); err != nil {
		return Event{}, err
	}

	user, err := wire.RequireObject(m, "user")
	if err != nil {
		return Event{}, err
	}
	if e.userID, err = wire.RequireScalar(user, "id"); err != nil {
		return Event{}, wire.Within("user", err)
	}

	transition, err := wire.OptionalObject(m, "identity_status_transition")
	if err != nil {
		return Event{}, err
	}
	if transition != nil {
		if e.state, err = optionalState(transition, "new_state"); err != nil {
			return Event{}, wire.Within("identity_status_transition", err)
		}
	}

	return e, nil
}

// ParseStoredEvent builds an Event from the output of ToMap.
func ParseStoredEvent(m map[string]any) (Event, error) {
	var (
		e   Event
		err error
	)

	keys := []struct {
		key string
		dst *string
	}{
		{"version", &e.version},
		{"typeId", &e.typeID},
		{"category", &e.category},
		{"name", &e.name},
		{"userId", &e.userID},
	}
	for _, k := range keys {
		if *k.dst, err = wire.RequireScalar(m, k.key); err != nil {
			return Event{}, err
		}
	}

	ts, err := wire.RequireInt64(m, "timestamp")
	if err != nil {
		return Event{}, err
	}
	if ts < 0 {
		return Event{}, wire.Invalid("timestamp", "must not be negative")
	}
	e.timestamp = time.Unix(ts, 0).UTC()

	if e.state, err = optionalState(m, "state"); err != nil {
		return Event{}, err
	}

	return e, nil
}

// EventFromJSON parses the output of MarshalJSON.
func EventFromJSON(data []byte) (Event, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return Event{}, &onewelcome.SerializationError{Err: err}
	}
	return ParseStoredEvent(m)
}

func optionalState(m map[string]any, key string) (*lifecycle.State, error) {
	s, err := wire.OptionalString(m, key)
	if err != nil || s == nil {
		return nil, err
	}
	if err := lifecycle.ValidateEventState(*s); err != nil {
		return nil, wire.Invalid(key, err.Error())
	}
	state := lifecycle.State(*s)
	return &state, nil
}

func (e Event) Version() string { return e.version }

// TypeID returns the vendor event type id.
func (e Event) TypeID() string { return e.typeID }

func (e Event) Category() string { return e.category }
func (e Event) Name() string     { return e.name }

// Timestamp returns the event time.
func (e Event) Timestamp() time.Time { return e.timestamp }

// UserID returns the id of the user the event is about.
func (e Event) UserID() string { return e.userID }

// State returns the new lifecycle state, if the event carries one.
func (e Event) State() (lifecycle.State, bool) {
	if e.state == nil {
		return "", false
	}
	return *e.state, true
}

// ToMap returns the stored form, with the timestamp in unix seconds.
func (e Event) ToMap() map[string]any {
	var state any
	if e.state != nil {
		state = string(*e.state)
	}
	return map[string]any{
		"version":   e.version,
		"typeId":    e.typeID,
		"category":  e.category,
		"name":      e.name,
		"userId":    e.userID,
		"timestamp": e.timestamp.Unix(),
		"state":     state,
	}
}

// MarshalJSON encodes ToMap.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToMap())
}

// EventCollection is an ordered list of events.
type EventCollection struct {
	collection.Collection[Event]
}

// ParseEventCollection parses every event, failing on the first invalid one.
func ParseEventCollection(list []any) (EventCollection, error) {
	items, err := wire.Objects(list, ParseEvent)
	if err != nil {
		return EventCollection{}, err
	}
	return EventCollection{collection.New(items...)}, nil
}

// Transitions returns the events that carry a new lifecycle state.
func (c EventCollection) Transitions() EventCollection {
	return EventCollection{c.Filter(func(e Event) bool { return e.state != nil })}
}

// ToMap returns the stored form of every event in order.
func (c EventCollection) ToMap() []any {
	return c.WireList(Event.ToMap)
}
