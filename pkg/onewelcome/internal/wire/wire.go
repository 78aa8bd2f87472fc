// Package wire extracts typed values from untyped, decoded JSON objects.
//
// Required accessors fail with a *ValidationError naming the offending key.
// Optional accessors return nil or a zero value when the key is absent or null
// and coerce scalars with spf13/cast.
package wire

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ValidationError reports a required key that is missing or malformed.
// Field is the dotted path of the key relative to the value being parsed,
// e.g. "profileInformation.emails[1].primary".
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Reason)
}

// Missing returns a ValidationError for an absent required key.
func Missing(field string) error {
	return &ValidationError{Field: field, Reason: "required key is missing"}
}

// Invalid returns a ValidationError for a key with the wrong shape or value.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Within prefixes the field path of a ValidationError with the key of the
// enclosing object. Other errors are returned unchanged.
func Within(prefix string, err error) error {
	ve, ok := err.(*ValidationError)
	if !ok || prefix == "" {
		return err
	}

	field := prefix
	switch {
	case ve.Field == "":
	case strings.HasPrefix(ve.Field, "["):
		field = prefix + ve.Field
	default:
		field = prefix + "." + ve.Field
	}

	return &ValidationError{Field: field, Reason: ve.Reason}
}

// Index renders the path element of a list entry.
func Index(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func present(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func isComposite(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// scalarString converts JSON scalars to their string form.
func scalarString(v any) (string, error) {
	if n, ok := v.(json.Number); ok {
		return n.String(), nil
	}
	if isComposite(v) {
		return "", fmt.Errorf("expected a scalar, got %T", v)
	}
	return cast.ToStringE(v)
}

// RequireString returns the string stored at key. The value must be a JSON
// string; other types are rejected rather than coerced.
func RequireString(m map[string]any, key string) (string, error) {
	v, ok := present(m, key)
	if !ok {
		return "", Missing(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", Invalid(key, fmt.Sprintf("expected a string, got %T", v))
	}
	return s, nil
}

// RequireScalar returns the string form of a required scalar value, so a
// numeric identifier such as 1000 yields "1000".
func RequireScalar(m map[string]any, key string) (string, error) {
	v, ok := present(m, key)
	if !ok {
		return "", Missing(key)
	}
	s, err := scalarString(v)
	if err != nil {
		return "", Invalid(key, err.Error())
	}
	return s, nil
}

// OptionalString returns the string form of an optional scalar, or nil when
// the key is absent or null. Composite values are rejected.
func OptionalString(m map[string]any, key string) (*string, error) {
	v, ok := present(m, key)
	if !ok {
		return nil, nil
	}
	s, err := scalarString(v)
	if err != nil {
		return nil, Invalid(key, err.Error())
	}
	return &s, nil
}

// LenientString behaves like OptionalString but maps composite values to nil
// instead of failing.
func LenientString(m map[string]any, key string) *string {
	v, ok := present(m, key)
	if !ok || isComposite(v) {
		return nil
	}
	s, err := scalarString(v)
	if err != nil {
		return nil
	}
	return &s
}

// RequireBool returns the JSON boolean stored at key.
func RequireBool(m map[string]any, key string) (bool, error) {
	v, ok := present(m, key)
	if !ok {
		return false, Missing(key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, Invalid(key, fmt.Sprintf("expected a boolean, got %T", v))
	}
	return b, nil
}

// Flag reads an optional truthy value. Absent, null and unparsable values are
// false; "1", 1, "true" and true are true.
func Flag(m map[string]any, key string) bool {
	v, ok := present(m, key)
	if !ok || isComposite(v) {
		return false
	}
	if n, ok := v.(json.Number); ok {
		v = n.String()
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// RequireFlag is Flag for a key that must be present.
func RequireFlag(m map[string]any, key string) (bool, error) {
	if _, ok := present(m, key); !ok {
		return false, Missing(key)
	}
	return Flag(m, key), nil
}

// LiteralTrue reports whether the value at key is exactly the string "true".
// A JSON boolean true does not qualify.
func LiteralTrue(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && s == "true"
}

// RequireInt returns the integer form of a required scalar.
func RequireInt(m map[string]any, key string) (int, error) {
	i, err := RequireInt64(m, key)
	if err != nil {
		return 0, err
	}
	if int64(int(i)) != i {
		return 0, Invalid(key, fmt.Sprintf("%d overflows int", i))
	}
	return int(i), nil
}

// RequireInt64 returns the 64-bit integer form of a required scalar. Strings
// and JSON numbers are read as base 10 only, so "010" is ten and "0x10" fails.
func RequireInt64(m map[string]any, key string) (int64, error) {
	v, ok := present(m, key)
	if !ok {
		return 0, Missing(key)
	}
	if isComposite(v) {
		return 0, Invalid(key, fmt.Sprintf("expected an integer, got %T", v))
	}
	i, err := toInt64(v)
	if err != nil {
		return 0, Invalid(key, err.Error())
	}
	return i, nil
}

func toInt64(v any) (int64, error) {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
	case bool:
		return 0, fmt.Errorf("expected an integer, got bool")
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return cast.ToInt64E(n)
	default:
		return cast.ToInt64E(v)
	}
	return strconv.ParseInt(s, 10, 64)
}

// RequireTime parses a required timestamp. Strings are parsed in any of the
// layouts cast understands (RFC 3339 among them); numbers are unix seconds.
func RequireTime(m map[string]any, key string) (time.Time, error) {
	v, ok := present(m, key)
	if !ok {
		return time.Time{}, Missing(key)
	}
	t, err := toTime(v)
	if err != nil {
		return time.Time{}, Invalid(key, err.Error())
	}
	return t, nil
}

// OptionalTime parses an optional timestamp; absent, null and empty values
// yield the zero time.
func OptionalTime(m map[string]any, key string) (time.Time, error) {
	v, ok := present(m, key)
	if !ok {
		return time.Time{}, nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := toTime(v)
	if err != nil {
		return time.Time{}, Invalid(key, err.Error())
	}
	return t, nil
}

func toTime(v any) (time.Time, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(i, 0).UTC(), nil
	case float64:
		return time.Unix(int64(n), 0).UTC(), nil
	case int:
		return time.Unix(int64(n), 0).UTC(), nil
	case int64:
		return time.Unix(n, 0).UTC(), nil
	case map[string]any, []any:
		return time.Time{}, fmt.Errorf("expected a timestamp, got %T", v)
	}
	return cast.ToTimeE(v)
}

// RequireObject returns the nested object stored at key.
func RequireObject(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, Missing(key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, Invalid(key, fmt.Sprintf("expected an object, got %T", v))
	}
	return obj, nil
}

// OptionalObject returns the nested object stored at key, or nil when the key
// is absent or null.
func OptionalObject(m map[string]any, key string) (map[string]any, error) {
	v, ok := present(m, key)
	if !ok {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, Invalid(key, fmt.Sprintf("expected an object, got %T", v))
	}
	return obj, nil
}

// RequireList returns the list stored at key.
func RequireList(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, Missing(key)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, Invalid(key, fmt.Sprintf("expected a list, got %T", v))
	}
	return list, nil
}

// OptionalList returns the list stored at key, or nil when the key is absent
// or null.
func OptionalList(m map[string]any, key string) ([]any, error) {
	v, ok := present(m, key)
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, Invalid(key, fmt.Sprintf("expected a list, got %T", v))
	}
	return list, nil
}

// Objects parses every element of list with parse, failing on the first
// element that is not an object or that parse rejects.
func Objects[T any](list []any, parse func(map[string]any) (T, error)) ([]T, error) {
	out := make([]T, 0, len(list))
	for i, v := range list {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, Invalid(Index(i), fmt.Sprintf("expected an object, got %T", v))
		}
		item, err := parse(obj)
		if err != nil {
			return nil, Within(Index(i), err)
		}
		out = append(out, item)
	}
	return out, nil
}

// Deref returns the pointed-to string or nil for use in wire maps.
func Deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
