package notification

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
	"github.com/sellvation/onewelcome/pkg/onewelcome/lifecycle"
)

const pageJSON = `{
  "page": 1,
  "size": 2,
  "results": [
    {
      "version": "1.0",
      "event_type_id": "5",
      "event_type_details": {"category": "IDENTITY", "name": "STATUS_CHANGED"},
      "timestamp": "2024-03-01T10:15:00Z",
      "user": {"id": "user-1"},
      "identity_status_transition": {"old_state": "GRACE", "new_state": "ACTIVE"}
    },
    {
      "version": "1.0",
      "event_type_id": 7,
      "event_type_details": {"category": "IDENTITY", "name": "LOGIN"},
      "timestamp": 1709288100,
      "user": {"id": "user-2"}
    }
  ]
}`

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

func eventMap(t *testing.T, i int) map[string]any {
	t.Helper()
	results := decode(t, pageJSON)["results"].([]any)
	return results[i].(map[string]any)
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	e, err := ParseEvent(eventMap(t, 0))
	require.NoError(t, err)
	require.Equal(t, "1.0", e.Version())
	require.Equal(t, "5", e.TypeID())
	require.Equal(t, "IDENTITY", e.Category())
	require.Equal(t, "STATUS_CHANGED", e.Name())
	require.Equal(t, "user-1", e.UserID())
	require.True(t, e.Timestamp().Equal(time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)))

	state, ok := e.State()
	require.True(t, ok)
	require.Equal(t, lifecycle.Active, state)

	plain, err := ParseEvent(eventMap(t, 1))
	require.NoError(t, err)
	require.Equal(t, "7", plain.TypeID())
	require.Equal(t, int64(1709288100), plain.Timestamp().Unix())
	_, ok = plain.State()
	require.False(t, ok)
}

func TestParseEventRequiredKeys(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		edit  func(m map[string]any)
		field string
	}{
		{"version", func(m map[string]any) { delete(m, "version") }, "version"},
		{"type id", func(m map[string]any) { delete(m, "event_type_id") }, "event_type_id"},
		{"details", func(m map[string]any) { delete(m, "event_type_details") }, "event_type_details"},
		{"details shape", func(m map[string]any) { m["event_type_details"] = "IDENTITY" }, "event_type_details"},
		{"category", func(m map[string]any) {
			delete(m["event_type_details"].(map[string]any), "category")
		}, "event_type_details.category"},
		{"name", func(m map[string]any) {
			delete(m["event_type_details"].(map[string]any), "name")
		}, "event_type_details.name"},
		{"timestamp", func(m map[string]any) { delete(m, "timestamp") }, "timestamp"},
		{"bad timestamp", func(m map[string]any) { m["timestamp"] = "yesterday-ish" }, "timestamp"},
		{"user", func(m map[string]any) { delete(m, "user") }, "user"},
		{"user id", func(m map[string]any) { delete(m["user"].(map[string]any), "id") }, "user.id"},
		{"withdrawn", func(m map[string]any) {
			m["identity_status_transition"].(map[string]any)["new_state"] = "WITHDRAWN"
		}, "identity_status_transition.new_state"},
		{"blocked", func(m map[string]any) {
			m["identity_status_transition"].(map[string]any)["new_state"] = "BLOCKED"
		}, "identity_status_transition.new_state"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := eventMap(t, 0)
			tc.edit(m)

			_, err := ParseEvent(m)
			var ve *onewelcome.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestEventAcceptsEveryEventState(t *testing.T) {
	t.Parallel()

	for _, s := range lifecycle.EventStates {
		m := eventMap(t, 0)
		m["identity_status_transition"].(map[string]any)["new_state"] = string(s)

		e, err := ParseEvent(m)
		require.NoError(t, err, s)
		got, ok := e.State()
		require.True(t, ok)
		require.Equal(t, s, got)
	}
}

func TestEventStoredRoundTrip(t *testing.T) {
	t.Parallel()

	for i := range 2 {
		e, err := ParseEvent(eventMap(t, i))
		require.NoError(t, err)

		data, err := json.Marshal(e)
		require.NoError(t, err)

		back, err := EventFromJSON(data)
		require.NoError(t, err)
		require.Equal(t, e.ToMap(), back.ToMap())
	}
}

func TestEventToMap(t *testing.T) {
	t.Parallel()

	e, err := ParseEvent(eventMap(t, 0))
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"version":   "1.0",
		"typeId":    "5",
		"category":  "IDENTITY",
		"name":      "STATUS_CHANGED",
		"userId":    "user-1",
		"timestamp": int64(1709288100),
		"state":     "ACTIVE",
	}, e.ToMap())

	plain, err := ParseEvent(eventMap(t, 1))
	require.NoError(t, err)
	require.Nil(t, plain.ToMap()["state"])
}

func TestParseStoredEvent(t *testing.T) {
	t.Parallel()

	stored := func() map[string]any {
		return map[string]any{
			"version": "1.0", "typeId": "5", "category": "IDENTITY",
			"name": "STATUS_CHANGED", "userId": "user-1",
			"timestamp": json.Number("1709288100"), "state": "GRACE",
		}
	}

	e, err := ParseStoredEvent(stored())
	require.NoError(t, err)
	state, _ := e.State()
	require.Equal(t, lifecycle.Grace, state)

	m := stored()
	m["timestamp"] = json.Number("-1")
	_, err = ParseStoredEvent(m)
	var ve *onewelcome.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "timestamp", ve.Field)

	m = stored()
	m["state"] = "BLOCKED"
	_, err = ParseStoredEvent(m)
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "state", ve.Field)

	m = stored()
	delete(m, "userId")
	_, err = ParseStoredEvent(m)
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "userId", ve.Field)

	_, err = EventFromJSON([]byte(`{"version":`))
	var se *onewelcome.SerializationError
	require.ErrorAs(t, err, &se)
}
