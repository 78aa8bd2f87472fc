package wire

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRequireString(t *testing.T) {
	t.Parallel()

	t.Run("present", func(t *testing.T) {
		s, err := RequireString(map[string]any{"value": "a@b.nl"}, "value")
		require.NoError(t, err)
		require.Equal(t, "a@b.nl", s)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := RequireString(map[string]any{}, "value")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "value", ve.Field)
	})

	t.Run("null counts as missing", func(t *testing.T) {
		_, err := RequireString(map[string]any{"value": nil}, "value")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "value", ve.Field)
	})

	t.Run("wrong type is not coerced", func(t *testing.T) {
		_, err := RequireString(map[string]any{"value": 12.0}, "value")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Reason, "expected a string")
	})
}

func TestRequireScalarCoercesNumbers(t *testing.T) {
	t.Parallel()

	s, err := RequireScalar(map[string]any{"CustomerID": 1000.0}, "CustomerID")
	require.NoError(t, err)
	require.Equal(t, "1000", s)

	s, err = RequireScalar(map[string]any{"CustomerID": json.Number("900719925474099312")}, "CustomerID")
	require.NoError(t, err)
	require.Equal(t, "900719925474099312", s)

	_, err = RequireScalar(map[string]any{"CustomerID": map[string]any{}}, "CustomerID")
	require.Error(t, err)
}

func TestRequireIntIsBaseTen(t *testing.T) {
	t.Parallel()

	valid := []struct {
		name string
		in   any
		want int
	}{
		{"leading zero string", "010", 10},
		{"leading zero json number", json.Number("010"), 10},
		{"padded", " 42 ", 42},
		{"json number", json.Number("300"), 300},
		{"float", 60.0, 60},
		{"int", 7, 7},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := RequireInt(map[string]any{"page": tc.in}, "page")
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	for _, in := range []any{"0x10", "0b11", "1_000", "12abc", true, json.Number("1.5"), 60.5} {
		_, err := RequireInt(map[string]any{"page": in}, "page")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "%v", in)
		require.Equal(t, "page", ve.Field)
	}

	ts, err := RequireInt64(map[string]any{"timestamp": "01709288100"}, "timestamp")
	require.NoError(t, err)
	require.Equal(t, int64(1709288100), ts)
}

func TestOptionalAndLenientString(t *testing.T) {
	t.Parallel()

	s, err := OptionalString(map[string]any{}, "City")
	require.NoError(t, err)
	require.Nil(t, s)

	s, err = OptionalString(map[string]any{"City": "Ibiza"}, "City")
	require.NoError(t, err)
	require.Equal(t, "Ibiza", *s)

	_, err = OptionalString(map[string]any{"City": []any{"x"}}, "City")
	require.Error(t, err)

	require.Nil(t, LenientString(map[string]any{"HouseNumberAddition": map[string]any{"@nil": true}}, "HouseNumberAddition"))
	require.Equal(t, "A", *LenientString(map[string]any{"HouseNumberAddition": "A"}, "HouseNumberAddition"))
}

func TestFlagAndLiteralTrue(t *testing.T) {
	t.Parallel()

	require.True(t, Flag(map[string]any{"IsB2B": true}, "IsB2B"))
	require.True(t, Flag(map[string]any{"IsB2B": "1"}, "IsB2B"))
	require.False(t, Flag(map[string]any{"IsB2B": "nope"}, "IsB2B"))
	require.False(t, Flag(map[string]any{}, "IsB2B"))

	active, err := RequireFlag(map[string]any{"active": json.Number("1")}, "active")
	require.NoError(t, err)
	require.True(t, active)
	_, err = RequireFlag(map[string]any{"active": nil}, "active")
	require.Error(t, err)

	require.True(t, LiteralTrue(map[string]any{"IsDirectDebit": "true"}, "IsDirectDebit"))
	require.False(t, LiteralTrue(map[string]any{"IsDirectDebit": true}, "IsDirectDebit"))
	require.False(t, LiteralTrue(map[string]any{"IsDirectDebit": "TRUE"}, "IsDirectDebit"))
}

func TestRequireTime(t *testing.T) {
	t.Parallel()

	ts, err := RequireTime(map[string]any{"timestamp": "2021-03-04T10:11:12Z"}, "timestamp")
	require.NoError(t, err)
	require.True(t, ts.Equal(time.Date(2021, 3, 4, 10, 11, 12, 0, time.UTC)))

	ts, err = RequireTime(map[string]any{"timestamp": json.Number("1614852672")}, "timestamp")
	require.NoError(t, err)
	require.Equal(t, int64(1614852672), ts.Unix())

	_, err = RequireTime(map[string]any{"timestamp": "not a date"}, "timestamp")
	require.Error(t, err)
}

func TestWithinBuildsPaths(t *testing.T) {
	t.Parallel()

	err := Within("profileInformation", Within("emails", Within(Index(1), Missing("primary"))))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "profileInformation.emails[1].primary", ve.Field)

	other := errors.New("boom")
	require.Same(t, other, Within("x", other))
}

func TestObjectsFailsOnFirstBadElement(t *testing.T) {
	t.Parallel()

	parse := func(m map[string]any) (string, error) {
		return RequireString(m, "value")
	}

	out, err := Objects([]any{
		map[string]any{"value": "a"},
		map[string]any{"value": "b"},
	}, parse)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, out)

	_, err = Objects([]any{map[string]any{"value": "a"}, map[string]any{}}, parse)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "[1].value", ve.Field)

	_, err = Objects([]any{"scalar"}, parse)
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "[0]", ve.Field)
}
