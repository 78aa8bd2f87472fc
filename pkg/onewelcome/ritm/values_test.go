package ritm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
)

func TestParsePaymentLiteralTrue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"string true", "true", true},
		{"boolean true", true, false},
		{"string TRUE", "TRUE", false},
		{"string 1", "1", false},
		{"string false", "false", false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := map[string]any{}
			if tt.value != nil {
				m["IsDirectDebit"] = tt.value
				m["IsSaleOnAccount"] = tt.value
				m["PrintItemsOnCustomerInvoice"] = tt.value
			}

			p, err := ParsePayment(m)
			require.NoError(t, err)
			require.Equal(t, tt.want, p.IsDirectDebit())
			require.Equal(t, tt.want, p.IsSaleOnAccount())
			require.Equal(t, tt.want, p.ShouldPrintItemsOnCustomerInvoice())
		})
	}
}

func TestPaymentWireFormatUsesStrings(t *testing.T) {
	t.Parallel()

	p, err := ParsePayment(map[string]any{"IsDirectDebit": "true", "DebitID": json.Number("42")})
	require.NoError(t, err)

	w := p.ToWireFormat()
	require.Equal(t, "true", w["IsDirectDebit"])
	require.Equal(t, "false", w["IsSaleOnAccount"])
	require.Equal(t, "42", w["DebitID"])
	require.Nil(t, w["PreferredPaymentMethod"])

	again, err := ParsePayment(w)
	require.NoError(t, err)
	require.Equal(t, p, again)
}

func TestParseAddress(t *testing.T) {
	t.Parallel()

	t.Run("composite addition becomes absent", func(t *testing.T) {
		t.Parallel()

		for _, addition := range []any{map[string]any{"value": "A"}, []any{"A"}} {
			a, err := ParseAddress(map[string]any{"Street": "Damrak", "HouseNumberAddition": addition})
			require.NoError(t, err)
			require.Nil(t, a.HouseNumberAddition())
			require.Equal(t, "Damrak", *a.Street())
		}
	})

	t.Run("numeric house number is coerced", func(t *testing.T) {
		t.Parallel()

		a, err := ParseAddress(map[string]any{"HouseNumber": json.Number("12")})
		require.NoError(t, err)
		require.Equal(t, "12", *a.HouseNumber())
	})

	t.Run("all fields optional", func(t *testing.T) {
		t.Parallel()

		a, err := ParseAddress(map[string]any{})
		require.NoError(t, err)
		require.Nil(t, a.Street())
		require.Nil(t, a.POBoxNumberCity())
		require.Len(t, a.ToWireFormat(), 10)
	})

	t.Run("composite street is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAddress(map[string]any{"Street": map[string]any{}})
		var ve *onewelcome.ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "Street", ve.Field)
	})
}

func TestParseEmailRequiredKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"value", "type", "primary"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			m := map[string]any{"value": "a@example.com", "type": "home", "primary": true}
			delete(m, key)

			_, err := ParseEmail(m)
			var ve *onewelcome.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, key, ve.Field)
		})
	}

	t.Run("primary must be boolean", func(t *testing.T) {
		t.Parallel()

		_, err := ParseEmail(map[string]any{"value": "a@example.com", "type": "home", "primary": "yes"})
		var ve *onewelcome.ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "primary", ve.Field)
	})
}

func TestParsePhoneNumberRequiredKeys(t *testing.T) {
	t.Parallel()

	_, err := ParsePhoneNumber(map[string]any{"type": "mobile"})
	var ve *onewelcome.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "value", ve.Field)

	_, err = ParsePhoneNumber(map[string]any{"value": "+31"})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "type", ve.Field)
}

func TestFilterByType(t *testing.T) {
	t.Parallel()

	emails := NewEmailCollection(
		NewEmail("a@example.com", "home", true),
		NewEmail("b@example.com", "work", false),
		NewEmail("c@example.com", "home", false),
	)

	home := emails.FilterByType("home")
	require.Equal(t, 2, home.Len())
	require.Equal(t, []string{"a@example.com", "c@example.com"}, emailValues(home))
	require.Equal(t, 3, emails.Len())

	none := emails.FilterByType("other")
	require.Equal(t, 0, none.Len())
	require.Empty(t, none.ToWireFormat())
	require.NotNil(t, none.ToWireFormat())

	phones := NewPhoneNumberCollection(
		NewPhoneNumber("1", "mobile"),
		NewPhoneNumber("2", "home"),
		NewPhoneNumber("3", "mobile"),
	)
	mobile := phones.FilterByType("mobile")
	require.Equal(t, 2, mobile.Len())
	first, _ := mobile.First()
	require.Equal(t, "1", first.Value())
	last, _ := mobile.At(1)
	require.Equal(t, "3", last.Value())
}

func TestParseCollectionFailsOnFirstInvalid(t *testing.T) {
	t.Parallel()

	_, err := ParseEmailCollection([]any{
		map[string]any{"value": "a", "type": "home", "primary": true},
		map[string]any{"value": "b", "type": "home"},
	})

	var ve *onewelcome.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "[1].primary", ve.Field)
}

func emailValues(c EmailCollection) []string {
	var out []string
	for _, e := range c.All() {
		out = append(out, e.Value())
	}
	return out
}
