package ritm

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

var testSchema = Schema{CustomerTag: "urn:scim:schemas:extension:plus:1.0", CustomerKey: "CustomerId"}

const profileJSON = `{
	"profileInformation": {
		"uid": "8c1f4a2e-7b7d-4c55-9a0e-2f3b1c9d0e11",
		"emails": [
			{"value": "jan@example.com", "type": "home", "primary": true},
			{"value": "jan@work.example.com", "type": "work", "primary": false},
			{"value": "j.jansen@example.com", "type": "home", "primary": false}
		],
		"phoneNumbers": [
			{"value": "+31612345678", "type": "mobile"},
			{"value": "+31201234567", "type": "home"},
			{"value": "+31687654321", "type": "mobile"}
		],
		"PostAddresses": [
			{"Street": "Damrak", "HouseNumber": 1, "HouseNumberAddition": {}, "PostalCode": "1012 LG", "City": "Amsterdam", "Country": "Nederland", "CountryISO2": "NL"}
		],
		"InvoiceAddresses": [
			{"POBoxNumber": "100", "POBoxNumberPostalCode": "1000 AA", "POBoxNumberCity": "Amsterdam"}
		],
		"Loyalty": [
			{"AssetID": "A-1", "KindOfSaving": "stamps"}
		],
		"IsEmployee": "1",
		"HasEmployeeDiscount": false,
		"urn:scim:schemas:extension:iwelcome:1.0": {
			"state": "ACTIVE",
			"birthDate": "1980-05-17",
			"lastSuccessfulLogin": "2024-02-28T08:15:00Z",
			"IsPasswordChangeRequired": false
		},
		"urn:scim:schemas:extension:plus:1.0": {
			"CustomerId": 1000,
			"IsB2B": true,
			"IsB2C": "true",
			"HasLoyaltyCard": 1,
			"HasAgreedPLUSPrivacyPolicy": true,
			"PrivacyPolicyConsentDate": "2023-11-02T12:30:00Z",
			"LastActivityDate": "2024-03-01 10:00:00",
			"FirstName": "Jan",
			"SurName": "Jansen",
			"SurNamePrefix": "van",
			"DeliveryAddresses": [
				{"Street": "Kalverstraat", "HouseNumber": "92", "HouseNumberAddition": "B", "PostalCode": "1012 PH", "City": "Amsterdam"}
			],
			"B2BAccounts": [
				{"VATNumber": "NL001234567B01", "CompanyName": "Jansen BV", "KVKNumber": "12345678"}
			],
			"B2B": {"CompanyName": "Jansen BV", "Department": "Inkoop", "CostCenter": "CC-7"},
			"Payment": {"DebitID": "D-9", "PreferredPaymentMethod": "iDEAL", "IsDirectDebit": "true", "IsSaleOnAccount": true, "PrintItemsOnCustomerInvoice": "false"},
			"PreferencesOrder": {"CommunicationLevel": "all", "MyStore": "Utrecht", "AlternateProduct": "yes"}
		}
	}
}`

const minimalProfileJSON = `{
	"profileInformation": {
		"uid": "u-min",
		"emails": [],
		"urn:scim:schemas:extension:iwelcome:1.0": {"state": "GRACE"},
		"urn:scim:schemas:extension:plus:1.0": {"CustomerId": "C-1"}
	}
}`

func decode(t *testing.T, s string) map[string]any {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

func profile(m map[string]any) map[string]any {
	return m["profileInformation"].(map[string]any)
}

func customerBlock(m map[string]any) map[string]any {
	return profile(m)[testSchema.CustomerTag].(map[string]any)
}

// viaJSON pushes a wire map through encoding/json like a real request would.
func viaJSON(t *testing.T, m map[string]any) map[string]any {
	t.Helper()

	b, err := json.Marshal(m)
	require.NoError(t, err)
	return decode(t, string(b))
}
