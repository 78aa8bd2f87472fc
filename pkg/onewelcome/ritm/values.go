package ritm

import "github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"

// ============================================================================
// Contact Details
// ============================================================================

// Email is an email address on a profile.
type Email struct {
	value   string
	typ     string
	primary bool
}

// NewEmail returns an Email.
func NewEmail(value, typ string, primary bool) Email {
	return Email{value: value, typ: typ, primary: primary}
}

// ParseEmail requires value, type and primary.
func ParseEmail(m map[string]any) (Email, error) {
	var (
		e   Email
		err error
	)
	if e.value, err = wire.RequireString(m, "value"); err != nil {
		return Email{}, err
	}
	if e.typ, err = wire.RequireString(m, "type"); err != nil {
		return Email{}, err
	}
	if e.primary, err = wire.RequireBool(m, "primary"); err != nil {
		return Email{}, err
	}
	return e, nil
}

func (e Email) Value() string { return e.value }
func (e Email) Type() string  { return e.typ }

// Primary reports whether the email is the preferred address.
func (e Email) Primary() bool { return e.primary }

// ToWireFormat returns the wire form.
func (e Email) ToWireFormat() map[string]any {
	return map[string]any{
		"value":   e.value,
		"type":    e.typ,
		"primary": e.primary,
	}
}

// PhoneNumber is a phone number on a profile.
type PhoneNumber struct {
	value string
	typ   string
}

// NewPhoneNumber returns a PhoneNumber.
func NewPhoneNumber(value, typ string) PhoneNumber {
	return PhoneNumber{value: value, typ: typ}
}

// ParsePhoneNumber requires value and type.
func ParsePhoneNumber(m map[string]any) (PhoneNumber, error) {
	var (
		p   PhoneNumber
		err error
	)
	if p.value, err = wire.RequireString(m, "value"); err != nil {
		return PhoneNumber{}, err
	}
	if p.typ, err = wire.RequireString(m, "type"); err != nil {
		return PhoneNumber{}, err
	}
	return p, nil
}

func (p PhoneNumber) Value() string { return p.value }
func (p PhoneNumber) Type() string  { return p.typ }

// ToWireFormat returns the wire form.
func (p PhoneNumber) ToWireFormat() map[string]any {
	return map[string]any{
		"value": p.value,
		"type":  p.typ,
	}
}

// ============================================================================
// Address
// ============================================================================

// Address is a postal, invoice or delivery address. Every field is optional.
type Address struct {
	street                *string
	houseNumber           *string
	houseNumberAddition   *string
	postalCode            *string
	city                  *string
	country               *string
	countryISO2           *string
	poBoxNumber           *string
	poBoxNumberPostalCode *string
	poBoxNumberCity       *string
}

// ParseAddress reads the optional address keys. A HouseNumberAddition that
// arrives as an object or list is treated as absent.
func ParseAddress(m map[string]any) (Address, error) {
	a := Address{houseNumberAddition: wire.LenientString(m, "HouseNumberAddition")}

	fields := []struct {
		key string
		dst **string
	}{
		{"Street", &a.street},
		{"HouseNumber", &a.houseNumber},
		{"PostalCode", &a.postalCode},
		{"City", &a.city},
		{"Country", &a.country},
		{"CountryISO2", &a.countryISO2},
		{"POBoxNumber", &a.poBoxNumber},
		{"POBoxNumberPostalCode", &a.poBoxNumberPostalCode},
		{"POBoxNumberCity", &a.poBoxNumberCity},
	}
	for _, f := range fields {
		v, err := wire.OptionalString(m, f.key)
		if err != nil {
			return Address{}, err
		}
		*f.dst = v
	}

	return a, nil
}

func (a Address) Street() *string      { return a.street }
func (a Address) HouseNumber() *string { return a.houseNumber }

// HouseNumberAddition returns the suffix after the house number, such as "A"
// or "bis".
func (a Address) HouseNumberAddition() *string { return a.houseNumberAddition }

func (a Address) PostalCode() *string { return a.postalCode }
func (a Address) City() *string       { return a.city }
func (a Address) Country() *string    { return a.country }

// CountryISO2 returns the two letter ISO 3166 country code.
func (a Address) CountryISO2() *string { return a.countryISO2 }

// POBoxNumber returns the post office box number.
func (a Address) POBoxNumber() *string { return a.poBoxNumber }

func (a Address) POBoxNumberPostalCode() *string { return a.poBoxNumberPostalCode }
func (a Address) POBoxNumberCity() *string       { return a.poBoxNumberCity }

// ToWireFormat returns the wire form. Absent fields are written as null.
func (a Address) ToWireFormat() map[string]any {
	return map[string]any{
		"Street":                wire.Deref(a.street),
		"HouseNumber":           wire.Deref(a.houseNumber),
		"HouseNumberAddition":   wire.Deref(a.houseNumberAddition),
		"PostalCode":            wire.Deref(a.postalCode),
		"City":                  wire.Deref(a.city),
		"Country":               wire.Deref(a.country),
		"CountryISO2":           wire.Deref(a.countryISO2),
		"POBoxNumber":           wire.Deref(a.poBoxNumber),
		"POBoxNumberPostalCode": wire.Deref(a.poBoxNumberPostalCode),
		"POBoxNumberCity":       wire.Deref(a.poBoxNumberCity),
	}
}

// ============================================================================
// Business Accounts
// ============================================================================

// B2B describes a business account.
type B2B struct {
	vatNumber               *string
	companyName             *string
	department              *string
	costCenter              *string
	chamberOfCommerceNumber *string
}

// ParseB2B reads the optional business account keys.
func ParseB2B(m map[string]any) (B2B, error) {
	var b B2B
	fields := []struct {
		key string
		dst **string
	}{
		{"VATNumber", &b.vatNumber},
		{"CompanyName", &b.companyName},
		{"Department", &b.department},
		{"CostCenter", &b.costCenter},
		{"KVKNumber", &b.chamberOfCommerceNumber},
	}
	for _, f := range fields {
		v, err := wire.OptionalString(m, f.key)
		if err != nil {
			return B2B{}, err
		}
		*f.dst = v
	}
	return b, nil
}

// VATNumber returns the VAT identification number.
func (b B2B) VATNumber() *string { return b.vatNumber }

func (b B2B) CompanyName() *string { return b.companyName }
func (b B2B) Department() *string  { return b.department }
func (b B2B) CostCenter() *string  { return b.costCenter }

// ChamberOfCommerceNumber returns the KVK number.
func (b B2B) ChamberOfCommerceNumber() *string { return b.chamberOfCommerceNumber }

// ToWireFormat returns the wire form.
func (b B2B) ToWireFormat() map[string]any {
	return map[string]any{
		"CompanyName": wire.Deref(b.companyName),
		"Department":  wire.Deref(b.department),
		"KVKNumber":   wire.Deref(b.chamberOfCommerceNumber),
		"VATNumber":   wire.Deref(b.vatNumber),
		"CostCenter":  wire.Deref(b.costCenter),
	}
}

// ============================================================================
// Payment
// ============================================================================

// Payment holds the payment preferences of a customer.
//
// The three flags are true only for the literal string "true". The vendor
// stores them as strings and a JSON boolean true reads as false.
type Payment struct {
	debitID                           *string
	preferredPaymentMethod            *string
	isSaleOnAccount                   bool
	isDirectDebit                     bool
	shouldPrintItemsOnCustomerInvoice bool
}

// ParsePayment reads the payment keys.
func ParsePayment(m map[string]any) (Payment, error) {
	debitID, err := wire.OptionalString(m, "DebitID")
	if err != nil {
		return Payment{}, err
	}
	method, err := wire.OptionalString(m, "PreferredPaymentMethod")
	if err != nil {
		return Payment{}, err
	}

	return Payment{
		debitID:                           debitID,
		preferredPaymentMethod:            method,
		isSaleOnAccount:                   wire.LiteralTrue(m, "IsSaleOnAccount"),
		isDirectDebit:                     wire.LiteralTrue(m, "IsDirectDebit"),
		shouldPrintItemsOnCustomerInvoice: wire.LiteralTrue(m, "PrintItemsOnCustomerInvoice"),
	}, nil
}

// DebitID returns the direct debit mandate id.
func (p Payment) DebitID() *string { return p.debitID }

func (p Payment) PreferredPaymentMethod() *string { return p.preferredPaymentMethod }

// IsSaleOnAccount reports whether the customer may buy on invoice.
func (p Payment) IsSaleOnAccount() bool { return p.isSaleOnAccount }

func (p Payment) IsDirectDebit() bool { return p.isDirectDebit }

// ShouldPrintItemsOnCustomerInvoice reports whether invoices list every item.
func (p Payment) ShouldPrintItemsOnCustomerInvoice() bool { return p.shouldPrintItemsOnCustomerInvoice }

// ToWireFormat writes the flags back as "true" or "false".
func (p Payment) ToWireFormat() map[string]any {
	return map[string]any{
		"PreferredPaymentMethod":      wire.Deref(p.preferredPaymentMethod),
		"DebitID":                     wire.Deref(p.debitID),
		"PrintItemsOnCustomerInvoice": literalBool(p.shouldPrintItemsOnCustomerInvoice),
		"IsSaleOnAccount":             literalBool(p.isSaleOnAccount),
		"IsDirectDebit":               literalBool(p.isDirectDebit),
	}
}

func literalBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ============================================================================
// Loyalty & Preferences
// ============================================================================

// Loyalty is a loyalty programme membership.
type Loyalty struct {
	assetID      *string
	kindOfSaving *string
}

// ParseLoyalty reads the optional AssetID and KindOfSaving keys.
func ParseLoyalty(m map[string]any) (Loyalty, error) {
	assetID, err := wire.OptionalString(m, "AssetID")
	if err != nil {
		return Loyalty{}, err
	}
	kind, err := wire.OptionalString(m, "KindOfSaving")
	if err != nil {
		return Loyalty{}, err
	}
	return Loyalty{assetID: assetID, kindOfSaving: kind}, nil
}

// AssetID returns the id of the loyalty asset, such as a card.
func (l Loyalty) AssetID() *string { return l.assetID }

// KindOfSaving returns the savings programme the card belongs to.
func (l Loyalty) KindOfSaving() *string { return l.kindOfSaving }

// ToWireFormat returns the wire form.
func (l Loyalty) ToWireFormat() map[string]any {
	return map[string]any{
		"AssetID":      wire.Deref(l.assetID),
		"KindOfSaving": wire.Deref(l.kindOfSaving),
	}
}

// PreferencesOrder holds ordering and communication preferences.
type PreferencesOrder struct {
	communicationLevel   *string
	myStore              *string
	customerRemark       *string
	alternateProduct     *string
	communicationChannel *string
	genericRemark        *string
}

// ParsePreferencesOrder reads the optional ordering and communication
// preference keys.
func ParsePreferencesOrder(m map[string]any) (PreferencesOrder, error) {
	var p PreferencesOrder
	fields := []struct {
		key string
		dst **string
	}{
		{"CommunicationLevel", &p.communicationLevel},
		{"MyStore", &p.myStore},
		{"CustomerRemark", &p.customerRemark},
		{"AlternateProduct", &p.alternateProduct},
		{"CommunicationChannel", &p.communicationChannel},
		{"GenericRemark", &p.genericRemark},
	}
	for _, f := range fields {
		v, err := wire.OptionalString(m, f.key)
		if err != nil {
			return PreferencesOrder{}, err
		}
		*f.dst = v
	}
	return p, nil
}

func (p PreferencesOrder) CommunicationLevel() *string { return p.communicationLevel }

// MyStore returns the id of the customer's preferred store.
func (p PreferencesOrder) MyStore() *string { return p.myStore }

func (p PreferencesOrder) CustomerRemark() *string { return p.customerRemark }

// AlternateProduct returns the substitution preference for unavailable
// products.
func (p PreferencesOrder) AlternateProduct() *string { return p.alternateProduct }

func (p PreferencesOrder) CommunicationChannel() *string { return p.communicationChannel }
func (p PreferencesOrder) GenericRemark() *string        { return p.genericRemark }

// ToWireFormat returns the wire form.
func (p PreferencesOrder) ToWireFormat() map[string]any {
	return map[string]any{
		"CommunicationLevel":   wire.Deref(p.communicationLevel),
		"MyStore":              wire.Deref(p.myStore),
		"CustomerRemark":       wire.Deref(p.customerRemark),
		"AlternateProduct":     wire.Deref(p.alternateProduct),
		"CommunicationChannel": wire.Deref(p.communicationChannel),
		"GenericRemark":        wire.Deref(p.genericRemark),
	}
}
