package ritm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
	"github.com/sellvation/onewelcome/pkg/onewelcome/lifecycle"
)

// User is a RITM customer profile. Collections are never nil; an absent
// collection in the payload yields an empty one.
//
// A User is not safe for concurrent mutation.
type User struct {
	schema Schema

	uuid       string
	firstName  *string
	lastName   *string
	middleName *string
	customerID string
	state      lifecycle.State

	birthDate                *string
	lastSuccessfulLogin      *string
	isPasswordChangeRequired bool

	lastActivityDate           string
	hasAgreedPLUSPrivacyPolicy bool
	privacyPolicyConsentDate   string

	isB2B               bool
	isB2C               bool
	isEmployee          bool
	hasEmployeeDiscount bool
	hasLoyaltyCard      bool

	emails            EmailCollection
	phoneNumbers      PhoneNumberCollection
	postAddresses     AddressCollection
	invoiceAddresses  AddressCollection
	deliveryAddresses AddressCollection
	b2b               *B2B
	b2bAccounts       B2BCollection
	payment           *Payment
	loyalties         LoyaltyCollection
	preferencesOrder  *PreferencesOrder
}

// ParseUser builds a User from a {"profileInformation": {...}} object.
//
// uid, emails, the iwelcome block with its state, and the schema's customer
// block with its customer id are required. Any invalid nested value fails the
// whole parse.
func ParseUser(m map[string]any, schema Schema) (*User, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	profile, err := wire.RequireObject(m, "profileInformation")
	if err != nil {
		return nil, err
	}

	u, err := parseProfile(profile, schema)
	if err != nil {
		return nil, wire.Within("profileInformation", err)
	}
	return u, nil
}

func parseProfile(profile map[string]any, schema Schema) (*User, error) {
	u := &User{schema: schema}

	var err error
	if u.uuid, err = wire.RequireString(profile, "uid"); err != nil {
		return nil, err
	}

	emails, err := wire.RequireList(profile, "emails")
	if err != nil {
		return nil, err
	}
	if u.emails, err = ParseEmailCollection(emails); err != nil {
		return nil, wire.Within("emails", err)
	}

	ext, err := wire.RequireObject(profile, ExtIWelcome)
	if err != nil {
		return nil, err
	}
	if err := u.parseIWelcome(ext); err != nil {
		return nil, wire.Within(ExtIWelcome, err)
	}

	info, err := wire.RequireObject(profile, schema.CustomerTag)
	if err != nil {
		return nil, err
	}
	if err := u.parseCustomerBlock(info, profile); err != nil {
		return nil, wire.Within(schema.CustomerTag, err)
	}

	u.isEmployee = wire.Flag(profile, "IsEmployee")
	u.hasEmployeeDiscount = wire.Flag(profile, "HasEmployeeDiscount")

	if err := optionalList(profile, "phoneNumbers", ParsePhoneNumberCollection, &u.phoneNumbers); err != nil {
		return nil, err
	}
	if err := optionalList(profile, "PostAddresses", ParseAddressCollection, &u.postAddresses); err != nil {
		return nil, err
	}
	if err := optionalList(profile, "InvoiceAddresses", ParseAddressCollection, &u.invoiceAddresses); err != nil {
		return nil, err
	}

	// Loyalty lives on the profile; some tenants nest it in the customer block.
	_, onProfile := profile["Loyalty"]
	_, inInfo := info["Loyalty"]
	if onProfile || !inInfo {
		if err := optionalList(profile, "Loyalty", ParseLoyaltyCollection, &u.loyalties); err != nil {
			return nil, err
		}
	} else if err := optionalList(info, "Loyalty", ParseLoyaltyCollection, &u.loyalties); err != nil {
		return nil, wire.Within(schema.CustomerTag, err)
	}

	return u, nil
}

func (u *User) parseIWelcome(ext map[string]any) error {
	state, err := wire.RequireString(ext, "state")
	if err != nil {
		return err
	}
	if err := lifecycle.ValidateUserState(state); err != nil {
		return wire.Invalid("state", err.Error())
	}
	u.state = lifecycle.State(state)

	u.birthDate = wire.LenientString(ext, "birthDate")
	u.lastSuccessfulLogin = wire.LenientString(ext, "lastSuccessfulLogin")
	u.isPasswordChangeRequired = wire.Flag(ext, "IsPasswordChangeRequired")
	return nil
}

func (u *User) parseCustomerBlock(info, profile map[string]any) error {
	var err error
	if u.customerID, err = wire.RequireScalar(info, u.schema.CustomerKey); err != nil {
		return err
	}

	u.isB2B = wire.Flag(info, "IsB2B")
	u.isB2C = wire.Flag(info, "IsB2C")
	u.hasLoyaltyCard = wire.Flag(info, "HasLoyaltyCard")
	u.hasAgreedPLUSPrivacyPolicy = wire.Flag(info, "HasAgreedPLUSPrivacyPolicy")

	if u.lastActivityDate, err = normalizeDate(info, "LastActivityDate"); err != nil {
		return err
	}
	if u.privacyPolicyConsentDate, err = normalizeDate(info, "PrivacyPolicyConsentDate"); err != nil {
		return err
	}

	if u.firstName, err = wire.OptionalString(info, "FirstName"); err != nil {
		return err
	}
	if u.lastName, err = wire.OptionalString(info, "SurName"); err != nil {
		return err
	}
	if u.middleName, err = wire.OptionalString(info, "SurNamePrefix"); err != nil {
		return err
	}
	u.fillNamesFrom(profile)

	if err := optionalList(info, "DeliveryAddresses", ParseAddressCollection, &u.deliveryAddresses); err != nil {
		return err
	}
	if err := optionalList(info, "B2BAccounts", ParseB2BCollection, &u.b2bAccounts); err != nil {
		return err
	}
	if u.b2b, err = optionalObject(info, "B2B", ParseB2B); err != nil {
		return err
	}
	if u.payment, err = optionalObject(info, "Payment", ParsePayment); err != nil {
		return err
	}
	if u.preferencesOrder, err = optionalObject(info, "PreferencesOrder", ParsePreferencesOrder); err != nil {
		return err
	}
	return nil
}

// fillNamesFrom falls back to the SCIM name block for names the customer
// block does not carry.
func (u *User) fillNamesFrom(profile map[string]any) {
	name, ok := profile["name"].(map[string]any)
	if !ok {
		return
	}
	if u.firstName == nil {
		u.firstName = wire.LenientString(name, "givenName")
	}
	if u.lastName == nil {
		u.lastName = wire.LenientString(name, "familyName")
	}
	if u.middleName == nil {
		u.middleName = wire.LenientString(name, "middleName")
	}
}

func optionalList[C any](m map[string]any, key string, parse func([]any) (C, error), dst *C) error {
	list, err := wire.OptionalList(m, key)
	if err != nil || list == nil {
		return err
	}
	c, err := parse(list)
	if err != nil {
		return wire.Within(key, err)
	}
	*dst = c
	return nil
}

func optionalObject[T any](m map[string]any, key string, parse func(map[string]any) (T, error)) (*T, error) {
	obj, err := wire.OptionalObject(m, key)
	if err != nil || obj == nil {
		return nil, err
	}
	v, err := parse(obj)
	if err != nil {
		return nil, wire.Within(key, err)
	}
	return &v, nil
}

func normalizeDate(m map[string]any, key string) (string, error) {
	if s, ok := m[key].(string); ok && s == ZeroDate {
		return ZeroDate, nil
	}
	t, err := wire.OptionalTime(m, key)
	if err != nil {
		return "", err
	}
	return formatDate(t), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ZeroDate
	}
	return t.UTC().Format(DateLayout)
}

// ============================================================================
// Accessors
// ============================================================================

// Schema returns the tenant schema the user was parsed with.
func (u *User) Schema() Schema { return u.schema }

// UUID returns the OneWelcome id of the profile.
func (u *User) UUID() string { return u.uuid }

func (u *User) FirstName() *string  { return u.firstName }
func (u *User) LastName() *string   { return u.lastName }
func (u *User) MiddleName() *string { return u.middleName }

// CustomerID returns the value stored under the configured customer key.
func (u *User) CustomerID() string { return u.customerID }

// State returns the lifecycle state from the iwelcome block.
func (u *User) State() lifecycle.State { return u.state }

// BirthDate returns the birth date as sent by the API, or nil.
func (u *User) BirthDate() *string { return u.birthDate }

// LastSuccessfulLogin returns the last login time as sent by the API, or nil.
func (u *User) LastSuccessfulLogin() *string { return u.lastSuccessfulLogin }

func (u *User) IsPasswordChangeRequired() bool { return u.isPasswordChangeRequired }

// LastActivityDate returns the normalized date, or ZeroDate when never set.
func (u *User) LastActivityDate() string { return u.lastActivityDate }

// HasAgreedPLUSPrivacyPolicy reports whether the tenant privacy policy was
// accepted.
func (u *User) HasAgreedPLUSPrivacyPolicy() bool { return u.hasAgreedPLUSPrivacyPolicy }

// PrivacyPolicyConsentDate returns the normalized date, or ZeroDate when never
// set.
func (u *User) PrivacyPolicyConsentDate() string { return u.privacyPolicyConsentDate }

func (u *User) IsB2B() bool               { return u.isB2B }
func (u *User) IsB2C() bool               { return u.isB2C }
func (u *User) IsEmployee() bool          { return u.isEmployee }
func (u *User) HasEmployeeDiscount() bool { return u.hasEmployeeDiscount }
func (u *User) HasLoyaltyCard() bool      { return u.hasLoyaltyCard }

// B2B returns the business account, or nil.
func (u *User) B2B() *B2B { return u.b2b }

// Payment returns the payment preferences, or nil.
func (u *User) Payment() *Payment { return u.payment }

// PreferencesOrder returns the order preferences, or nil.
func (u *User) PreferencesOrder() *PreferencesOrder { return u.preferencesOrder }

// Emails returns a copy of the profile emails.
func (u *User) Emails() EmailCollection { return EmailCollection{u.emails.Clone()} }

// PhoneNumbers returns a copy of the profile phone numbers.
func (u *User) PhoneNumbers() PhoneNumberCollection { return PhoneNumberCollection{u.phoneNumbers.Clone()} }

// PostAddresses returns a copy of the postal addresses.
func (u *User) PostAddresses() AddressCollection { return AddressCollection{u.postAddresses.Clone()} }

// InvoiceAddresses returns a copy of the invoice addresses.
func (u *User) InvoiceAddresses() AddressCollection { return AddressCollection{u.invoiceAddresses.Clone()} }

// DeliveryAddresses returns a copy of the delivery addresses, stored in the
// tenant block.
func (u *User) DeliveryAddresses() AddressCollection { return AddressCollection{u.deliveryAddresses.Clone()} }

// B2BAccounts returns a copy of the tenant block business accounts.
func (u *User) B2BAccounts() B2BCollection { return B2BCollection{u.b2bAccounts.Clone()} }

// Loyalties returns a copy of the loyalty memberships.
func (u *User) Loyalties() LoyaltyCollection { return LoyaltyCollection{u.loyalties.Clone()} }

// PrimaryEmail returns the first email flagged primary.
func (u *User) PrimaryEmail() (Email, bool) {
	return u.emails.Primary()
}

// ============================================================================
// Setters
// ============================================================================

func (u *User) SetFirstName(s string)  { u.firstName = &s }
func (u *User) SetLastName(s string)   { u.lastName = &s }
func (u *User) SetMiddleName(s string) { u.middleName = &s }

// SetCustomerID sets the value written under the configured customer key.
func (u *User) SetCustomerID(s string) { u.customerID = s }

// SetBirthDate stores s as is.
func (u *User) SetBirthDate(s string) { u.birthDate = &s }

// SetLastSuccessfulLogin stores s as is.
func (u *User) SetLastSuccessfulLogin(s string) { u.lastSuccessfulLogin = &s }

func (u *User) SetIsPasswordChangeRequired(b bool)   { u.isPasswordChangeRequired = b }
func (u *User) SetHasAgreedPLUSPrivacyPolicy(b bool) { u.hasAgreedPLUSPrivacyPolicy = b }
func (u *User) SetIsB2B(b bool)                      { u.isB2B = b }
func (u *User) SetIsB2C(b bool)                      { u.isB2C = b }
func (u *User) SetIsEmployee(b bool)                 { u.isEmployee = b }
func (u *User) SetHasEmployeeDiscount(b bool)        { u.hasEmployeeDiscount = b }
func (u *User) SetHasLoyaltyCard(b bool)             { u.hasLoyaltyCard = b }

// SetLastActivityDate stores t in DateLayout. The zero time clears it.
func (u *User) SetLastActivityDate(t time.Time) { u.lastActivityDate = formatDate(t) }

// SetPrivacyPolicyConsentDate stores t in DateLayout. The zero time clears it.
func (u *User) SetPrivacyPolicyConsentDate(t time.Time) {
	u.privacyPolicyConsentDate = formatDate(t)
}

// SetState accepts any of the five lifecycle states.
func (u *User) SetState(s string) error {
	if err := lifecycle.ValidateUserState(s); err != nil {
		return err
	}
	u.state = lifecycle.State(s)
	return nil
}

// SetEmails replaces the emails with a copy of c.
func (u *User) SetEmails(c EmailCollection) { u.emails = EmailCollection{c.Clone()} }

// SetPhoneNumbers replaces the phone numbers with a copy of c.
func (u *User) SetPhoneNumbers(c PhoneNumberCollection) { u.phoneNumbers = PhoneNumberCollection{c.Clone()} }

// SetPostAddresses replaces the postal addresses with a copy of c.
func (u *User) SetPostAddresses(c AddressCollection) { u.postAddresses = AddressCollection{c.Clone()} }

// SetInvoiceAddresses replaces the invoice addresses with a copy of c.
func (u *User) SetInvoiceAddresses(c AddressCollection) { u.invoiceAddresses = AddressCollection{c.Clone()} }

// SetDeliveryAddresses replaces the delivery addresses with a copy of c.
func (u *User) SetDeliveryAddresses(c AddressCollection) { u.deliveryAddresses = AddressCollection{c.Clone()} }

// SetB2BAccounts replaces the business accounts with a copy of c.
func (u *User) SetB2BAccounts(c B2BCollection) { u.b2bAccounts = B2BCollection{c.Clone()} }

// SetLoyalties replaces the loyalty memberships with a copy of c.
func (u *User) SetLoyalties(c LoyaltyCollection) { u.loyalties = LoyaltyCollection{c.Clone()} }

// SetB2B replaces the business account; nil removes it.
func (u *User) SetB2B(b *B2B) { u.b2b = clonePtr(b) }

// SetPayment replaces the payment preferences; nil removes them.
func (u *User) SetPayment(p *Payment) { u.payment = clonePtr(p) }

// SetPreferencesOrder replaces the preferences; nil removes them.
func (u *User) SetPreferencesOrder(p *PreferencesOrder) { u.preferencesOrder = clonePtr(p) }

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ============================================================================
// Serialization
// ============================================================================

// ToWireFormat returns the vendor representation under profileInformation.
// Empty collections and absent children are left out entirely.
func (u *User) ToWireFormat() map[string]any {
	info := map[string]any{
		u.schema.CustomerKey:         u.customerID,
		"IsB2B":                      u.isB2B,
		"IsB2C":                      u.isB2C,
		"HasLoyaltyCard":             u.hasLoyaltyCard,
		"HasAgreedPLUSPrivacyPolicy": u.hasAgreedPLUSPrivacyPolicy,
		"PrivacyPolicyConsentDate":   u.privacyPolicyConsentDate,
		"LastActivityDate":           u.lastActivityDate,
		"FirstName":                  wire.Deref(u.firstName),
		"SurName":                    wire.Deref(u.lastName),
		"SurNamePrefix":              wire.Deref(u.middleName),
	}
	if u.deliveryAddresses.Len() > 0 {
		info["DeliveryAddresses"] = u.deliveryAddresses.ToWireFormat()
	}
	if u.b2bAccounts.Len() > 0 {
		info["B2BAccounts"] = u.b2bAccounts.ToWireFormat()
	}
	if u.b2b != nil {
		info["B2B"] = u.b2b.ToWireFormat()
	}
	if u.payment != nil {
		info["Payment"] = u.payment.ToWireFormat()
	}
	if u.preferencesOrder != nil {
		info["PreferencesOrder"] = u.preferencesOrder.ToWireFormat()
	}

	profile := map[string]any{
		"uid": u.uuid,
		"name": map[string]any{
			"givenName":  wire.Deref(u.firstName),
			"familyName": wire.Deref(u.lastName),
			"middleName": wire.Deref(u.middleName),
		},
		ExtIWelcome: map[string]any{
			"state":                    string(u.state),
			"birthDate":                wire.Deref(u.birthDate),
			"lastSuccessfulLogin":      wire.Deref(u.lastSuccessfulLogin),
			"IsPasswordChangeRequired": u.isPasswordChangeRequired,
		},
		u.schema.CustomerTag:  info,
		"IsEmployee":          u.isEmployee,
		"HasEmployeeDiscount": u.hasEmployeeDiscount,
	}
	if u.emails.Len() > 0 {
		profile["emails"] = u.emails.ToWireFormat()
	}
	if u.phoneNumbers.Len() > 0 {
		profile["phoneNumbers"] = u.phoneNumbers.ToWireFormat()
	}
	if u.postAddresses.Len() > 0 {
		profile["PostAddresses"] = u.postAddresses.ToWireFormat()
	}
	if u.invoiceAddresses.Len() > 0 {
		profile["InvoiceAddresses"] = u.invoiceAddresses.ToWireFormat()
	}
	if u.loyalties.Len() > 0 {
		profile["Loyalty"] = u.loyalties.ToWireFormat()
	}

	return map[string]any{"profileInformation": profile}
}

// ToMap returns a flat, schema independent representation of every field.
// It is the input of Fingerprint.
func (u *User) ToMap() map[string]any {
	return map[string]any{
		"uuid":                       u.uuid,
		"firstName":                  wire.Deref(u.firstName),
		"lastName":                   wire.Deref(u.lastName),
		"middleName":                 wire.Deref(u.middleName),
		"customerId":                 u.customerID,
		"state":                      string(u.state),
		"birthDate":                  wire.Deref(u.birthDate),
		"lastSuccessfulLogin":        wire.Deref(u.lastSuccessfulLogin),
		"isPasswordChangeRequired":   u.isPasswordChangeRequired,
		"lastActivityDate":           u.lastActivityDate,
		"hasAgreedPLUSPrivacyPolicy": u.hasAgreedPLUSPrivacyPolicy,
		"privacyPolicyConsentDate":   u.privacyPolicyConsentDate,
		"isB2B":                      u.isB2B,
		"isB2C":                      u.isB2C,
		"isEmployee":                 u.isEmployee,
		"hasEmployeeDiscount":        u.hasEmployeeDiscount,
		"hasLoyaltyCard":             u.hasLoyaltyCard,
		"emails":                     u.emails.ToWireFormat(),
		"phoneNumbers":               u.phoneNumbers.ToWireFormat(),
		"postAddresses":              u.postAddresses.ToWireFormat(),
		"invoiceAddresses":           u.invoiceAddresses.ToWireFormat(),
		"deliveryAddresses":          u.deliveryAddresses.ToWireFormat(),
		"b2b":                        wireOrNil(u.b2b),
		"b2bAccounts":                u.b2bAccounts.ToWireFormat(),
		"payment":                    wireOrNil(u.payment),
		"loyalties":                  u.loyalties.ToWireFormat(),
		"preferencesOrder":           wireOrNil(u.preferencesOrder),
	}
}

type wireFormatter interface {
	ToWireFormat() map[string]any
}

func wireOrNil[T wireFormatter](v *T) any {
	if v == nil {
		return nil
	}
	return (*v).ToWireFormat()
}

// MarshalJSON encodes ToMap.
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ToMap())
}

// Fingerprint returns a digest of ToMap that changes whenever any field does.
func (u *User) Fingerprint() string {
	fp, err := onewelcome.FingerprintValue(u.ToMap())
	if err != nil {
		// ToMap holds only strings, bools, nil and nested maps and lists.
		panic(fmt.Sprintf("ritm: fingerprint: %v", err))
	}
	return fp
}
