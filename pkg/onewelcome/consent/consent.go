// Package consent maps OneWelcome attribute consents.
package consent

import (
	"encoding/json"
	"fmt"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
	"github.com/sellvation/onewelcome/pkg/onewelcome/collection"
	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
)

// DefaultLocale is used by CreateConsent when no locale is given.
const DefaultLocale = "nl_NL"

// Attribute names the profile attribute a consent covers.
type Attribute struct {
	name string
}

// ParseAttribute requires name, coercing a numeric name to a string.
func ParseAttribute(m map[string]any) (Attribute, error) {
	name, err := wire.RequireScalar(m, "name")
	if err != nil {
		return Attribute{}, err
	}
	return Attribute{name: name}, nil
}

// Name returns the attribute name.
func (a Attribute) Name() string { return a.name }

// ToMap returns the wire form.
func (a Attribute) ToMap() map[string]any {
	return map[string]any{"name": a.name}
}

// Consent records when and in which locale consent was given.
type Consent struct {
	dateConsented string
	grantorUser   *string
	locale        string
}

// ParseConsent requires dateConsented and locale; grantorUser is optional.
func ParseConsent(m map[string]any) (Consent, error) {
	var (
		c   Consent
		err error
	)
	if c.dateConsented, err = wire.RequireScalar(m, "dateConsented"); err != nil {
		return Consent{}, err
	}
	if c.grantorUser, err = wire.OptionalString(m, "grantorUser"); err != nil {
		return Consent{}, err
	}
	if c.locale, err = wire.RequireScalar(m, "locale"); err != nil {
		return Consent{}, err
	}
	return c, nil
}

// DateConsented returns the consent date exactly as the API sent it.
func (c Consent) DateConsented() string { return c.dateConsented }

// GrantorUser returns the user who granted consent on behalf of another, or
// nil.
func (c Consent) GrantorUser() *string { return c.grantorUser }

func (c Consent) Locale() string { return c.locale }

// ToMap returns the wire form. A missing grantorUser is written as null.
func (c Consent) ToMap() map[string]any {
	return map[string]any{
		"dateConsented": c.dateConsented,
		"grantorUser":   wire.Deref(c.grantorUser),
		"locale":        c.locale,
	}
}

// AttributeConsent is a user's consent for one processing purpose on one
// attribute. ID is nil until the consent has been stored.
type AttributeConsent struct {
	id                  *string
	userID              string
	processingPurposeID string
	attribute           Attribute
	consent             Consent
}

// ParseAttributeConsent requires userId, processingPurposeId and the
// attribute and consent objects.
func ParseAttributeConsent(m map[string]any) (*AttributeConsent, error) {
	var (
		ac  AttributeConsent
		err error
	)

	if ac.id, err = wire.OptionalString(m, "id"); err != nil {
		return nil, err
	}
	if ac.userID, err = wire.RequireScalar(m, "userId"); err != nil {
		return nil, err
	}
	if ac.processingPurposeID, err = wire.RequireScalar(m, "processingPurposeId"); err != nil {
		return nil, err
	}

	attr, err := wire.RequireObject(m, "attribute")
	if err != nil {
		return nil, err
	}
	if ac.attribute, err = ParseAttribute(attr); err != nil {
		return nil, wire.Within("attribute", err)
	}

	consent, err := wire.RequireObject(m, "consent")
	if err != nil {
		return nil, err
	}
	if ac.consent, err = ParseConsent(consent); err != nil {
		return nil, wire.Within("consent", err)
	}

	return &ac, nil
}

// ParseAttributeConsentJSON parses the output of ToJSON.
func ParseAttributeConsentJSON(data []byte) (*AttributeConsent, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &onewelcome.SerializationError{Err: err}
	}
	return ParseAttributeConsent(m)
}

// ID returns the consent id. It is nil for a consent that was never stored.
func (ac AttributeConsent) ID() *string { return ac.id }

func (ac AttributeConsent) UserID() string              { return ac.userID }
func (ac AttributeConsent) ProcessingPurposeID() string { return ac.processingPurposeID }
func (ac AttributeConsent) Attribute() Attribute        { return ac.attribute }
func (ac AttributeConsent) Consent() Consent            { return ac.consent }

// ToMap returns the wire form. Fingerprint digests it.
func (ac AttributeConsent) ToMap() map[string]any {
	return map[string]any{
		"id":                  wire.Deref(ac.id),
		"userId":              ac.userID,
		"processingPurposeId": ac.processingPurposeID,
		"attribute":           ac.attribute.ToMap(),
		"consent":             ac.consent.ToMap(),
	}
}

// ToJSON encodes ToMap. Keys are sorted, so equal consents encode equally.
func (ac AttributeConsent) ToJSON() ([]byte, error) {
	b, err := json.Marshal(ac.ToMap())
	if err != nil {
		return nil, &onewelcome.SerializationError{Err: err}
	}
	return b, nil
}

// MarshalJSON implements json.Marshaler.
func (ac AttributeConsent) MarshalJSON() ([]byte, error) {
	return ac.ToJSON()
}

// Fingerprint is a digest of ToJSON.
func (ac AttributeConsent) Fingerprint() string {
	b, err := ac.ToJSON()
	if err != nil {
		panic(fmt.Sprintf("consent: fingerprint: %v", err))
	}
	return onewelcome.Fingerprint(b)
}

// ConsentCollection is an ordered list of attribute consents.
type ConsentCollection struct {
	collection.Collection[AttributeConsent]
}

// ParseConsentCollection parses every element, failing on the first invalid
// one.
func ParseConsentCollection(list []any) (ConsentCollection, error) {
	items, err := wire.Objects(list, func(m map[string]any) (AttributeConsent, error) {
		ac, err := ParseAttributeConsent(m)
		if err != nil {
			return AttributeConsent{}, err
		}
		return *ac, nil
	})
	if err != nil {
		return ConsentCollection{}, err
	}
	return ConsentCollection{collection.New(items...)}, nil
}

// ByProcessingPurpose returns the consents for purpose, in order.
func (c ConsentCollection) ByProcessingPurpose(purpose string) ConsentCollection {
	return ConsentCollection{c.Filter(func(ac AttributeConsent) bool {
		return ac.processingPurposeID == purpose
	})}
}

// ToMap returns the wire form of every consent in order.
func (c ConsentCollection) ToMap() []any {
	return c.WireList(AttributeConsent.ToMap)
}

// Fingerprint digests the fingerprints of every consent in order.
func (c ConsentCollection) Fingerprint() string {
	fps := make([]string, 0, c.Len())
	for _, ac := range c.All() {
		fps = append(fps, ac.Fingerprint())
	}
	b, err := json.Marshal(fps)
	if err != nil {
		panic(fmt.Sprintf("consent: fingerprint: %v", err))
	}
	return onewelcome.Fingerprint(b)
}
