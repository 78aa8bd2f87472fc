package ritm

import (
	"github.com/sellvation/onewelcome/pkg/onewelcome/collection"
	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
)

// EmailCollection is an ordered list of Email values.
type EmailCollection struct {
	collection.Collection[Email]
}

// NewEmailCollection returns a collection holding items in order.
func NewEmailCollection(items ...Email) EmailCollection {
	return EmailCollection{collection.New(items...)}
}

// ParseEmailCollection parses every element, failing on the first invalid one.
func ParseEmailCollection(list []any) (EmailCollection, error) {
	items, err := wire.Objects(list, ParseEmail)
	if err != nil {
		return EmailCollection{}, err
	}
	return NewEmailCollection(items...), nil
}

// FilterByType returns the emails of type typ in their original order.
func (c EmailCollection) FilterByType(typ string) EmailCollection {
	return EmailCollection{c.Filter(func(e Email) bool { return e.typ == typ })}
}

// Primary returns the first email flagged primary.
func (c EmailCollection) Primary() (Email, bool) {
	for _, e := range c.All() {
		if e.primary {
			return e, true
		}
	}
	return Email{}, false
}

// ToWireFormat returns the wire list. It is never nil.
func (c EmailCollection) ToWireFormat() []any {
	return c.WireList(Email.ToWireFormat)
}

// PhoneNumberCollection is an ordered list of PhoneNumber values.
type PhoneNumberCollection struct {
	collection.Collection[PhoneNumber]
}

// NewPhoneNumberCollection returns a collection holding items in order.
func NewPhoneNumberCollection(items ...PhoneNumber) PhoneNumberCollection {
	return PhoneNumberCollection{collection.New(items...)}
}

// ParsePhoneNumberCollection parses every element, failing on the first invalid one.
func ParsePhoneNumberCollection(list []any) (PhoneNumberCollection, error) {
	items, err := wire.Objects(list, ParsePhoneNumber)
	if err != nil {
		return PhoneNumberCollection{}, err
	}
	return NewPhoneNumberCollection(items...), nil
}

// FilterByType returns the phone numbers of type typ in their original order.
func (c PhoneNumberCollection) FilterByType(typ string) PhoneNumberCollection {
	return PhoneNumberCollection{c.Filter(func(p PhoneNumber) bool { return p.typ == typ })}
}

// ToWireFormat returns the wire list.
func (c PhoneNumberCollection) ToWireFormat() []any {
	return c.WireList(PhoneNumber.ToWireFormat)
}

// AddressCollection is an ordered list of Address values.
type AddressCollection struct {
	collection.Collection[Address]
}

// NewAddressCollection returns a collection holding items in order.
func NewAddressCollection(items ...Address) AddressCollection {
	return AddressCollection{collection.New(items...)}
}

// ParseAddressCollection parses a list of addresses.
func ParseAddressCollection(list []any) (AddressCollection, error) {
	items, err := wire.Objects(list, ParseAddress)
	if err != nil {
		return AddressCollection{}, err
	}
	return NewAddressCollection(items...), nil
}

// ToWireFormat returns the wire list.
func (c AddressCollection) ToWireFormat() []any {
	return c.WireList(Address.ToWireFormat)
}

// B2BCollection is an ordered list of business accounts.
type B2BCollection struct {
	collection.Collection[B2B]
}

// NewB2BCollection returns a collection holding items in order.
func NewB2BCollection(items ...B2B) B2BCollection {
	return B2BCollection{collection.New(items...)}
}

// ParseB2BCollection parses a list of business accounts.
func ParseB2BCollection(list []any) (B2BCollection, error) {
	items, err := wire.Objects(list, ParseB2B)
	if err != nil {
		return B2BCollection{}, err
	}
	return NewB2BCollection(items...), nil
}

// ToWireFormat returns the wire list.
func (c B2BCollection) ToWireFormat() []any {
	return c.WireList(B2B.ToWireFormat)
}

// LoyaltyCollection is an ordered list of loyalty memberships.
type LoyaltyCollection struct {
	collection.Collection[Loyalty]
}

// NewLoyaltyCollection returns a collection holding items in order.
func NewLoyaltyCollection(items ...Loyalty) LoyaltyCollection {
	return LoyaltyCollection{collection.New(items...)}
}

// ParseLoyaltyCollection parses a list of loyalty memberships.
func ParseLoyaltyCollection(list []any) (LoyaltyCollection, error) {
	items, err := wire.Objects(list, ParseLoyalty)
	if err != nil {
		return LoyaltyCollection{}, err
	}
	return NewLoyaltyCollection(items...), nil
}

// ToWireFormat returns the wire list.
func (c LoyaltyCollection) ToWireFormat() []any {
	return c.WireList(Loyalty.ToWireFormat)
}
