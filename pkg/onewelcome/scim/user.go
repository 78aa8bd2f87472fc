// Package scim maps the SCIM view of a OneWelcome user.
//
// Unlike a RITM profile, a SCIM user requires its emails, active flag and
// state block unconditionally.
package scim

import (
	"encoding/json"
	"time"

	"github.com/sellvation/onewelcome/pkg/onewelcome/collection"
	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
	"github.com/sellvation/onewelcome/pkg/onewelcome/lifecycle"
)

// ExtIWelcome is the extension block carrying the lifecycle state.
const ExtIWelcome = "urn:scim:schemas:extension:iwelcome:1.0"

// Email is a SCIM email address.
type Email struct {
	value   string
	primary bool
}

// ParseEmail requires value and primary. primary is read as a truthy value.
func ParseEmail(m map[string]any) (Email, error) {
	value, err := wire.RequireString(m, "value")
	if err != nil {
		return Email{}, err
	}
	primary, err := wire.RequireFlag(m, "primary")
	if err != nil {
		return Email{}, err
	}
	return Email{value: value, primary: primary}, nil
}

func (e Email) Value() string { return e.value }

// IsPrimary reports whether the email is the primary address.
func (e Email) IsPrimary() bool { return e.primary }

// ToMap returns the wire form.
func (e Email) ToMap() map[string]any {
	return map[string]any{"value": e.value, "primary": e.primary}
}

// EmailCollection is an ordered list of SCIM emails.
type EmailCollection struct {
	collection.Collection[Email]
}

// ParseEmailCollection parses every email, failing on the first invalid one.
func ParseEmailCollection(list []any) (EmailCollection, error) {
	items, err := wire.Objects(list, ParseEmail)
	if err != nil {
		return EmailCollection{}, err
	}
	return EmailCollection{collection.New(items...)}, nil
}

// ToMap returns the wire form of every email in order.
func (c EmailCollection) ToMap() []any {
	return c.WireList(Email.ToMap)
}

// User is the SCIM representation of an identity.
type User struct {
	id           string
	givenName    string
	familyName   *string
	active       bool
	state        lifecycle.State
	created      time.Time
	lastModified time.Time
	emails       EmailCollection
}

// ParseUser builds a User from a SCIM resource.
func ParseUser(m map[string]any) (*User, error) {
	var (
		u   User
		err error
	)

	if u.id, err = wire.RequireString(m, "id"); err != nil {
		return nil, err
	}

	meta, err := wire.RequireObject(m, "meta")
	if err != nil {
		return nil, err
	}
	if u.created, err = wire.RequireTime(meta, "created"); err != nil {
		return nil, wire.Within("meta", err)
	}
	if u.lastModified, err = wire.RequireTime(meta, "lastModified"); err != nil {
		return nil, wire.Within("meta", err)
	}

	name, err := wire.RequireObject(m, "name")
	if err != nil {
		return nil, err
	}
	if u.givenName, err = wire.RequireString(name, "givenName"); err != nil {
		return nil, wire.Within("name", err)
	}
	if u.familyName, err = wire.OptionalString(name, "familyName"); err != nil {
		return nil, wire.Within("name", err)
	}

	emails, err := wire.RequireList(m, "emails")
	if err != nil {
		return nil, err
	}
	if u.emails, err = ParseEmailCollection(emails); err != nil {
		return nil, wire.Within("emails", err)
	}

	if u.active, err = wire.RequireFlag(m, "active"); err != nil {
		return nil, err
	}

	ext, err := wire.RequireObject(m, ExtIWelcome)
	if err != nil {
		return nil, err
	}
	state, err := wire.RequireString(ext, "state")
	if err != nil {
		return nil, wire.Within(ExtIWelcome, err)
	}
	if err := lifecycle.ValidateUserState(state); err != nil {
		return nil, wire.Within(ExtIWelcome, wire.Invalid("state", err.Error()))
	}
	u.state = lifecycle.State(state)

	return &u, nil
}

// ID returns the SCIM id.
func (u *User) ID() string { return u.id }

func (u *User) GivenName() string { return u.givenName }

// FamilyName returns the family name, or nil when the API omits it.
func (u *User) FamilyName() *string { return u.familyName }

// Active reports whether the account is enabled.
func (u *User) Active() bool { return u.active }

// State returns the lifecycle state from the iwelcome extension.
func (u *User) State() lifecycle.State { return u.state }

// Created returns the creation time from meta.
func (u *User) Created() time.Time { return u.created }

// LastModified returns the last modification time from meta.
func (u *User) LastModified() time.Time { return u.lastModified }

// Emails returns a copy of the user's emails.
func (u *User) Emails() EmailCollection { return EmailCollection{u.emails.Clone()} }

// ToMap returns a flat representation for display and storage.
func (u *User) ToMap() map[string]any {
	return map[string]any{
		"id":           u.id,
		"givenName":    u.givenName,
		"familyName":   wire.Deref(u.familyName),
		"active":       u.active,
		"state":        string(u.state),
		"created":      u.created.Format(time.RFC3339),
		"lastModified": u.lastModified.Format(time.RFC3339),
		"emails":       u.emails.ToMap(),
	}
}

// MarshalJSON encodes ToMap.
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ToMap())
}
