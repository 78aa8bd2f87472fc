// Package ritm maps OneWelcome RITM customer profiles.
//
// A profile carries two extension blocks: the fixed iwelcome block holding
// the lifecycle state, and a tenant specific block whose key and customer id
// field are configured through Schema.
package ritm

import (
	"errors"
	"time"
)

const (
	// ExtIWelcome is the fixed extension block carrying the lifecycle state.
	ExtIWelcome = "urn:scim:schemas:extension:iwelcome:1.0"

	// ExtPlus is the block SaveStateForUserUUID writes LastActivityDate to,
	// whatever the configured customer tag.
	ExtPlus = "urn:scim:schemas:extension:plus:1.0"

	// DateLayout is the layout of the normalized date fields.
	DateLayout = time.DateTime

	// ZeroDate stands in for a date that was never set.
	ZeroDate = "0000-00-00 00:00:00"
)

// Schema names the tenant specific extension block (CUSTOMER_TAG) and the
// customer id key inside it (CUSTOMER_KEY).
type Schema struct {
	CustomerTag string
	CustomerKey string
}

// Validate reports whether both keys are set.
func (s Schema) Validate() error {
	var errs []error
	if s.CustomerTag == "" {
		errs = append(errs, errors.New("ritm: customer tag is empty"))
	}
	if s.CustomerKey == "" {
		errs = append(errs, errors.New("ritm: customer key is empty"))
	}
	return errors.Join(errs...)
}
