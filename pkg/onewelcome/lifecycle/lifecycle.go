// Package lifecycle defines the identity lifecycle states used by OneWelcome.
//
// Two validators exist on purpose: inbound events and state updates accept a
// three state subset, while states set on a profile accept all five.
package lifecycle

import (
	"fmt"
	"slices"
)

// State is an identity lifecycle state.
type State string

const (
	Grace     State = "GRACE"
	Inactive  State = "INACTIVE"
	Active    State = "ACTIVE"
	Withdrawn State = "WITHDRAWN"
	Blocked   State = "BLOCKED"
)

// All lists every defined state.
var All = []State{Grace, Inactive, Active, Withdrawn, Blocked}

// EventStates lists the states accepted on inbound events and state updates.
var EventStates = []State{Active, Grace, Inactive}

// InvalidStateError reports a state outside the accepted set.
type InvalidStateError struct {
	State    string
	Accepted []State
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid lifecycle state %q, accepted: %v", e.State, e.Accepted)
}

// ValidateEventState accepts ACTIVE, GRACE and INACTIVE.
func ValidateEventState(s string) error {
	if !slices.Contains(EventStates, State(s)) {
		return &InvalidStateError{State: s, Accepted: EventStates}
	}
	return nil
}

// ValidateUserState accepts all five defined states.
func ValidateUserState(s string) error {
	if !slices.Contains(All, State(s)) {
		return &InvalidStateError{State: s, Accepted: All}
	}
	return nil
}
