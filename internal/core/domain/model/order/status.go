package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	CREATED ──> PREPARING ──> DELIVERED
//	   │            │
//	   └────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Setting a status to its current value
// is always accepted as a no-op transition.
type Status int

const (
	// Unknown is the zero value and is never a valid state.
	Unknown Status = iota

	// Created is assigned when an order is placed.
	Created

	// Preparing means the kitchen has started on the order.
	Preparing

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Created:   "CREATED",
	Preparing: "PREPARING",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
}

// transitions is the whole rule set. Identity transitions are handled in
// IsTransitionAllowed and are not listed here.
var transitions = map[Status]map[Status]bool{
	Created: {
		Preparing: true,
		Cancelled: true,
	},
	Preparing: {
		Delivered: true,
		Cancelled: true,
	},
	Delivered: {},
	Cancelled: {},
}

// IsTransitionAllowed decides whether an order may move from one status to
// another. It is total over Status: invalid values are never allowed, even
// towards themselves.
func IsTransitionAllowed(from, to Status) bool {
	if from.Validate() != nil || to.Validate() != nil {
		return false
	}
	if from == to {
		return true
	}
	return transitions[from][to]
}

// ParseStatus accepts the names produced by String, ignoring case and
// surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, statusName := range statusNames {
		if statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Created, Preparing, Delivered, Cancelled}
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// CanTransitionTo is shorthand for IsTransitionAllowed(s, to).
func (s Status) CanTransitionTo(to Status) bool {
	return IsTransitionAllowed(s, to)
}

// IsTerminal reports whether no other status can follow s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
