package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of an order.
//
// The nominal progression is linear:
//
//	Pending ──> Assigned ──> Picked ──> Delivered
//
// Canceled is a tolerated terminal value with no defined transition into
// it from the core flow; it appears in historical data and the metrics
// computations count it, so restoring and storing it must work.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a created order, awaiting assignment.
	Pending

	// Assigned means a delivery partner has been selected for the order.
	Assigned

	// Picked means the assigned partner has collected the order.
	Picked

	// Delivered is the terminal success state. The order's updatedAt
	// timestamp at this point serves as the completion time.
	Delivered

	// Canceled is a tolerated terminal state (see type doc).
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		Picked:    "picked",
		Delivered: "delivered",
		Canceled:  "canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Assigned:  "assigned",
		Picked:    "picked",
		Delivered: "delivered",
		Canceled:  "canceled",
	}
}

// StatusFromString restores a Status from its persisted string form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase persisted form of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOpen reports whether the order still occupies the delivery pipeline
// (anything before the terminal Delivered/Canceled states).
func (s Status) IsOpen() bool {
	return s == Pending || s == Assigned || s == Picked
}

// IsInProgress reports whether an assigned partner is actively working
// the order.
func (s Status) IsInProgress() bool {
	return s == Assigned || s == Picked
}
