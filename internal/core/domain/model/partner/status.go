package partner

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery partner account.
//
// State transitions:
//
//	New ──> Pending ──┬──> Inactive <──> Active
//	          ^       │
//	          └───────┘
//	       (rejected application)
//
// New is a freshly registered account, Pending an onboarding application
// awaiting review. Approval lands the partner in Inactive (off shift);
// the shift clock then toggles Inactive and Active. Both Active and
// Inactive partners are schedulable for assignment — eligibility is about
// qualification, not whether the partner is presently clocked in.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// New is the initial status of a registered account.
	New

	// Pending marks an onboarding application awaiting admin review.
	Pending

	// Active means the partner is clocked in for their shift.
	Active

	// Inactive means the partner is approved but currently off shift.
	Inactive
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		New:      "new",
		Pending:  "pending",
		Active:   "active",
		Inactive: "inactive",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:      "new",
		Pending:  "pending",
		Active:   "active",
		Inactive: "inactive",
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
		"status is invalid", fmt.Errorf("%q is not a valid partner status", s))
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

// IsSchedulable reports whether a partner in this status may receive
// assignments. Active and Inactive both qualify.
func (s Status) IsSchedulable() bool {
	return s == Active || s == Inactive
}

// CanClockIn reports whether the shift clock may move this status to Active.
func (s Status) CanClockIn() bool {
	return s == Inactive
}

// CanClockOut reports whether the shift clock may move this status to Inactive.
func (s Status) CanClockOut() bool {
	return s == Active
}
