package assignment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ReasonPartnerNotAvailable is the failure reason recorded when no
// eligible partner exists for an order. The exact wording is part of the
// ledger's data contract; the metrics breakdown groups by it.
const ReasonPartnerNotAvailable = "Partner not available"

var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly
	// initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New(
		"Assignment must be created via NewSuccessfulAssignment or NewFailedAssignment")
	// ErrReasonIsRequired is returned when recording a failure without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// Status is the outcome recorded in a ledger entry.
type Status int

const (
	// StatusUnknown represents an invalid or undefined outcome.
	StatusUnknown Status = iota

	// StatusSuccess records that a partner was selected for the order.
	StatusSuccess

	// StatusFailed records that no partner could be selected.
	StatusFailed
)

// StatusFromString restores a Status from its persisted string form.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "success":
		return StatusSuccess, nil
	case "failed":
		return StatusFailed, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%q is not a valid assignment status", s))
	}
}

// Validate checks if the Status value is one of the defined outcomes.
func (s Status) Validate() error {
	if s != StatusSuccess && s != StatusFailed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase persisted form of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Assignment is one entry of the append-only assignment ledger: the
// recorded outcome of a single attempt to match an order with a partner.
// Entries are immutable once written; the aggregate exposes no mutators
// and the repository contract has no update or delete.
type Assignment struct {
	id        kernel.UUID
	orderID   kernel.UUID
	partnerID *kernel.UUID
	timestamp time.Time
	status    Status
	reason    string
	guard     guard.ConstructorGuard
}

// NewSuccessfulAssignment records that partnerID was selected for orderID,
// timestamped now.
func NewSuccessfulAssignment(id, orderID, partnerID kernel.UUID) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), partnerID.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:        id,
		orderID:   orderID,
		partnerID: &partnerID,
		timestamp: time.Now().UTC(),
		status:    StatusSuccess,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewFailedAssignment records that no partner could be selected for
// orderID, with the failure category in reason. The partner reference is
// nil — null partner IDs occur only on failed entries.
func NewFailedAssignment(id, orderID kernel.UUID, reason string) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrReasonIsRequired
	}

	return &Assignment{
		id:        id,
		orderID:   orderID,
		timestamp: time.Now().UTC(),
		status:    StatusFailed,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstructs a ledger entry from persistent storage.
// Unlike the New* constructors it accepts historical entries that failed
// without a recorded reason; those are excluded from the failure-reason
// breakdown but still count toward the totals.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	partnerID *kernel.UUID,
	timestamp time.Time,
	status Status,
	reason string,
) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Assignment{
		id:        id,
		orderID:   orderID,
		partnerID: partnerID,
		timestamp: timestamp,
		status:    status,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Assignment was created via a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the ledger entry's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the order this attempt was made for.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// PartnerID returns the selected partner's ID, or nil for failed entries.
func (a *Assignment) PartnerID() *kernel.UUID {
	return a.partnerID
}

// Timestamp returns when the attempt was recorded.
func (a *Assignment) Timestamp() time.Time {
	return a.timestamp
}

// Status returns the recorded outcome.
func (a *Assignment) Status() Status {
	return a.status
}

// Reason returns the failure category, empty for successes and for
// historical failures recorded without one.
func (a *Assignment) Reason() string {
	return a.reason
}

// IsSuccess reports whether the entry records a successful match.
func (a *Assignment) IsSuccess() bool {
	return a.status == StatusSuccess
}
