package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentsQueryIsNotConstructed = errors.New(
	"GetAssignmentsQuery must be created via NewGetAssignmentsQuery constructor",
)

// defaultAssignmentsLimit caps the ledger listing when callers pass no limit.
const defaultAssignmentsLimit = 100

// GetAssignmentsQuery retrieves recent assignment ledger entries, newest
// first.
type GetAssignmentsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetAssignmentsQuery creates a query for the most recent ledger
// entries. A non-positive limit falls back to the default cap.
func NewGetAssignmentsQuery(limit int) GetAssignmentsQuery {
	if limit <= 0 {
		limit = defaultAssignmentsLimit
	}

	return GetAssignmentsQuery{limit: limit, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentsQueryIsNotConstructed)
}

// Limit returns the maximum number of entries to return.
func (q GetAssignmentsQuery) Limit() int {
	return q.limit
}

// AssignmentResponse is the ledger entry read model.
type AssignmentResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	PartnerID *kernel.UUID
	Timestamp time.Time
	Status    string
	Reason    string
}
