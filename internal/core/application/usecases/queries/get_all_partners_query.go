package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllPartnersQueryIsNotConstructed = errors.New(
	"GetAllPartnersQuery must be created via NewGetAllPartnersQuery constructor",
)

// GetAllPartnersQuery retrieves the partner directory. An optional
// pending-only filter backs the onboarding review screen.
type GetAllPartnersQuery struct {
	pendingOnly bool

	guard guard.ConstructorGuard
}

// NewGetAllPartnersQuery creates a query over the full directory.
func NewGetAllPartnersQuery() GetAllPartnersQuery {
	return GetAllPartnersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetPendingPartnersQuery creates a query limited to partners with
// applications awaiting review.
func NewGetPendingPartnersQuery() GetAllPartnersQuery {
	return GetAllPartnersQuery{pendingOnly: true, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through a constructor.
func (q GetAllPartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllPartnersQueryIsNotConstructed)
}

// PendingOnly reports whether the listing is limited to pending applications.
func (q GetAllPartnersQuery) PendingOnly() bool {
	return q.pendingOnly
}

// PartnerResponse is the partner read model for directory listings.
// Credentials are deliberately absent.
type PartnerResponse struct {
	ID              kernel.UUID
	Name            string
	Email           string
	Phone           string
	Status          string
	CurrentLoad     int
	Areas           []string
	ShiftStart      string
	ShiftEnd        string
	Rating          float64
	CompletedOrders int
	CancelledOrders int
}
