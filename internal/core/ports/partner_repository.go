// Package ports defines the contracts between the application core and
// infrastructure: repositories for the aggregates, the unit of work that
// binds them into one transaction, and the outbound event publisher.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for partner aggregates.
type PartnerRepository interface {
	// Add persists a new partner aggregate to storage.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Update persists changes to an existing partner aggregate.
	Update(ctx context.Context, aggregate *partner.Partner) error

	// Delete removes a partner from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a partner aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// GetByEmail retrieves a partner by login email, for authentication.
	GetByEmail(ctx context.Context, email string) (*partner.Partner, error)

	// GetAll retrieves every partner, for directory listings.
	GetAll(ctx context.Context) ([]*partner.Partner, error)

	// GetAllPending retrieves partners awaiting onboarding review.
	GetAllPending(ctx context.Context) ([]*partner.Partner, error)

	// GetAllSchedulable retrieves approved partners (Active or Inactive),
	// the population whose on-shift status tracks their shift windows.
	GetAllSchedulable(ctx context.Context) ([]*partner.Partner, error)

	// GetEligible retrieves assignment candidates for an order: approved
	// partners below the load ceiling that service the area and whose
	// shift window contains timeOfDay. The containment check compares the
	// "HH:mm" bounds directly, so windows wrapping past midnight match
	// nothing.
	GetEligible(ctx context.Context, area string, timeOfDay kernel.TimeOfDay) ([]*partner.Partner, error)
}
