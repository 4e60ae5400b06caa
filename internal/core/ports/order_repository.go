package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllDelivered retrieves all orders in Delivered status, the
	// population the average delivery time is computed over.
	GetAllDelivered(ctx context.Context) ([]*order.Order, error)

	// GetByPartner retrieves all orders assigned to the given partner,
	// newest first.
	GetByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)

	// CountInProgressByPartner counts the partner's orders in Assigned or
	// Picked status.
	CountInProgressByPartner(ctx context.Context, partnerID kernel.UUID) (int, error)

	// CountDeliveredByPartnerSince counts the partner's orders delivered
	// at or after the given instant.
	CountDeliveredByPartnerSince(ctx context.Context, partnerID kernel.UUID, since time.Time) (int, error)

	// GetDeliveredByPartner retrieves the partner's delivered orders, for
	// the per-partner average delivery time.
	GetDeliveredByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)

	// CountByPartnerAndStatus counts the partner's orders in the given status.
	CountByPartnerAndStatus(ctx context.Context, partnerID kernel.UUID, status order.Status) (int, error)
}
