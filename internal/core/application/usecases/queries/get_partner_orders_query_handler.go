package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetPartnerOrdersQueryHandler retrieves one partner's assigned orders
// with raw SQL, reusing the shared order read model.
type GetPartnerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnerOrdersQueryHandler creates a handler for partner order queries.
func NewGetPartnerOrdersQueryHandler(db *gorm.DB) GetPartnerOrdersQueryHandler {
	return GetPartnerOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the partner's orders, newest first.
func (h GetPartnerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_name,
			customer_phone,
			customer_address,
			area,
			status,
			total_amount,
			scheduled_for,
			assigned_to,
			created_at,
			updated_at
		FROM orders
		WHERE assigned_to = ?
		ORDER BY created_at DESC
	`, query.PartnerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}
