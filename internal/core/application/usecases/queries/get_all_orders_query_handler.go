package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves the order listing straight from the
// database with raw SQL, skipping aggregate reconstruction.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for order listing queries.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query and returns all orders, newest first.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
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
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// scanOrderRows converts order rows into the shared read model. Used by
// every listing that selects the standard order column set.
func scanOrderRows(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	for rows.Next() {
		var (
			response   OrderResponse
			id         uuid.UUID
			assignedTo uuid.NullUUID
		)

		if err := rows.Scan(
			&id,
			&response.OrderNumber,
			&response.CustomerName,
			&response.CustomerPhone,
			&response.CustomerAddress,
			&response.Area,
			&response.Status,
			&response.TotalAmount,
			&response.ScheduledFor,
			&assignedTo,
			&response.CreatedAt,
			&response.UpdatedAt,
		); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		response.ID = orderID

		if assignedTo.Valid {
			partnerID, err := kernel.UUIDFromBytes(assignedTo.UUID[:])
			if err != nil {
				return nil, err
			}
			response.AssignedTo = &partnerID
		}

		orders = append(orders, response)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
