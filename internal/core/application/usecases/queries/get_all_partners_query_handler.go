package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAllPartnersQueryHandler retrieves the partner directory with raw SQL.
type GetAllPartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllPartnersQueryHandler creates a handler for partner directory queries.
func NewGetAllPartnersQueryHandler(db *gorm.DB) GetAllPartnersQueryHandler {
	return GetAllPartnersQueryHandler{db: db}
}

// Handle executes the query and returns partners sorted by name.
func (h GetAllPartnersQueryHandler) Handle(
	ctx context.Context,
	query GetAllPartnersQuery,
) ([]PartnerResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			name,
			email,
			phone,
			status,
			current_load,
			areas,
			shift_start,
			shift_end,
			rating,
			completed_orders,
			cancelled_orders
		FROM partners
	`
	if query.PendingOnly() {
		sqlQuery += ` WHERE status = 'pending'`
	}
	sqlQuery += ` ORDER BY name`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]PartnerResponse, 0)

	for rows.Next() {
		var (
			response PartnerResponse
			id       uuid.UUID
			areas    pq.StringArray
		)

		if err = rows.Scan(
			&id,
			&response.Name,
			&response.Email,
			&response.Phone,
			&response.Status,
			&response.CurrentLoad,
			&areas,
			&response.ShiftStart,
			&response.ShiftEnd,
			&response.Rating,
			&response.CompletedOrders,
			&response.CancelledOrders,
		); err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = partnerID
		response.Areas = areas

		partners = append(partners, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
