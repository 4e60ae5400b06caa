package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignmentsQueryHandler retrieves ledger entries with raw SQL.
type GetAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignmentsQueryHandler creates a handler for ledger listing queries.
func NewGetAssignmentsQueryHandler(db *gorm.DB) GetAssignmentsQueryHandler {
	return GetAssignmentsQueryHandler{db: db}
}

// Handle executes the query and returns ledger entries, newest first.
func (h GetAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentsQuery,
) ([]AssignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			partner_id,
			timestamp,
			status,
			reason
		FROM assignments
		ORDER BY timestamp DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AssignmentResponse, 0)

	for rows.Next() {
		var (
			response  AssignmentResponse
			id        uuid.UUID
			orderID   uuid.UUID
			partnerID uuid.NullUUID
			reason    sql.NullString
		)

		if err = rows.Scan(
			&id,
			&orderID,
			&partnerID,
			&response.Timestamp,
			&response.Status,
			&reason,
		); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = entryID

		entryOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = entryOrderID

		if partnerID.Valid {
			entryPartnerID, idErr := kernel.UUIDFromBytes(partnerID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			response.PartnerID = &entryPartnerID
		}

		response.Reason = reason.String
		entries = append(entries, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
