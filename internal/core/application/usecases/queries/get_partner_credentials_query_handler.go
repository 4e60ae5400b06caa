package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPartnerCredentialsQueryHandler looks up login credentials by email.
type GetPartnerCredentialsQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnerCredentialsQueryHandler creates a handler for credential lookups.
func NewGetPartnerCredentialsQueryHandler(db *gorm.DB) GetPartnerCredentialsQueryHandler {
	return GetPartnerCredentialsQueryHandler{db: db}
}

// Handle executes the lookup. Returns an object-not-found error for
// unknown emails; the HTTP layer maps it to the same response as a wrong
// password so the API does not leak which emails exist.
func (h GetPartnerCredentialsQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerCredentialsQuery,
) (PartnerCredentialsResponse, error) {
	if err := query.Validate(); err != nil {
		return PartnerCredentialsResponse{}, err
	}

	var (
		response PartnerCredentialsResponse
		id       uuid.UUID
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, password_hash, role, status
		FROM partners
		WHERE email = ?
	`, query.Email()).Row().Scan(
		&id,
		&response.Name,
		&response.PasswordHash,
		&response.Role,
		&response.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return PartnerCredentialsResponse{}, errs.NewObjectNotFoundError("partner", query.Email())
	}
	if err != nil {
		return PartnerCredentialsResponse{}, err
	}

	partnerID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return PartnerCredentialsResponse{}, err
	}
	response.ID = partnerID

	return response, nil
}
