// Package assignmentrepo implements persistence for the append-only
// assignment ledger.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for one ledger entry.
// PartnerID and Reason are nullable: failed entries have no partner, and
// successes carry no reason.
type AssignmentDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerID *uuid.UUID `gorm:"type:uuid;index"`
	Timestamp time.Time  `gorm:"not null;index"`
	Status    string     `gorm:"type:varchar(16);not null"`
	Reason    *string    `gorm:"type:text"`
}

// TableName overrides GORM's default naming to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	var partnerID *uuid.UUID
	if aggregate.PartnerID() != nil {
		raw := aggregate.PartnerID().Bytes()
		partnerID = &raw
	}

	var reason *string
	if aggregate.Reason() != "" {
		value := aggregate.Reason()
		reason = &value
	}

	return AssignmentDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		PartnerID: partnerID,
		Timestamp: aggregate.Timestamp(),
		Status:    aggregate.Status().String(),
		Reason:    reason,
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, idErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if idErr != nil {
			return nil, idErr
		}
		partnerID = &pID
	}

	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var reason string
	if dto.Reason != nil {
		reason = *dto.Reason
	}

	return assignment.RestoreAssignment(id, orderID, partnerID, dto.Timestamp, status, reason)
}
