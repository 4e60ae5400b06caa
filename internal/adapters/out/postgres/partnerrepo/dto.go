// Package partnerrepo implements partner persistence: the table mapping
// for the partner aggregate and the GORM repository over it, including
// the eligibility query the assignment engine filters candidates with.
package partnerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartnerDTO represents the database structure for persisting partner
// aggregates. The shift window is stored as two "HH:mm" strings, which is
// what lets the eligibility query compare them to a wall-clock time with
// plain string comparison.
type PartnerDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Email           string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash    string         `gorm:"type:varchar(255);not null"`
	Role            string         `gorm:"type:varchar(16);not null"`
	Phone           string         `gorm:"type:varchar(32);not null"`
	Status          string         `gorm:"type:varchar(16);not null;index"`
	CurrentLoad     int            `gorm:"type:int;not null"`
	Areas           pq.StringArray `gorm:"type:text[]"`
	ShiftStart      string         `gorm:"type:varchar(5);not null"`
	ShiftEnd        string         `gorm:"type:varchar(5);not null"`
	Rating          float64        `gorm:"type:double precision;not null"`
	CompletedOrders int            `gorm:"type:int;not null"`
	CancelledOrders int            `gorm:"type:int;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default naming to use "partners".
func (PartnerDTO) TableName() string {
	return "partners"
}

func fromDomain(aggregate *partner.Partner) PartnerDTO {
	metrics := aggregate.PartnerMetrics()
	shift := aggregate.Shift()

	return PartnerDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Email:           aggregate.Email(),
		PasswordHash:    aggregate.PasswordHash(),
		Role:            string(aggregate.Role()),
		Phone:           aggregate.Phone(),
		Status:          aggregate.Status().String(),
		CurrentLoad:     aggregate.CurrentLoad(),
		Areas:           aggregate.Areas(),
		ShiftStart:      shift.Start().String(),
		ShiftEnd:        shift.End().String(),
		Rating:          metrics.Rating,
		CompletedOrders: metrics.CompletedOrders,
		CancelledOrders: metrics.CancelledOrders,
	}
}

func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := partner.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	start, err := kernel.NewTimeOfDay(dto.ShiftStart)
	if err != nil {
		return nil, err
	}

	end, err := kernel.NewTimeOfDay(dto.ShiftEnd)
	if err != nil {
		return nil, err
	}

	shift, err := partner.NewShiftWindow(start, end)
	if err != nil {
		return nil, err
	}

	return partner.RestorePartner(
		id,
		dto.Name,
		dto.Email,
		dto.PasswordHash,
		partner.Role(dto.Role),
		dto.Phone,
		status,
		dto.CurrentLoad,
		dto.Areas,
		shift,
		partner.Metrics{
			Rating:          dto.Rating,
			CompletedOrders: dto.CompletedOrders,
			CancelledOrders: dto.CancelledOrders,
		},
	)
}
