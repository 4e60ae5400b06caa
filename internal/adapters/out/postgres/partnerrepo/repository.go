package partnerrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// maxLoadForEligibility mirrors partner.MaxConcurrentOrders inside the
// eligibility predicate.
const maxLoadForEligibility = partner.MaxConcurrentOrders

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerRepository creates a new GORM partner repository.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new partner to the database.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing partner to the database.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a partner from the database.
func (r *GormPartnerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&PartnerDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByEmail retrieves a partner by login email.
func (r *GormPartnerRepository) GetByEmail(ctx context.Context, email string) (*partner.Partner, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", email)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every partner sorted by name.
func (r *GormPartnerRepository) GetAll(ctx context.Context) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllPending retrieves partners with applications awaiting review.
func (r *GormPartnerRepository) GetAllPending(ctx context.Context) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", partner.Pending.String()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllSchedulable retrieves approved partners, on or off shift.
func (r *GormPartnerRepository) GetAllSchedulable(ctx context.Context) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{partner.Active.String(), partner.Inactive.String()}).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetEligible retrieves assignment candidates: approved partners below
// the load ceiling servicing the area whose shift contains timeOfDay.
// The shift bounds and the probe are all canonical "HH:mm" strings, so
// the BETWEEN-style comparison below is chronological within one day; a
// window stored with end < start matches nothing.
func (r *GormPartnerRepository) GetEligible(
	ctx context.Context, area string, timeOfDay kernel.TimeOfDay,
) ([]*partner.Partner, error) {
	if area == "" {
		return nil, errs.NewValueIsRequiredError("area")
	}
	if err := timeOfDay.Validate(); err != nil {
		return nil, err
	}

	probe := timeOfDay.String()

	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{partner.Active.String(), partner.Inactive.String()}).
		Where("current_load < ?", maxLoadForEligibility).
		Where("? = ANY(areas)", area).
		Where("shift_start <= ? AND shift_end >= ?", probe, probe).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []PartnerDTO) ([]*partner.Partner, error) {
	partners := make([]*partner.Partner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, nil
}
