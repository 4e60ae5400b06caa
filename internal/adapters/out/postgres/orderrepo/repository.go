package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// inProgressStatuses are the order states that count toward a partner's
// active workload.
func inProgressStatuses() []string {
	return []string{order.Assigned.String(), order.Picked.String()}
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every order, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllDelivered retrieves all delivered orders.
func (r *GormOrderRepository) GetAllDelivered(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", order.Delivered.String()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByPartner retrieves all orders assigned to the partner, newest first.
func (r *GormOrderRepository) GetByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error) {
	if err := partnerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("assigned_to = ?", partnerID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountInProgressByPartner counts the partner's orders in Assigned or
// Picked status.
func (r *GormOrderRepository) CountInProgressByPartner(ctx context.Context, partnerID kernel.UUID) (int, error) {
	if err := partnerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("assigned_to = ?", partnerID.Bytes()).
		Where("status IN ?", inProgressStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// CountDeliveredByPartnerSince counts the partner's orders delivered at
// or after since. Delivery time is the row's last update.
func (r *GormOrderRepository) CountDeliveredByPartnerSince(
	ctx context.Context, partnerID kernel.UUID, since time.Time,
) (int, error) {
	if err := partnerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("assigned_to = ?", partnerID.Bytes()).
		Where("status = ?", order.Delivered.String()).
		Where("updated_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetDeliveredByPartner retrieves the partner's delivered orders.
func (r *GormOrderRepository) GetDeliveredByPartner(
	ctx context.Context, partnerID kernel.UUID,
) ([]*order.Order, error) {
	if err := partnerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("assigned_to = ?", partnerID.Bytes()).
		Where("status = ?", order.Delivered.String()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountByPartnerAndStatus counts the partner's orders in the given status.
func (r *GormOrderRepository) CountByPartnerAndStatus(
	ctx context.Context, partnerID kernel.UUID, status order.Status,
) (int, error) {
	if err := partnerID.Validate(); err != nil {
		return 0, err
	}
	if err := status.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("assigned_to = ?", partnerID.Bytes()).
		Where("status = ?", status.String()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
