// Package orderrepo implements order persistence. Order lines are stored
// as a JSONB document on the order row; everything else maps to plain
// columns.
package orderrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber     int64      `gorm:"type:bigint;not null;uniqueIndex"`
	CustomerName    string     `gorm:"type:varchar(255);not null"`
	CustomerPhone   string     `gorm:"type:varchar(32);not null"`
	CustomerAddress string     `gorm:"type:text;not null"`
	Area            string     `gorm:"type:varchar(255);not null;index"`
	Items           []byte     `gorm:"type:jsonb;not null"`
	TotalAmount     float64    `gorm:"type:double precision;not null"`
	Status          string     `gorm:"type:varchar(16);not null;index"`
	ScheduledFor    time.Time  `gorm:"not null"`
	AssignedTo      *uuid.UUID `gorm:"type:uuid;index"`

	// The aggregate owns both timestamps (updated_at doubles as the
	// completion time for delivered orders), so GORM's automatic
	// timestamping is turned off.
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the JSONB shape of one order line.
type itemDTO struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	var assignedTo *uuid.UUID
	if aggregate.AssignedTo() != nil {
		raw := aggregate.AssignedTo().Bytes()
		assignedTo = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		CustomerName:    aggregate.Customer().Name,
		CustomerPhone:   aggregate.Customer().Phone,
		CustomerAddress: aggregate.Customer().Address,
		Area:            aggregate.Area(),
		Items:           itemsJSON,
		TotalAmount:     aggregate.TotalAmount(),
		Status:          aggregate.Status().String(),
		ScheduledFor:    aggregate.ScheduledFor(),
		AssignedTo:      assignedTo,
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var itemDTOs []itemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, item := range itemDTOs {
		items = append(items, order.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		partnerID, idErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if idErr != nil {
			return nil, idErr
		}
		assignedTo = &partnerID
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		order.Customer{
			Name:    dto.CustomerName,
			Phone:   dto.CustomerPhone,
			Address: dto.CustomerAddress,
		},
		dto.Area,
		items,
		status,
		dto.ScheduledFor,
		assignedTo,
		dto.TotalAmount,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
