// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS
// architecture. Queries return optimized read models for specific use
// cases and bypass the aggregates entirely.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order for the back-office listing,
// newest first.
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// OrderResponse is the order read model shared by the order listings.
type OrderResponse struct {
	ID              kernel.UUID
	OrderNumber     int64
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Area            string
	Status          string
	TotalAmount     float64
	ScheduledFor    time.Time
	AssignedTo      *kernel.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
