package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetDashboardSummaryQueryIsNotConstructed = errors.New(
	"GetDashboardSummaryQuery must be created via NewGetDashboardSummaryQuery constructor",
)

// GetDashboardSummaryQuery retrieves the admin dashboard headline
// numbers: open work, partner availability, recent assignment volume,
// and the busiest delivery areas.
type GetDashboardSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDashboardSummaryQuery creates a query for the admin dashboard.
func NewGetDashboardSummaryQuery() GetDashboardSummaryQuery {
	return GetDashboardSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardSummaryQueryIsNotConstructed)
}

// AreaCount is one row of the busiest-areas breakdown.
type AreaCount struct {
	Area  string
	Count int
}

// DashboardSummaryResponse is the admin dashboard read model.
type DashboardSummaryResponse struct {
	TotalOrders       int
	OpenOrders        int
	DeliveredOrders   int
	AvailablePartners int
	PendingPartners   int
	Assignments24h    int
	TopAreas          []AreaCount
}
