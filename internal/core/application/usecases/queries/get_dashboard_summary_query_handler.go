package queries

import (
	"context"

	"gorm.io/gorm"
)

// topAreasLimit caps the busiest-areas breakdown on the admin dashboard.
const topAreasLimit = 3

// GetDashboardSummaryQueryHandler aggregates the admin dashboard numbers
// with raw SQL. Each block is one aggregate query; the handler does no
// arithmetic of its own beyond assembling the response.
type GetDashboardSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardSummaryQueryHandler creates a handler for dashboard queries.
func NewGetDashboardSummaryQueryHandler(db *gorm.DB) GetDashboardSummaryQueryHandler {
	return GetDashboardSummaryQueryHandler{db: db}
}

// Handle executes the query and returns the assembled summary.
func (h GetDashboardSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardSummaryQuery,
) (DashboardSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return DashboardSummaryResponse{}, err
	}

	var response DashboardSummaryResponse

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('pending', 'assigned', 'picked')),
			COUNT(*) FILTER (WHERE status = 'delivered')
		FROM orders
	`).Row().Scan(&response.TotalOrders, &response.OpenOrders, &response.DeliveredOrders)
	if err != nil {
		return DashboardSummaryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = 'active' AND current_load < 3),
			COUNT(*) FILTER (WHERE status = 'pending')
		FROM partners
	`).Row().Scan(&response.AvailablePartners, &response.PendingPartners)
	if err != nil {
		return DashboardSummaryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM assignments
		WHERE timestamp >= NOW() - INTERVAL '24 hours'
	`).Row().Scan(&response.Assignments24h)
	if err != nil {
		return DashboardSummaryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT area, COUNT(*) AS order_count
		FROM orders
		GROUP BY area
		ORDER BY order_count DESC, area
		LIMIT ?
	`, topAreasLimit).Rows()
	if err != nil {
		return DashboardSummaryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var area AreaCount
		if err = rows.Scan(&area.Area, &area.Count); err != nil {
			return DashboardSummaryResponse{}, err
		}
		response.TopAreas = append(response.TopAreas, area)
	}

	if err = rows.Err(); err != nil {
		return DashboardSummaryResponse{}, err
	}

	return response, nil
}
