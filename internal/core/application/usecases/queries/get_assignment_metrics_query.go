package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentMetricsQueryIsNotConstructed = errors.New(
	"GetAssignmentMetricsQuery must be created via NewGetAssignmentMetricsQuery constructor",
)

// GetAssignmentMetricsQuery retrieves the stored global metrics document
// together with a live partner-availability breakdown.
type GetAssignmentMetricsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAssignmentMetricsQuery creates a query for the metrics view.
func NewGetAssignmentMetricsQuery() GetAssignmentMetricsQuery {
	return GetAssignmentMetricsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentMetricsQueryIsNotConstructed)
}

// AssignmentMetricsResponse combines the last stored metrics with live
// operational state: the successful matches of the last 24 hours and the
// partner pool broken down by availability. EvaluatedAt is zero when no
// evaluation has run yet.
type AssignmentMetricsResponse struct {
	Metrics           assignment.Metrics
	EvaluatedAt       time.Time
	ActiveAssignments []*assignment.Assignment
	ActivePartners    int
	AvailablePartners int
	BusyPartners      int
	OfflinePartners   int
}
