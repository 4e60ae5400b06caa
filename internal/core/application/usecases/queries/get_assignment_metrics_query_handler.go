package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// recentAssignmentsWindow bounds the "current activity" slice of the
// metrics view: successful matches recorded within it count as active.
const recentAssignmentsWindow = 24 * time.Hour

// GetAssignmentMetricsQueryHandler serves the metrics dashboard: the
// stored document from the last evaluation run plus live activity and
// availability. It never recomputes the metrics itself; that is the
// evaluation command's job.
type GetAssignmentMetricsQueryHandler struct {
	db     *gorm.DB
	ledger ports.AssignmentRepository
}

// NewGetAssignmentMetricsQueryHandler creates a handler for metrics queries.
func NewGetAssignmentMetricsQueryHandler(
	db *gorm.DB, ledger ports.AssignmentRepository,
) GetAssignmentMetricsQueryHandler {
	return GetAssignmentMetricsQueryHandler{db: db, ledger: ledger}
}

// Handle executes the query. A missing metrics document is not an error:
// the response carries zero metrics until the first evaluation runs.
func (h GetAssignmentMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentMetricsQuery,
) (AssignmentMetricsResponse, error) {
	if err := query.Validate(); err != nil {
		return AssignmentMetricsResponse{}, err
	}

	var response AssignmentMetricsResponse

	var failureReasons []byte
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			total_assigned,
			success_rate,
			average_time_seconds,
			failure_reasons,
			updated_at
		FROM assignment_metrics
		WHERE id = 1
	`).Row().Scan(
		&response.Metrics.TotalAssigned,
		&response.Metrics.SuccessRate,
		&response.Metrics.AverageTimeSeconds,
		&failureReasons,
		&response.EvaluatedAt,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AssignmentMetricsResponse{}, err
	}

	if len(failureReasons) > 0 {
		if err = json.Unmarshal(failureReasons, &response.Metrics.FailureReasons); err != nil {
			return AssignmentMetricsResponse{}, err
		}
	}

	since := time.Now().UTC().Add(-recentAssignmentsWindow)
	entries, err := h.ledger.GetAllSince(ctx, since)
	if err != nil {
		return AssignmentMetricsResponse{}, err
	}

	response.ActiveAssignments = make([]*assignment.Assignment, 0, len(entries))
	for _, entry := range entries {
		if entry.IsSuccess() {
			response.ActiveAssignments = append(response.ActiveAssignments, entry)
		}
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'active' AND current_load < 3),
			COUNT(*) FILTER (WHERE status = 'active' AND current_load >= 3),
			COUNT(*) FILTER (WHERE status = 'inactive')
		FROM partners
	`).Row().Scan(
		&response.ActivePartners,
		&response.AvailablePartners,
		&response.BusyPartners,
		&response.OfflinePartners,
	)
	if err != nil {
		return AssignmentMetricsResponse{}, err
	}

	return response, nil
}
