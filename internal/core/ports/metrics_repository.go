package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
)

// MetricsRepository defines the persistence contract for the single
// stored assignment-metrics document. Each evaluation run replaces the
// stored value wholesale.
type MetricsRepository interface {
	// Replace stores the freshly computed metrics, overwriting the
	// previous document.
	Replace(ctx context.Context, metrics assignment.Metrics) error

	// GetLatest retrieves the most recently stored metrics. Returns a
	// zero-valued Metrics when no evaluation has run yet.
	GetLatest(ctx context.Context) (assignment.Metrics, error)
}
