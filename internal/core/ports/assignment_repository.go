package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
)

// AssignmentRepository defines the persistence contract for the
// append-only assignment ledger. There is deliberately no update or
// delete: entries are immutable history.
type AssignmentRepository interface {
	// Add appends a new entry to the ledger.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// GetAll retrieves the complete ledger, newest first.
	GetAll(ctx context.Context) ([]*assignment.Assignment, error)

	// GetAllSince retrieves entries recorded at or after the given
	// instant, newest first. Used by the recent-activity dashboards.
	GetAllSince(ctx context.Context, since time.Time) ([]*assignment.Assignment, error)
}
