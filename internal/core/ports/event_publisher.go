package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
)

// AssignmentEventPublisher notifies downstream consumers that a ledger
// entry was recorded. Publishing happens after the transaction commits
// and is best effort: a publish failure never fails the assignment.
type AssignmentEventPublisher interface {
	PublishAssignmentRecorded(ctx context.Context, entry *assignment.Assignment) error
}
