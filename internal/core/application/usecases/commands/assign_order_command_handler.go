package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ErrPartnerNotAvailable is returned when no eligible partner exists for
// the order. The failed attempt is still committed to the ledger before
// the error is returned.
var ErrPartnerNotAvailable = errors.New("partner not available")

// AssignOrderCommandHandler orchestrates the assignment workflow:
//
//  1. Load the order.
//  2. Query partners eligible for its area and scheduled wall-clock time.
//  3. Pick the lowest-scoring candidate.
//  4. On success, bump the partner's load, mark the order assigned, and
//     append a successful ledger entry; on failure, append a failed entry
//     with the "Partner not available" reason.
//
// All writes of one attempt go through a single unit of work, so the
// ledger, the order, and the partner can never disagree about an attempt.
// The recorded event is published after commit, best effort.
type AssignOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	selector   services.PartnerSelector
	publisher  ports.AssignmentEventPublisher
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
// publisher may be nil when no event transport is configured.
func NewAssignOrderCommandHandler(
	uowFactory AssignmentUoWFactory,
	publisher ports.AssignmentEventPublisher,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		selector:   services.NewPartnerSelector(),
		publisher:  publisher,
	}
}

// Handle processes the assignment command and returns the ledger entry it
// recorded. A nil error means a partner was selected; ErrPartnerNotAvailable
// means the attempt failed but was recorded.
func (h AssignOrderCommandHandler) Handle(
	ctx context.Context, cmd AssignOrderCommand,
) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()
	orderRepo := uow.OrderRepository()
	ledger := uow.AssignmentRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	timeOfDay := kernel.TimeOfDayFromTime(ord.ScheduledFor().UTC())
	candidates, err := partnerRepo.GetEligible(ctx, ord.Area(), timeOfDay)
	if err != nil {
		return nil, err
	}

	best, err := h.selector.SelectBest(ord, candidates)
	if errors.Is(err, services.ErrNoEligiblePartner) {
		entry, failErr := assignment.NewFailedAssignment(
			kernel.NewUUID(), ord.ID(), assignment.ReasonPartnerNotAvailable)
		if failErr != nil {
			return nil, failErr
		}

		if failErr = ledger.Add(ctx, entry); failErr != nil {
			return nil, failErr
		}
		if failErr = uow.Commit(ctx); failErr != nil {
			return nil, failErr
		}

		h.publish(ctx, entry)
		return entry, ErrPartnerNotAvailable
	}
	if err != nil {
		return nil, err
	}

	if err = best.TakeOrder(); err != nil {
		return nil, err
	}
	if err = ord.Assign(best.ID()); err != nil {
		return nil, err
	}

	entry, err := assignment.NewSuccessfulAssignment(kernel.NewUUID(), ord.ID(), best.ID())
	if err != nil {
		return nil, err
	}

	if err = ledger.Add(ctx, entry); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, ord); err != nil {
		return nil, err
	}
	if err = partnerRepo.Update(ctx, best); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publish(ctx, entry)
	return entry, nil
}

// publish notifies downstream consumers after commit. Failures are
// swallowed: the attempt is already durable and the event stream is not
// the system of record.
func (h AssignOrderCommandHandler) publish(ctx context.Context, entry *assignment.Assignment) {
	if h.publisher == nil {
		return
	}
	_ = h.publisher.PublishAssignmentRecorded(ctx, entry)
}
