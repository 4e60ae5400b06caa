package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/services"
)

// EvaluateMetricsCommandHandler recomputes the global assignment metrics.
// The full ledger and all delivered orders are read inside one
// transaction, summarized by the MetricsCalculator, and the result
// replaces the stored document. No counter is ever incremented in place,
// so a run always reflects exactly the current ledger.
type EvaluateMetricsCommandHandler struct {
	uowFactory MetricsUoWFactory
	calculator services.MetricsCalculator
}

// NewEvaluateMetricsCommandHandler creates a handler for metrics evaluation.
func NewEvaluateMetricsCommandHandler(uowFactory MetricsUoWFactory) EvaluateMetricsCommandHandler {
	return EvaluateMetricsCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewMetricsCalculator(),
	}
}

// Handle processes the evaluation command and returns the freshly stored
// metrics.
func (h EvaluateMetricsCommandHandler) Handle(
	ctx context.Context, cmd EvaluateMetricsCommand,
) (assignment.Metrics, error) {
	if err := cmd.Validate(); err != nil {
		return assignment.Metrics{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return assignment.Metrics{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger, err := uow.AssignmentRepository().GetAll(ctx)
	if err != nil {
		return assignment.Metrics{}, err
	}

	delivered, err := uow.OrderRepository().GetAllDelivered(ctx)
	if err != nil {
		return assignment.Metrics{}, err
	}

	metrics := h.calculator.Calculate(ledger, delivered)

	if err = uow.MetricsRepository().Replace(ctx, metrics); err != nil {
		return assignment.Metrics{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return assignment.Metrics{}, err
	}

	return metrics, nil
}
