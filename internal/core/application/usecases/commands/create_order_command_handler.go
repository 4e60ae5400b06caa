package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles order registration. A human-facing
// order number is generated from the clock and the total is summed from
// the item lines; the order starts in Pending status, awaiting assignment.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the order registration command and returns the created
// aggregate.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var total float64
	for _, item := range cmd.Items() {
		total += item.Price * float64(item.Quantity)
	}

	ord, err := order.NewOrder(
		cmd.OrderID(),
		h.now().UnixMilli(),
		cmd.Customer(),
		cmd.Area(),
		cmd.Items(),
		cmd.ScheduledFor(),
		total,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ord, nil
}
