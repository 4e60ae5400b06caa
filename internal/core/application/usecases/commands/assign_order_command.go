package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand requests that a delivery partner be selected for a
// specific order. It is the entry point of the assignment workflow: the
// handler filters eligible partners, scores them, and records the outcome
// in the assignment ledger whether or not a partner was found.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	entry, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrPartnerNotAvailable) {
//	    // no eligible partner; a failed ledger entry was still recorded
//	}
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign the given order.
func NewAssignOrderCommand(orderID kernel.UUID) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
