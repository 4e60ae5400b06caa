package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new customer
// order. The order total is derived from the item lines, not supplied by
// the caller.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customer     order.Customer
	area         string
	items        []order.Item
	scheduledFor time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer order.Customer,
	area string,
	items []order.Item,
	scheduledFor time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setArea(area),
		cmd.setItems(items),
		cmd.setScheduledFor(scheduledFor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the order's recipient details.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Area returns the delivery area label.
func (c CreateOrderCommand) Area() string {
	return c.area
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// ScheduledFor returns the requested delivery timestamp.
func (c CreateOrderCommand) ScheduledFor() time.Time {
	return c.scheduledFor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if customer.Name == "" || customer.Phone == "" || customer.Address == "" {
		return errs.NewValueIsRequiredError("customer name, phone, and address")
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setArea(area string) error {
	if area == "" {
		return order.ErrAreaIsRequired
	}

	c.area = area
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setScheduledFor(scheduledFor time.Time) error {
	if scheduledFor.IsZero() {
		return errs.NewValueIsRequiredError("scheduled for")
	}

	c.scheduledFor = scheduledFor
	return nil
}
