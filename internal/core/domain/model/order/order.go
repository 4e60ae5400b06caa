package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderNumberIsRequired is returned when creating an order without a number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")
	// ErrAreaIsRequired is returned when creating an order without a delivery area.
	ErrAreaIsRequired = errs.NewValueIsRequiredError("area")
	// ErrItemsAreRequired is returned when creating an order with no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Customer identifies the recipient of an order.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Item is a single order line.
type Item struct {
	Name     string
	Quantity int
	Price    float64
}

// Order is the aggregate root for a customer order: what is being
// delivered, where, when it is wanted, and which partner is carrying it.
//
// The createdAt/updatedAt pair doubles as the delivery-duration source for
// metrics: updatedAt is refreshed on every status change, so for a
// delivered order it marks completion.
//
// Assign performs no check of the current status: an order that is
// already assigned, picked, or even delivered can be assigned again.
// Callers are expected not to resubmit; the aggregate itself keeps no
// idempotency guard. Known gap, covered by a regression test.
type Order struct {
	id          kernel.UUID
	orderNumber int64
	customer    Customer
	area        string
	items       []Item
	totalAmount float64
	status      Status
	scheduledFor time.Time
	assignedTo  *kernel.UUID
	createdAt   time.Time
	updatedAt   time.Time
	guard       guard.ConstructorGuard
}

// NewOrder creates a new order in Pending status with createdAt/updatedAt
// set to the current time.
func NewOrder(
	id kernel.UUID,
	orderNumber int64,
	customer Customer,
	area string,
	items []Item,
	scheduledFor time.Time,
	totalAmount float64,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomer(customer),
		o.setArea(area),
		o.setItems(items),
		o.setScheduledFor(scheduledFor),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage,
// including its status, assignment, and timestamps as persisted.
func RestoreOrder(
	id kernel.UUID,
	orderNumber int64,
	customer Customer,
	area string,
	items []Item,
	status Status,
	scheduledFor time.Time,
	assignedTo *kernel.UUID,
	totalAmount float64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		assignedTo: assignedTo,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomer(customer),
		o.setArea(area),
		o.setItems(items),
		o.setStatus(status),
		o.setScheduledFor(scheduledFor),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate checks that the Order was created via a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() int64 {
	return o.orderNumber
}

// Customer returns the order's recipient details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Area returns the delivery area label.
func (o *Order) Area() string {
	return o.area
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// TotalAmount returns the order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the order's current delivery status.
func (o *Order) Status() Status {
	return o.status
}

// ScheduledFor returns the requested delivery timestamp.
func (o *Order) ScheduledFor() time.Time {
	return o.scheduledFor
}

// AssignedTo returns the assigned partner's ID, or nil if unassigned.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

// CreatedAt returns the order's creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp. For delivered orders
// this is the completion-time proxy used by the metrics computations.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Assign records the selected partner and moves the order to Assigned.
// See the type documentation: no current-status guard is performed.
func (o *Order) Assign(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	o.status = Assigned
	o.assignedTo = &partnerID
	o.updatedAt = time.Now().UTC()
	return nil
}

// ChangeStatus applies a requested status and refreshes updatedAt.
// Any defined status is accepted; the service trusts its operators to
// follow the linear progression and performs no transition check, as the
// production system before it did.
func (o *Order) ChangeStatus(status Status) error {
	if err := o.setStatus(status); err != nil {
		return err
	}

	o.updatedAt = time.Now().UTC()
	return nil
}

// DeliveryDuration returns the time between creation and the last update.
// Meaningful as a delivery time only for orders in Delivered status.
func (o *Order) DeliveryDuration() time.Duration {
	return o.updatedAt.Sub(o.createdAt)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber int64) error {
	if orderNumber <= 0 {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer.Name == "" || customer.Phone == "" || customer.Address == "" {
		return errs.NewValueIsRequiredError("customer name, phone, and address")
	}
	o.customer = customer
	return nil
}

func (o *Order) setArea(area string) error {
	if area == "" {
		return ErrAreaIsRequired
	}
	o.area = area
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if item.Name == "" || item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"items are invalid",
				fmt.Errorf("item %q with quantity %d", item.Name, item.Quantity))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setScheduledFor(scheduledFor time.Time) error {
	if scheduledFor.IsZero() {
		return errs.NewValueIsRequiredError("scheduled for")
	}
	o.scheduledFor = scheduledFor
	return nil
}

func (o *Order) setTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total amount is invalid", fmt.Errorf("%f is negative", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}
