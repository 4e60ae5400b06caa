package partner

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MaxConcurrentOrders is the capacity ceiling for a partner's current
	// load. A partner carrying this many orders is ineligible for new
	// assignments.
	MaxConcurrentOrders = 3

	// ratingNudgePerOrder is the rating delta applied per net completed
	// order when a dashboard snapshot is computed.
	ratingNudgePerOrder = 0.01

	// MinRating and MaxRating bound a partner's rating.
	MinRating = 0.0
	MaxRating = 5.0
)

// Domain errors for partner operations.
var (
	// ErrNameIsRequired is returned when creating a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when creating a partner without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrPasswordHashIsRequired is returned when creating a partner without credentials.
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password hash")
	// ErrPhoneIsRequired is returned when creating a partner without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized Partner.
	ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")
	// ErrPartnerAtCapacity is returned when taking an order would exceed MaxConcurrentOrders.
	ErrPartnerAtCapacity = errors.New("partner is already carrying the maximum number of orders")
)

// Role distinguishes administrative accounts from delivery partners.
type Role string

const (
	// RoleAdmin marks back-office accounts that review applications.
	RoleAdmin Role = "admin"
	// RolePartner marks delivery partner accounts.
	RolePartner Role = "partner"
)

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	if r != RoleAdmin && r != RolePartner {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// Metrics is the per-partner performance snapshot refreshed by the
// dashboard computation.
type Metrics struct {
	Rating          float64
	CompletedOrders int
	CancelledOrders int
}

// Partner is the aggregate root for a delivery partner: account identity,
// onboarding status, working areas and shift window, current order load,
// and performance metrics.
//
// Business rules:
//   - currentLoad never exceeds MaxConcurrentOrders; TakeOrder enforces it
//   - status transitions follow the machine documented on Status
//   - rating stays within [MinRating, MaxRating]
//
// The aggregate uses private fields and constructor-guard validation so
// invariants cannot be bypassed with a struct literal.
type Partner struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         Role
	phone        string
	status       Status
	currentLoad  int
	areas        []string
	shift        ShiftWindow
	metrics      Metrics
	guard        guard.ConstructorGuard
}

// NewPartner creates a freshly registered partner in New status with zero
// load and zero metrics. All identity fields are validated.
func NewPartner(
	id kernel.UUID,
	name string,
	email string,
	passwordHash string,
	role Role,
	phone string,
	areas []string,
	shift ShiftWindow,
) (*Partner, error) {
	p := &Partner{
		status: New,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setEmail(email),
		p.setPasswordHash(passwordHash),
		p.setRole(role),
		p.setPhone(phone),
		p.setAreas(areas),
		p.setShift(shift),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePartner reconstructs a partner aggregate from persistent storage,
// including its status, load, and metrics as persisted.
func RestorePartner(
	id kernel.UUID,
	name string,
	email string,
	passwordHash string,
	role Role,
	phone string,
	status Status,
	currentLoad int,
	areas []string,
	shift ShiftWindow,
	metrics Metrics,
) (*Partner, error) {
	p := &Partner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setEmail(email),
		p.setPasswordHash(passwordHash),
		p.setRole(role),
		p.setPhone(phone),
		p.setStatus(status),
		p.setCurrentLoad(currentLoad),
		p.setAreas(areas),
		p.setShift(shift),
		p.setMetrics(metrics),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks that the Partner was created via a constructor.
func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by identity.
func (p *Partner) IsEqual(other *Partner) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *Partner) Name() string {
	return p.name
}

// Email returns the partner's login email.
func (p *Partner) Email() string {
	return p.email
}

// PasswordHash returns the stored bcrypt hash of the partner's password.
func (p *Partner) PasswordHash() string {
	return p.passwordHash
}

// Role returns the partner's account role.
func (p *Partner) Role() Role {
	return p.role
}

// Phone returns the partner's contact phone number.
func (p *Partner) Phone() string {
	return p.phone
}

// Status returns the partner's current lifecycle status.
func (p *Partner) Status() Status {
	return p.status
}

// CurrentLoad returns the number of orders the partner is carrying.
func (p *Partner) CurrentLoad() int {
	return p.currentLoad
}

// Areas returns a copy of the area labels the partner services.
func (p *Partner) Areas() []string {
	return slices.Clone(p.areas)
}

// Shift returns the partner's daily working window.
func (p *Partner) Shift() ShiftWindow {
	return p.shift
}

// PartnerMetrics returns the partner's performance snapshot.
func (p *Partner) PartnerMetrics() Metrics {
	return p.metrics
}

// HasCapacity reports whether the partner can take another order.
func (p *Partner) HasCapacity() bool {
	return p.currentLoad < MaxConcurrentOrders
}

// ServesArea reports whether the partner services the given area label.
func (p *Partner) ServesArea(area string) bool {
	return slices.Contains(p.areas, area)
}

// TakeOrder increments the partner's current load.
// Fails with ErrPartnerAtCapacity at the MaxConcurrentOrders ceiling, so
// the capacity invariant holds even if an ineligible partner slips past
// an upstream filter.
func (p *Partner) TakeOrder() error {
	if !p.HasCapacity() {
		return ErrPartnerAtCapacity
	}

	p.currentLoad++
	return nil
}

// RequestOnboarding moves a registered account into the review queue.
func (p *Partner) RequestOnboarding() error {
	return p.setStatus(Pending)
}

// Approve accepts a pending application; the partner lands off shift.
func (p *Partner) Approve() error {
	if p.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s application cannot be approved", p.status))
	}
	return p.setStatus(Inactive)
}

// Reject declines a pending application, returning the account to New.
func (p *Partner) Reject() error {
	if p.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s application cannot be rejected", p.status))
	}
	return p.setStatus(New)
}

// ClockIn marks an approved partner as on shift.
// Only the Inactive -> Active transition is allowed.
func (p *Partner) ClockIn() error {
	if p.status != Inactive {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("cannot clock in from %s status", p.status))
	}
	return p.setStatus(Active)
}

// ClockOut marks a partner as off shift.
// Only the Active -> Inactive transition is allowed.
func (p *Partner) ClockOut() error {
	if p.status != Active {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("cannot clock out from %s status", p.status))
	}
	return p.setStatus(Inactive)
}

// UpdateProfile replaces the partner's working areas and shift window.
func (p *Partner) UpdateProfile(areas []string, shift ShiftWindow) error {
	return errors.Join(p.setAreas(areas), p.setShift(shift))
}

// ApplyMetricsSnapshot stores freshly counted completed/cancelled totals
// and nudges the rating by ratingNudgePerOrder per net completed order,
// clamped to [MinRating, MaxRating].
//
// The nudge is applied to the current rating on every call, so repeated
// snapshots with unchanged totals keep shifting the rating by the same
// delta. That is the established production behavior and is preserved.
func (p *Partner) ApplyMetricsSnapshot(completedOrders, cancelledOrders int) {
	rating := p.metrics.Rating + float64(completedOrders-cancelledOrders)*ratingNudgePerOrder
	p.metrics = Metrics{
		Rating:          min(MaxRating, max(MinRating, rating)),
		CompletedOrders: completedOrders,
		CancelledOrders: cancelledOrders,
	}
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Partner) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	p.email = email
	return nil
}

func (p *Partner) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return ErrPasswordHashIsRequired
	}
	p.passwordHash = passwordHash
	return nil
}

func (p *Partner) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}

func (p *Partner) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	p.phone = phone
	return nil
}

func (p *Partner) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Partner) setCurrentLoad(currentLoad int) error {
	if currentLoad < 0 || currentLoad > MaxConcurrentOrders {
		return errs.NewValueIsOutOfRangeError("current load", currentLoad, 0, MaxConcurrentOrders)
	}
	p.currentLoad = currentLoad
	return nil
}

func (p *Partner) setAreas(areas []string) error {
	p.areas = slices.Clone(areas)
	return nil
}

func (p *Partner) setShift(shift ShiftWindow) error {
	if err := shift.Validate(); err != nil {
		return err
	}
	p.shift = shift
	return nil
}

func (p *Partner) setMetrics(metrics Metrics) error {
	if metrics.Rating < MinRating || metrics.Rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", metrics.Rating, MinRating, MaxRating)
	}
	p.metrics = metrics
	return nil
}
