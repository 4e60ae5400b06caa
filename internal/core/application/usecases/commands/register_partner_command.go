package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

// RegisterPartnerCommand represents a new account registration. The
// password arrives in the clear and is hashed by the handler; the account
// starts in New status until the partner submits an onboarding
// application.
type RegisterPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	name      string
	email     string
	password  string
	role      partner.Role
	phone     string
	areas     []string
	shiftSlot string

	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand creates a command to register a new account.
// shiftSlot uses the "HH:mm - HH:mm" form.
func NewRegisterPartnerCommand(
	partnerID kernel.UUID,
	name string,
	email string,
	password string,
	role partner.Role,
	phone string,
	areas []string,
	shiftSlot string,
) (RegisterPartnerCommand, error) {
	cmd := RegisterPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPassword(password),
		cmd.setRole(role),
		cmd.setPhone(phone),
		cmd.setShiftSlot(shiftSlot),
	); err != nil {
		return RegisterPartnerCommand{}, err
	}

	cmd.areas = areas
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

// PartnerID returns the unique identifier for the new account.
func (c RegisterPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the account's display name.
func (c RegisterPartnerCommand) Name() string {
	return c.name
}

// Email returns the login email.
func (c RegisterPartnerCommand) Email() string {
	return c.email
}

// Password returns the clear-text password to be hashed.
func (c RegisterPartnerCommand) Password() string {
	return c.password
}

// Role returns the account role.
func (c RegisterPartnerCommand) Role() partner.Role {
	return c.role
}

// Phone returns the contact phone number.
func (c RegisterPartnerCommand) Phone() string {
	return c.phone
}

// Areas returns the working areas declared at registration.
func (c RegisterPartnerCommand) Areas() []string {
	return c.areas
}

// ShiftSlot returns the declared shift in "HH:mm - HH:mm" form.
func (c RegisterPartnerCommand) ShiftSlot() string {
	return c.shiftSlot
}

func (c *RegisterPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *RegisterPartnerCommand) setName(name string) error {
	if name == "" {
		return partner.ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterPartnerCommand) setEmail(email string) error {
	if email == "" {
		return partner.ErrEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *RegisterPartnerCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}

	c.password = password
	return nil
}

func (c *RegisterPartnerCommand) setRole(role partner.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *RegisterPartnerCommand) setPhone(phone string) error {
	if phone == "" {
		return partner.ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *RegisterPartnerCommand) setShiftSlot(shiftSlot string) error {
	if _, err := partner.ParseShiftSlot(shiftSlot); err != nil {
		return err
	}

	c.shiftSlot = shiftSlot
	return nil
}
