package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrJoinAsPartnerCommandIsNotConstructed = errors.New(
	"JoinAsPartnerCommand must be created via NewJoinAsPartnerCommand constructor",
)

// JoinAsPartnerCommand submits a registered account's onboarding
// application: the working areas and shift the applicant commits to.
// Approval moves the account into the schedulable pool.
type JoinAsPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	areas     []string
	shiftSlot string

	guard guard.ConstructorGuard
}

// NewJoinAsPartnerCommand creates a command to submit an onboarding
// application. shiftSlot uses the "HH:mm - HH:mm" form.
func NewJoinAsPartnerCommand(partnerID kernel.UUID, areas []string, shiftSlot string) (JoinAsPartnerCommand, error) {
	cmd := JoinAsPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setAreas(areas),
		cmd.setShiftSlot(shiftSlot),
	); err != nil {
		return JoinAsPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c JoinAsPartnerCommand) Validate() error {
	return c.guard.Validate(ErrJoinAsPartnerCommandIsNotConstructed)
}

// PartnerID returns the applying account's identifier.
func (c JoinAsPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Areas returns the areas the applicant will service.
func (c JoinAsPartnerCommand) Areas() []string {
	return c.areas
}

// ShiftSlot returns the committed shift in "HH:mm - HH:mm" form.
func (c JoinAsPartnerCommand) ShiftSlot() string {
	return c.shiftSlot
}

func (c *JoinAsPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *JoinAsPartnerCommand) setAreas(areas []string) error {
	if len(areas) == 0 {
		return errs.NewValueIsRequiredError("areas")
	}

	c.areas = areas
	return nil
}

func (c *JoinAsPartnerCommand) setShiftSlot(shiftSlot string) error {
	if _, err := partner.ParseShiftSlot(shiftSlot); err != nil {
		return err
	}

	c.shiftSlot = shiftSlot
	return nil
}
