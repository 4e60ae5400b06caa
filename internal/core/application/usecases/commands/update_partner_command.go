package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePartnerCommandIsNotConstructed = errors.New(
	"UpdatePartnerCommand must be created via NewUpdatePartnerCommand constructor",
)

// UpdatePartnerCommand replaces a partner's working areas and shift window.
type UpdatePartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	areas     []string
	shiftSlot string

	guard guard.ConstructorGuard
}

// NewUpdatePartnerCommand creates a command to update the partner's
// profile. shiftSlot uses the "HH:mm - HH:mm" form.
func NewUpdatePartnerCommand(partnerID kernel.UUID, areas []string, shiftSlot string) (UpdatePartnerCommand, error) {
	cmd := UpdatePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setAreas(areas),
		cmd.setShiftSlot(shiftSlot),
	); err != nil {
		return UpdatePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartnerCommandIsNotConstructed)
}

// PartnerID returns the identifier of the partner to update.
func (c UpdatePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Areas returns the replacement working areas.
func (c UpdatePartnerCommand) Areas() []string {
	return c.areas
}

// ShiftSlot returns the replacement shift in "HH:mm - HH:mm" form.
func (c UpdatePartnerCommand) ShiftSlot() string {
	return c.shiftSlot
}

func (c *UpdatePartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *UpdatePartnerCommand) setAreas(areas []string) error {
	if len(areas) == 0 {
		return errs.NewValueIsRequiredError("areas")
	}

	c.areas = areas
	return nil
}

func (c *UpdatePartnerCommand) setShiftSlot(shiftSlot string) error {
	if _, err := partner.ParseShiftSlot(shiftSlot); err != nil {
		return err
	}

	c.shiftSlot = shiftSlot
	return nil
}
