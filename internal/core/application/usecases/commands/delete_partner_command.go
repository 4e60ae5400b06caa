package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeletePartnerCommandIsNotConstructed = errors.New(
	"DeletePartnerCommand must be created via NewDeletePartnerCommand constructor",
)

// DeletePartnerCommand removes a partner account from the directory.
type DeletePartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeletePartnerCommand creates a command to delete the given partner.
func NewDeletePartnerCommand(partnerID kernel.UUID) (DeletePartnerCommand, error) {
	cmd := DeletePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return DeletePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePartnerCommand) Validate() error {
	return c.guard.Validate(ErrDeletePartnerCommandIsNotConstructed)
}

// PartnerID returns the identifier of the partner to delete.
func (c DeletePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *DeletePartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
