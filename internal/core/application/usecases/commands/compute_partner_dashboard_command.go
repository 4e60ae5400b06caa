package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrComputePartnerDashboardCommandIsNotConstructed = errors.New(
	"ComputePartnerDashboardCommand must be created via NewComputePartnerDashboardCommand constructor",
)

// ComputePartnerDashboardCommand requests a refresh of one partner's
// dashboard. The partner is looked up server-side by ID; callers never
// supply the partner record themselves.
type ComputePartnerDashboardCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewComputePartnerDashboardCommand creates a command to refresh the
// given partner's dashboard.
func NewComputePartnerDashboardCommand(partnerID kernel.UUID) (ComputePartnerDashboardCommand, error) {
	cmd := ComputePartnerDashboardCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return ComputePartnerDashboardCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ComputePartnerDashboardCommand) Validate() error {
	return c.guard.Validate(ErrComputePartnerDashboardCommandIsNotConstructed)
}

// PartnerID returns the identifier of the partner to refresh.
func (c ComputePartnerDashboardCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *ComputePartnerDashboardCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
