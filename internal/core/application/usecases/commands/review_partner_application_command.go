package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReviewPartnerApplicationCommandIsNotConstructed = errors.New(
	"ReviewPartnerApplicationCommand must be created via NewReviewPartnerApplicationCommand constructor",
)

// ReviewPartnerApplicationCommand records a back-office decision on a
// pending onboarding application. Approval lands the partner off shift
// (Inactive); rejection returns the account to New.
type ReviewPartnerApplicationCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	approve   bool

	guard guard.ConstructorGuard
}

// NewReviewPartnerApplicationCommand creates a command recording the
// decision for the given applicant.
func NewReviewPartnerApplicationCommand(partnerID kernel.UUID, approve bool) (ReviewPartnerApplicationCommand, error) {
	cmd := ReviewPartnerApplicationCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return ReviewPartnerApplicationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewPartnerApplicationCommand) Validate() error {
	return c.guard.Validate(ErrReviewPartnerApplicationCommandIsNotConstructed)
}

// PartnerID returns the applicant's identifier.
func (c ReviewPartnerApplicationCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Approve reports whether the application was accepted.
func (c ReviewPartnerApplicationCommand) Approve() bool {
	return c.approve
}

func (c *ReviewPartnerApplicationCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
