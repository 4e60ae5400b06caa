package commands

import (
	"context"

	"dispatch/internal/core/domain/model/partner"
)

// JoinAsPartnerCommandHandler processes onboarding applications: the
// declared areas and shift replace whatever the account registered with,
// and the account moves to Pending for back-office review.
type JoinAsPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewJoinAsPartnerCommandHandler creates a handler for onboarding applications.
func NewJoinAsPartnerCommandHandler(uowFactory PartnerUoWFactory) JoinAsPartnerCommandHandler {
	return JoinAsPartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the application and returns the updated partner.
func (h JoinAsPartnerCommandHandler) Handle(
	ctx context.Context, cmd JoinAsPartnerCommand,
) (*partner.Partner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	shift, err := partner.ParseShiftSlot(cmd.ShiftSlot())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()

	p, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return nil, err
	}

	if err = p.UpdateProfile(cmd.Areas(), shift); err != nil {
		return nil, err
	}
	if err = p.RequestOnboarding(); err != nil {
		return nil, err
	}

	if err = partnerRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
