package commands

import (
	"context"

	"dispatch/internal/core/domain/model/partner"
)

// UpdatePartnerCommandHandler replaces a partner's working areas and
// shift window. Lifecycle status and load are untouched; the next shift
// sweep reconciles on/off-shift status against the new window.
type UpdatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewUpdatePartnerCommandHandler creates a handler for profile updates.
func NewUpdatePartnerCommandHandler(uowFactory PartnerUoWFactory) UpdatePartnerCommandHandler {
	return UpdatePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the profile update and returns the updated partner.
func (h UpdatePartnerCommandHandler) Handle(
	ctx context.Context, cmd UpdatePartnerCommand,
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

	if err = partnerRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
