package commands

import (
	"context"

	"dispatch/internal/core/domain/model/partner"
)

// ReviewPartnerApplicationCommandHandler applies back-office decisions to
// pending applications. The aggregate rejects decisions on accounts that
// are not Pending.
type ReviewPartnerApplicationCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewReviewPartnerApplicationCommandHandler creates a handler for
// application reviews.
func NewReviewPartnerApplicationCommandHandler(uowFactory PartnerUoWFactory) ReviewPartnerApplicationCommandHandler {
	return ReviewPartnerApplicationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review decision and returns the updated partner.
func (h ReviewPartnerApplicationCommandHandler) Handle(
	ctx context.Context, cmd ReviewPartnerApplicationCommand,
) (*partner.Partner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if cmd.Approve() {
		err = p.Approve()
	} else {
		err = p.Reject()
	}
	if err != nil {
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
