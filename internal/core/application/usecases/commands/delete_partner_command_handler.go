package commands

import (
	"context"
)

// DeletePartnerCommandHandler removes partner accounts. The partner must
// exist; ledger entries referencing it are history and stay untouched.
type DeletePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewDeletePartnerCommandHandler creates a handler for account deletion.
func NewDeletePartnerCommandHandler(uowFactory PartnerUoWFactory) DeletePartnerCommandHandler {
	return DeletePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
func (h DeletePartnerCommandHandler) Handle(ctx context.Context, cmd DeletePartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()

	// Existence check so callers get a not-found error rather than a
	// silent no-op delete.
	if _, err := partnerRepo.Get(ctx, cmd.PartnerID()); err != nil {
		return err
	}

	if err := partnerRepo.Delete(ctx, cmd.PartnerID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
