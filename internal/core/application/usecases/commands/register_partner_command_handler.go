package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/errs"
)

// ErrEmailAlreadyRegistered is returned when registering with an email
// that already has an account.
var ErrEmailAlreadyRegistered = errors.New("email already registered")

// RegisterPartnerCommandHandler creates new accounts. The password is
// bcrypt-hashed before the aggregate is built; the clear text never
// reaches storage.
type RegisterPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewRegisterPartnerCommandHandler creates a handler for account registration.
func NewRegisterPartnerCommandHandler(uowFactory PartnerUoWFactory) RegisterPartnerCommandHandler {
	return RegisterPartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the created
// partner aggregate.
func (h RegisterPartnerCommandHandler) Handle(
	ctx context.Context, cmd RegisterPartnerCommand,
) (*partner.Partner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(cmd.Password())
	if err != nil {
		return nil, err
	}

	shift, err := partner.ParseShiftSlot(cmd.ShiftSlot())
	if err != nil {
		return nil, err
	}

	p, err := partner.NewPartner(
		cmd.PartnerID(),
		cmd.Name(),
		cmd.Email(),
		passwordHash,
		cmd.Role(),
		cmd.Phone(),
		cmd.Areas(),
		shift,
	)
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

	_, err = partnerRepo.GetByEmail(ctx, cmd.Email())
	if err == nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = partnerRepo.Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
