package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// FlipShiftStatusCommandHandler clocks partners in and out of their
// shifts. Approved partners whose window contains the current wall-clock
// time become Active; those outside it become Inactive. Partners already
// in the right state are left alone, so the sweep only writes what changed.
//
// Windows wrapping past midnight contain no time, so their partners are
// always clocked out by the sweep; such windows stay off shift until the
// partner's profile is fixed.
type FlipShiftStatusCommandHandler struct {
	uowFactory PartnerUoWFactory
	now        func() time.Time
}

// NewFlipShiftStatusCommandHandler creates a handler for shift sweeps.
func NewFlipShiftStatusCommandHandler(uowFactory PartnerUoWFactory) FlipShiftStatusCommandHandler {
	return FlipShiftStatusCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle runs one sweep and returns the number of partners whose status
// changed.
func (h FlipShiftStatusCommandHandler) Handle(ctx context.Context, cmd FlipShiftStatusCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()

	partners, err := partnerRepo.GetAllSchedulable(ctx)
	if err != nil {
		return 0, err
	}

	timeOfDay := kernel.TimeOfDayFromTime(h.now())

	flipped := 0
	for _, p := range partners {
		onShift := p.Shift().Contains(timeOfDay)

		switch {
		case onShift && p.Status().CanClockIn():
			err = p.ClockIn()
		case !onShift && p.Status().CanClockOut():
			err = p.ClockOut()
		default:
			continue
		}
		if err != nil {
			return flipped, err
		}

		if err = partnerRepo.Update(ctx, p); err != nil {
			return flipped, err
		}
		flipped++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return flipped, nil
}
