package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func schedulablePartner(t *testing.T, status partner.Status, shiftSlot string) *partner.Partner {
	t.Helper()

	shift, err := partner.ParseShiftSlot(shiftSlot)
	require.NoError(t, err)

	p, err := partner.RestorePartner(
		kernel.NewUUID(),
		"Sam",
		"sam@example.com",
		"$2a$10$hashhashhashhashhashha",
		partner.RolePartner,
		"+15550100",
		status,
		0,
		[]string{"Midtown"},
		shift,
		partner.Metrics{Rating: 4.0},
	)
	require.NoError(t, err)
	return p
}

func TestFlipShiftStatusCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewFlipShiftStatusCommand()

	// The all-day window contains any wall-clock time; the inverted one
	// contains none, so these flips are deterministic.
	shouldClockIn := schedulablePartner(t, partner.Inactive, "00:00 - 23:59")
	shouldClockOut := schedulablePartner(t, partner.Active, "23:59 - 00:00")
	alreadyOnShift := schedulablePartner(t, partner.Active, "00:00 - 23:59")

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	partnerRepo.On("GetAllSchedulable", ctx).
		Return([]*partner.Partner{shouldClockIn, shouldClockOut, alreadyOnShift}, nil).Once()
	partnerRepo.On("Update", ctx, shouldClockIn).Return(nil).Once()
	partnerRepo.On("Update", ctx, shouldClockOut).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlipShiftStatusCommandHandler(factory)
	flipped, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, flipped)
	assert.Equal(t, partner.Active, shouldClockIn.Status())
	assert.Equal(t, partner.Inactive, shouldClockOut.Status())
	assert.Equal(t, partner.Active, alreadyOnShift.Status())

	// Partners already in the right state are not rewritten.
	partnerRepo.AssertNotCalled(t, "Update", ctx, alreadyOnShift)

	mock.AssertExpectationsForObjects(t, factory, uow, partnerRepo)
}

func TestFlipShiftStatusCommandHandler_Handle_NothingToFlip(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewFlipShiftStatusCommand()

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	partnerRepo.On("GetAllSchedulable", ctx).Return([]*partner.Partner{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlipShiftStatusCommandHandler(factory)
	flipped, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, flipped)
}
