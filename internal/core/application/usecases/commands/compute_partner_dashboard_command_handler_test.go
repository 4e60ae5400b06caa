package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputePartnerDashboardCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	p := approvedPartner(t, 1) // rating 4.5
	cmd, err := commands.NewComputePartnerDashboardCommand(p.ID())
	require.NoError(t, err)

	delivered := []*order.Order{
		completedOrder(t, 20*time.Minute),
		completedOrder(t, 40*time.Minute),
	}

	partnerRepo := new(MockPartnerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		partnerRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		orderRepo.On("CountInProgressByPartner", ctx, p.ID()).Return(3, nil).Once(),
		orderRepo.On("CountDeliveredByPartnerSince", ctx, p.ID(), mock.AnythingOfType("time.Time")).
			Return(1, nil).Once(),
		orderRepo.On("GetDeliveredByPartner", ctx, p.ID()).Return(delivered, nil).Once(),
		orderRepo.On("CountByPartnerAndStatus", ctx, p.ID(), order.Canceled).Return(1, nil).Once(),
		partnerRepo.On("Update", ctx, p).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDashboardUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewComputePartnerDashboardCommandHandler(factory)
	dashboard, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, p.ID().String(), dashboard.PartnerID)
	assert.Equal(t, "Jess", dashboard.Name)
	assert.Equal(t, "active", dashboard.Status)
	assert.Equal(t, 3, dashboard.ActiveOrders)
	assert.Equal(t, 1, dashboard.CompletedToday)
	assert.Equal(t, 2, dashboard.CompletedOrders)
	assert.Equal(t, 1, dashboard.CancelledOrders)
	assert.Equal(t, 30, dashboard.AverageTimeMinutes)
	assert.Equal(t, "Downtown", dashboard.CurrentArea)

	// 2 completed, 1 cancelled: one net order nudges 4.5 up by 0.01.
	assert.InDelta(t, 4.51, dashboard.Rating, 1e-9)

	mock.AssertExpectationsForObjects(t, factory, uow, partnerRepo, orderRepo)
}

// A second refresh with identical counts moves the rating again: the
// nudge compounds from the current value instead of recomputing from a
// baseline. Consumers have long absorbed this, so it is pinned here.
func TestComputePartnerDashboardCommandHandler_Handle_RepeatedRefreshCompounds(t *testing.T) {
	ctx := t.Context()

	p := approvedPartner(t, 0) // rating 4.5
	cmd, err := commands.NewComputePartnerDashboardCommand(p.ID())
	require.NoError(t, err)

	delivered := []*order.Order{completedOrder(t, 30 * time.Minute)}

	partnerRepo := new(MockPartnerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("PartnerRepository").Return(partnerRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	partnerRepo.On("Get", ctx, p.ID()).Return(p, nil).Twice()
	orderRepo.On("CountInProgressByPartner", ctx, p.ID()).Return(0, nil).Twice()
	orderRepo.On("CountDeliveredByPartnerSince", ctx, p.ID(), mock.AnythingOfType("time.Time")).
		Return(0, nil).Twice()
	orderRepo.On("GetDeliveredByPartner", ctx, p.ID()).Return(delivered, nil).Twice()
	orderRepo.On("CountByPartnerAndStatus", ctx, p.ID(), order.Canceled).Return(0, nil).Twice()
	partnerRepo.On("Update", ctx, p).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockDashboardUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewComputePartnerDashboardCommandHandler(factory)

	first, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.InDelta(t, 4.51, first.Rating, 1e-9)

	second, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.InDelta(t, 4.52, second.Rating, 1e-9)
}
