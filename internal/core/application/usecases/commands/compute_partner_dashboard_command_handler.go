package commands

import (
	"context"
	"math"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// noAreaLabel is shown on the dashboard when a partner has no working areas.
const noAreaLabel = "Not set"

// PartnerDashboard is the refreshed view of one partner's standing,
// returned by ComputePartnerDashboardCommandHandler.
type PartnerDashboard struct {
	PartnerID          string
	Name               string
	Status             string
	Rating             float64
	CurrentArea        string
	ActiveOrders       int
	CompletedToday     int
	CompletedOrders    int
	CancelledOrders    int
	AverageTimeMinutes int
}

// ComputePartnerDashboardCommandHandler refreshes one partner's dashboard:
// in-flight and completed order counts, the average delivery time in
// rounded minutes, and the rating.
//
// The rating moves by a fixed nudge per net completed order on every
// refresh, computed from the current rating rather than a fixed baseline.
// Two refreshes with identical counts therefore move the rating twice —
// long-standing behavior that partner-facing apps have absorbed, so it is
// kept as is. The refreshed metrics are persisted before the dashboard is
// returned.
type ComputePartnerDashboardCommandHandler struct {
	uowFactory DashboardUoWFactory
	now        func() time.Time
}

// NewComputePartnerDashboardCommandHandler creates a handler for
// dashboard refreshes.
func NewComputePartnerDashboardCommandHandler(uowFactory DashboardUoWFactory) ComputePartnerDashboardCommandHandler {
	return ComputePartnerDashboardCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle refreshes and returns the partner's dashboard.
func (h ComputePartnerDashboardCommandHandler) Handle(
	ctx context.Context, cmd ComputePartnerDashboardCommand,
) (PartnerDashboard, error) {
	if err := cmd.Validate(); err != nil {
		return PartnerDashboard{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PartnerDashboard{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()
	orderRepo := uow.OrderRepository()

	p, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return PartnerDashboard{}, err
	}

	activeOrders, err := orderRepo.CountInProgressByPartner(ctx, p.ID())
	if err != nil {
		return PartnerDashboard{}, err
	}

	completedToday, err := orderRepo.CountDeliveredByPartnerSince(ctx, p.ID(), startOfToday(h.now()))
	if err != nil {
		return PartnerDashboard{}, err
	}

	delivered, err := orderRepo.GetDeliveredByPartner(ctx, p.ID())
	if err != nil {
		return PartnerDashboard{}, err
	}

	cancelled, err := orderRepo.CountByPartnerAndStatus(ctx, p.ID(), order.Canceled)
	if err != nil {
		return PartnerDashboard{}, err
	}

	p.ApplyMetricsSnapshot(len(delivered), cancelled)

	if err = partnerRepo.Update(ctx, p); err != nil {
		return PartnerDashboard{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PartnerDashboard{}, err
	}

	currentArea := noAreaLabel
	if areas := p.Areas(); len(areas) > 0 {
		currentArea = areas[0]
	}

	metrics := p.PartnerMetrics()
	return PartnerDashboard{
		PartnerID:          p.ID().String(),
		Name:               p.Name(),
		Status:             p.Status().String(),
		Rating:             metrics.Rating,
		CurrentArea:        currentArea,
		ActiveOrders:       activeOrders,
		CompletedToday:     completedToday,
		CompletedOrders:    metrics.CompletedOrders,
		CancelledOrders:    metrics.CancelledOrders,
		AverageTimeMinutes: averageMinutes(delivered),
	}, nil
}

// startOfToday returns local midnight for the given instant; "completed
// today" is counted in the server's local day.
func startOfToday(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// averageMinutes returns the mean delivery duration in whole minutes,
// rounded half up, 0 when there are no delivered orders.
func averageMinutes(delivered []*order.Order) int {
	if len(delivered) == 0 {
		return 0
	}

	var total float64
	for _, o := range delivered {
		total += o.DeliveryDuration().Minutes()
	}
	return int(math.Round(total / float64(len(delivered))))
}
