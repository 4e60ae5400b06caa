package services

import (
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"
)

// MetricsCalculator is a domain service that derives the global assignment
// metrics from the full ledger and the delivered-order history.
//
// The computation is a wholesale recompute: callers pass every ledger
// entry and every delivered order, and the result replaces the previously
// stored metrics document.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new MetricsCalculator instance.
func NewMetricsCalculator() MetricsCalculator {
	return MetricsCalculator{}
}

// Calculate summarizes the ledger and delivered orders:
//
//   - TotalAssigned counts every ledger entry, failed ones included
//   - SuccessRate is successes over the total, 0 for an empty ledger
//   - AverageTimeSeconds averages creation-to-completion over the
//     delivered orders, 0 when there are none
//   - FailureReasons buckets failed entries by reason in first-seen order
//
// Delivered orders contribute to the average regardless of whether a
// ledger entry references them.
func (c MetricsCalculator) Calculate(
	ledger []*assignment.Assignment,
	delivered []*order.Order,
) assignment.Metrics {
	metrics := assignment.Metrics{TotalAssigned: len(ledger)}

	successes := 0
	reasonIndex := make(map[string]int)
	for _, entry := range ledger {
		if entry.IsSuccess() {
			successes++
			continue
		}

		reason := entry.Reason()
		if reason == "" {
			continue
		}
		if i, seen := reasonIndex[reason]; seen {
			metrics.FailureReasons[i].Count++
			continue
		}
		reasonIndex[reason] = len(metrics.FailureReasons)
		metrics.FailureReasons = append(metrics.FailureReasons,
			assignment.FailureReason{Reason: reason, Count: 1})
	}

	if metrics.TotalAssigned > 0 {
		metrics.SuccessRate = float64(successes) / float64(metrics.TotalAssigned)
	}

	if len(delivered) > 0 {
		var totalSeconds float64
		for _, o := range delivered {
			totalSeconds += o.DeliveryDuration().Seconds()
		}
		metrics.AverageTimeSeconds = totalSeconds / float64(len(delivered))
	}

	return metrics
}
