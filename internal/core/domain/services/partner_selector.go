package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

// ErrNoEligiblePartner is returned when no suitable partner is available
// for an order. This occurs when the candidate slice is empty or every
// candidate is already at capacity.
var ErrNoEligiblePartner = errors.New("no eligible partner")

// Scoring constants for the selection formula.
const (
	// baseEstimateMinutes is the flat delivery estimate for an idle partner.
	baseEstimateMinutes = 30.0

	// loadPenaltyFactor inflates the estimate per order already carried.
	loadPenaltyFactor = 0.2
)

// PartnerSelector is a domain service that picks the best delivery
// partner for an order from a slice of candidates.
//
// Business rules:
//   - Candidates already at capacity are skipped
//   - Selection minimizes the load-weighted delivery score
//   - Ties keep the first candidate encountered, so slice order matters
//
// Candidates are expected to be pre-filtered for status, area, and shift
// coverage; the selector re-checks only capacity, which can change between
// the query and the selection.
type PartnerSelector struct{}

// NewPartnerSelector creates a new PartnerSelector instance.
func NewPartnerSelector() PartnerSelector {
	return PartnerSelector{}
}

// SelectBest validates the order and returns the candidate with the
// strictly lowest Score, or ErrNoEligiblePartner when none qualifies.
func (s PartnerSelector) SelectBest(o *order.Order, candidates []*partner.Partner) (*partner.Partner, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var (
		best      *partner.Partner
		bestScore = math.MaxFloat64
	)

	for _, p := range candidates {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if !p.HasCapacity() {
			continue
		}

		if score := s.Score(p); score < bestScore {
			bestScore = score
			best = p
		}
	}

	if best == nil {
		return nil, ErrNoEligiblePartner
	}

	return best, nil
}

// Score returns the selection score for a partner; lower is better.
//
// The estimated delivery time is the 30-minute base inflated by 20% per
// carried order, and the score inflates that estimate by the same load
// factor a second time:
//
//	estimate = 30 * (1 + 0.2*load)
//	score    = estimate * (1 + 0.2*load)
//
// The doubled penalty is intentional and long-established: it skews
// selection harder toward idle partners than a single application would
// (load 0 scores 30, load 2 scores 58.8 rather than 42). Recorded
// expectations and downstream tuning assume these exact values.
func (s PartnerSelector) Score(p *partner.Partner) float64 {
	loadFactor := 1.0 + loadPenaltyFactor*float64(p.CurrentLoad())
	estimate := baseEstimateMinutes * loadFactor
	return estimate * loadFactor
}
