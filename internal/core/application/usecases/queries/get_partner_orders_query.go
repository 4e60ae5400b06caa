package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPartnerOrdersQueryIsNotConstructed = errors.New(
	"GetPartnerOrdersQuery must be created via NewGetPartnerOrdersQuery constructor",
)

// GetPartnerOrdersQuery retrieves the orders assigned to one partner,
// newest first. Backs the partner app's order list.
type GetPartnerOrdersQuery struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPartnerOrdersQuery creates a query for the given partner's orders.
func NewGetPartnerOrdersQuery(partnerID kernel.UUID) (GetPartnerOrdersQuery, error) {
	q := GetPartnerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setPartnerID(partnerID); err != nil {
		return GetPartnerOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPartnerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerOrdersQueryIsNotConstructed)
}

// PartnerID returns the partner whose orders are requested.
func (q GetPartnerOrdersQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

func (q *GetPartnerOrdersQuery) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	q.partnerID = partnerID
	return nil
}
