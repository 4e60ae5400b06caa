package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPartnerWithLoad(t *testing.T, name string, load int) *partner.Partner {
	t.Helper()

	shift, err := partner.ParseShiftSlot("09:00 - 21:00")
	require.NoError(t, err)

	p, err := partner.RestorePartner(
		kernel.NewUUID(),
		name,
		name+"@example.com",
		"$2a$10$hashhashhashhashhashha",
		partner.RolePartner,
		"+15550100",
		partner.Active,
		load,
		[]string{"Downtown"},
		shift,
		partner.Metrics{Rating: 4.5},
	)
	require.NoError(t, err)
	return p
}

func testOrderForSelection(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		1001,
		order.Customer{Name: "Dana", Phone: "+15550199", Address: "12 Main St"},
		"Downtown",
		[]order.Item{{Name: "Box", Quantity: 1, Price: 12.50}},
		time.Now().Add(time.Hour),
		12.50,
	)
	require.NoError(t, err)
	return o
}

func TestPartnerSelector_SelectBest(t *testing.T) {
	selector := services.NewPartnerSelector()

	t.Run("should select idle partner over loaded partners", func(t *testing.T) {
		idle := testPartnerWithLoad(t, "idle", 0)
		busy := testPartnerWithLoad(t, "busy", 2)
		busier := testPartnerWithLoad(t, "busier", 1)

		result, err := selector.SelectBest(testOrderForSelection(t), []*partner.Partner{busy, idle, busier})

		require.NoError(t, err)
		assert.True(t, result.IsEqual(idle))
	})

	t.Run("should keep first candidate on tied scores", func(t *testing.T) {
		first := testPartnerWithLoad(t, "first", 1)
		second := testPartnerWithLoad(t, "second", 1)

		result, err := selector.SelectBest(testOrderForSelection(t), []*partner.Partner{first, second})

		require.NoError(t, err)
		assert.True(t, result.IsEqual(first))
	})

	t.Run("should skip partners at capacity", func(t *testing.T) {
		full := testPartnerWithLoad(t, "full", partner.MaxConcurrentOrders)
		loaded := testPartnerWithLoad(t, "loaded", 2)

		result, err := selector.SelectBest(testOrderForSelection(t), []*partner.Partner{full, loaded})

		require.NoError(t, err)
		assert.True(t, result.IsEqual(loaded))
	})

	t.Run("should return error when all partners are at capacity", func(t *testing.T) {
		full := testPartnerWithLoad(t, "full", partner.MaxConcurrentOrders)

		result, err := selector.SelectBest(testOrderForSelection(t), []*partner.Partner{full})

		require.ErrorIs(t, err, services.ErrNoEligiblePartner)
		assert.Nil(t, result)
	})

	t.Run("should return error when no candidates provided", func(t *testing.T) {
		result, err := selector.SelectBest(testOrderForSelection(t), nil)

		require.ErrorIs(t, err, services.ErrNoEligiblePartner)
		assert.Nil(t, result)
	})

	t.Run("should return error when order is invalid", func(t *testing.T) {
		var invalidOrder *order.Order

		result, err := selector.SelectBest(invalidOrder, []*partner.Partner{testPartnerWithLoad(t, "p", 0)})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestPartnerSelector_Score(t *testing.T) {
	selector := services.NewPartnerSelector()

	// The load factor applies twice: once in the time estimate and once
	// more in the final score.
	tests := []struct {
		load int
		want float64
	}{
		{load: 0, want: 30.0},
		{load: 1, want: 43.2},
		{load: 2, want: 58.8},
	}

	for _, tt := range tests {
		p := testPartnerWithLoad(t, "scored", tt.load)
		assert.InDelta(t, tt.want, selector.Score(p), 1e-9, "load %d", tt.load)
	}
}
