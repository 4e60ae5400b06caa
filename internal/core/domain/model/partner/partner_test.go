package partner_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createValidShift(t *testing.T) partner.ShiftWindow {
	t.Helper()
	shift, err := partner.ParseShiftSlot("09:00 - 21:00")
	require.NoError(t, err)
	return shift
}

func createValidPartner(t *testing.T) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(
		kernel.NewUUID(),
		"Test Partner",
		"partner@example.com",
		"$2a$10$hashhashhashhashhashha",
		partner.RolePartner,
		"+15550100",
		[]string{"Downtown"},
		createValidShift(t),
	)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func restorePartnerWith(t *testing.T, status partner.Status, load int, metrics partner.Metrics) *partner.Partner {
	t.Helper()
	p, err := partner.RestorePartner(
		kernel.NewUUID(),
		"Test Partner",
		"partner@example.com",
		"$2a$10$hashhashhashhashhashha",
		partner.RolePartner,
		"+15550100",
		status,
		load,
		[]string{"Downtown", "Midtown"},
		createValidShift(t),
		metrics,
	)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func TestNewPartner(t *testing.T) {
	validID := kernel.NewUUID()
	validShift := createValidShift(t)

	t.Run("should create partner with valid parameters", func(t *testing.T) {
		p, err := partner.NewPartner(validID, "Alice", "alice@example.com", "hash",
			partner.RolePartner, "+15550100", []string{"Downtown"}, validShift)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(validID))
		assert.Equal(t, "Alice", p.Name())
		assert.Equal(t, partner.New, p.Status())
		assert.Equal(t, 0, p.CurrentLoad())
		assert.Equal(t, partner.Metrics{}, p.PartnerMetrics())
		assert.True(t, p.HasCapacity())
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := partner.NewPartner(invalidID, "Alice", "alice@example.com", "hash",
			partner.RolePartner, "+15550100", []string{"Downtown"}, validShift)

		require.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("should return error for empty identity fields", func(t *testing.T) {
		tests := []struct {
			name    string
			pname   string
			email   string
			hash    string
			phone   string
			wantErr error
		}{
			{"empty name", "", "a@example.com", "hash", "+1", partner.ErrNameIsRequired},
			{"empty email", "Alice", "", "hash", "+1", partner.ErrEmailIsRequired},
			{"empty password hash", "Alice", "a@example.com", "", "+1", partner.ErrPasswordHashIsRequired},
			{"empty phone", "Alice", "a@example.com", "hash", "", partner.ErrPhoneIsRequired},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				p, err := partner.NewPartner(kernel.NewUUID(), tc.pname, tc.email, tc.hash,
					partner.RolePartner, tc.phone, []string{"Downtown"}, validShift)

				require.Error(t, err)
				assert.Nil(t, p)
				assert.ErrorContains(t, err, tc.wantErr.Error())
			})
		}
	})

	t.Run("should return error for invalid role", func(t *testing.T) {
		p, err := partner.NewPartner(kernel.NewUUID(), "Alice", "alice@example.com", "hash",
			partner.Role("superuser"), "+15550100", []string{"Downtown"}, validShift)

		require.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("should fail validation when created via struct literal", func(t *testing.T) {
		p := &partner.Partner{}
		assert.ErrorIs(t, p.Validate(), partner.ErrPartnerIsNotConstructed)
	})
}

func TestRestorePartner(t *testing.T) {
	t.Run("should restore status, load, and metrics", func(t *testing.T) {
		metrics := partner.Metrics{Rating: 4.5, CompletedOrders: 12, CancelledOrders: 2}

		p := restorePartnerWith(t, partner.Active, 2, metrics)

		assert.Equal(t, partner.Active, p.Status())
		assert.Equal(t, 2, p.CurrentLoad())
		assert.Equal(t, metrics, p.PartnerMetrics())
	})

	t.Run("should reject load above the capacity ceiling", func(t *testing.T) {
		_, err := partner.RestorePartner(kernel.NewUUID(), "A", "a@example.com", "hash",
			partner.RolePartner, "+1", partner.Active, partner.MaxConcurrentOrders+1,
			[]string{"Downtown"}, createValidShift(t), partner.Metrics{Rating: 4})

		require.Error(t, err)
	})

	t.Run("should reject rating outside bounds", func(t *testing.T) {
		_, err := partner.RestorePartner(kernel.NewUUID(), "A", "a@example.com", "hash",
			partner.RolePartner, "+1", partner.Active, 0,
			[]string{"Downtown"}, createValidShift(t), partner.Metrics{Rating: 5.5})

		require.Error(t, err)
	})
}

func TestPartnerTakeOrder(t *testing.T) {
	t.Run("should increment load up to the ceiling", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Active, 0, partner.Metrics{Rating: 4.5})

		for i := 1; i <= partner.MaxConcurrentOrders; i++ {
			require.NoError(t, p.TakeOrder())
			assert.Equal(t, i, p.CurrentLoad())
		}

		assert.False(t, p.HasCapacity())
	})

	t.Run("should fail at capacity and keep the load unchanged", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Active, partner.MaxConcurrentOrders, partner.Metrics{Rating: 4.5})

		err := p.TakeOrder()

		assert.ErrorIs(t, err, partner.ErrPartnerAtCapacity)
		assert.Equal(t, partner.MaxConcurrentOrders, p.CurrentLoad())
	})
}

func TestPartnerLifecycle(t *testing.T) {
	t.Run("should walk the full onboarding path", func(t *testing.T) {
		p := createValidPartner(t)

		require.NoError(t, p.RequestOnboarding())
		assert.Equal(t, partner.Pending, p.Status())

		require.NoError(t, p.Approve())
		assert.Equal(t, partner.Inactive, p.Status())

		require.NoError(t, p.ClockIn())
		assert.Equal(t, partner.Active, p.Status())

		require.NoError(t, p.ClockOut())
		assert.Equal(t, partner.Inactive, p.Status())
	})

	t.Run("should return rejected application to new", func(t *testing.T) {
		p := createValidPartner(t)
		require.NoError(t, p.RequestOnboarding())

		require.NoError(t, p.Reject())

		assert.Equal(t, partner.New, p.Status())
	})

	t.Run("should not approve a non-pending application", func(t *testing.T) {
		p := createValidPartner(t)

		require.Error(t, p.Approve())
		assert.Equal(t, partner.New, p.Status())
	})

	t.Run("should not clock in from active", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Active, 0, partner.Metrics{Rating: 4.5})

		require.Error(t, p.ClockIn())
		assert.Equal(t, partner.Active, p.Status())
	})

	t.Run("should not clock out when off shift", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Inactive, 0, partner.Metrics{Rating: 4.5})

		require.Error(t, p.ClockOut())
		assert.Equal(t, partner.Inactive, p.Status())
	})
}

func TestPartnerApplyMetricsSnapshot(t *testing.T) {
	t.Run("should nudge rating by net completed orders", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Active, 0, partner.Metrics{Rating: 4.5})

		p.ApplyMetricsSnapshot(3, 1)

		metrics := p.PartnerMetrics()
		assert.InDelta(t, 4.52, metrics.Rating, 1e-9)
		assert.Equal(t, 3, metrics.CompletedOrders)
		assert.Equal(t, 1, metrics.CancelledOrders)
	})

	t.Run("should compound on repeated snapshots with identical totals", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Active, 0, partner.Metrics{Rating: 4.5})

		p.ApplyMetricsSnapshot(2, 1)
		p.ApplyMetricsSnapshot(2, 1)

		assert.InDelta(t, 4.52, p.PartnerMetrics().Rating, 1e-9)
	})

	t.Run("should clamp at the upper bound", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Active, 0, partner.Metrics{Rating: 4.99})

		p.ApplyMetricsSnapshot(10, 0)

		assert.InDelta(t, partner.MaxRating, p.PartnerMetrics().Rating, 1e-9)
	})

	t.Run("should clamp at the lower bound", func(t *testing.T) {
		p := restorePartnerWith(t, partner.Active, 0, partner.Metrics{Rating: 0.02})

		p.ApplyMetricsSnapshot(0, 10)

		assert.InDelta(t, partner.MinRating, p.PartnerMetrics().Rating, 1e-9)
	})
}

func TestPartnerUpdateProfile(t *testing.T) {
	p := createValidPartner(t)
	newShift, err := partner.ParseShiftSlot("06:00 - 14:00")
	require.NoError(t, err)

	require.NoError(t, p.UpdateProfile([]string{"Uptown", "Harbor"}, newShift))

	assert.Equal(t, []string{"Uptown", "Harbor"}, p.Areas())
	assert.Equal(t, "06:00 - 14:00", p.Shift().String())
	assert.True(t, p.ServesArea("Harbor"))
	assert.False(t, p.ServesArea("Downtown"))
}

func TestPartnerIsEqual(t *testing.T) {
	p := createValidPartner(t)
	other := createValidPartner(t)

	assert.True(t, p.IsEqual(p))
	assert.False(t, p.IsEqual(other))
	assert.False(t, p.IsEqual(nil))
}
