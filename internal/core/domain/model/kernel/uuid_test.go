package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.NotEmpty(t, id.String())
	assert.False(t, id.IsEqual(kernel.NewUUID()))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should round-trip through the string form", func(t *testing.T) {
		original := kernel.NewUUID()

		restored, err := kernel.UUIDFromString(original.String())

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	original := kernel.NewUUID()
	raw := original.Bytes()

	restored, err := kernel.UUIDFromBytes(raw[:])

	require.NoError(t, err)
	assert.True(t, restored.IsEqual(original))
}

func TestUUIDValidate(t *testing.T) {
	var zero kernel.UUID
	assert.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
}
