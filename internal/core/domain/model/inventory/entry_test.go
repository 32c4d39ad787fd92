package inventory_test

import (
	"testing"

	"ferremas/internal/core/domain/model/inventory"
	"ferremas/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	productID := kernel.NewUUID()
	branchID := kernel.NewUUID()

	t.Run("should create valid entry", func(t *testing.T) {
		entry, err := inventory.NewEntry(productID, branchID, 25)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.True(t, entry.ProductID().IsEqual(productID))
		assert.True(t, entry.BranchID().IsEqual(branchID))
		assert.Equal(t, 25, entry.TotalStock())
		assert.Equal(t, 0, entry.ReservedStock())
		assert.Equal(t, 25, entry.Available())
	})

	t.Run("should allow zero stock", func(t *testing.T) {
		entry, err := inventory.NewEntry(productID, branchID, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, entry.Available())
	})

	t.Run("should fail with negative stock", func(t *testing.T) {
		entry, err := inventory.NewEntry(productID, branchID, -1)

		require.Error(t, err)
		assert.Nil(t, entry)
		assert.Contains(t, err.Error(), "totalStock is invalid")
	})

	t.Run("should fail with invalid product UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		entry, err := inventory.NewEntry(invalidID, branchID, 10)

		require.Error(t, err)
		assert.Nil(t, entry)
	})
}

func TestRestoreEntry(t *testing.T) {
	productID := kernel.NewUUID()
	branchID := kernel.NewUUID()

	t.Run("should restore entry with reservation", func(t *testing.T) {
		entry, err := inventory.RestoreEntry(productID, branchID, 10, 4)

		require.NoError(t, err)
		assert.Equal(t, 10, entry.TotalStock())
		assert.Equal(t, 4, entry.ReservedStock())
		assert.Equal(t, 6, entry.Available())
	})

	t.Run("should fail when reserved exceeds total", func(t *testing.T) {
		entry, err := inventory.RestoreEntry(productID, branchID, 10, 11)

		require.Error(t, err)
		assert.Nil(t, entry)
		assert.Contains(t, err.Error(), "reservedStock")
	})

	t.Run("should fail with negative reserved", func(t *testing.T) {
		entry, err := inventory.RestoreEntry(productID, branchID, 10, -1)

		require.Error(t, err)
		assert.Nil(t, entry)
	})
}

func TestEntry_Reserve(t *testing.T) {
	newEntry := func(t *testing.T, total int) *inventory.Entry {
		t.Helper()
		entry, err := inventory.NewEntry(kernel.NewUUID(), kernel.NewUUID(), total)
		require.NoError(t, err)
		return entry
	}

	t.Run("should reserve available stock", func(t *testing.T) {
		entry := newEntry(t, 10)

		require.NoError(t, entry.Reserve(4))

		assert.Equal(t, 10, entry.TotalStock())
		assert.Equal(t, 4, entry.ReservedStock())
		assert.Equal(t, 6, entry.Available())
	})

	t.Run("should reserve exactly the available quantity", func(t *testing.T) {
		entry := newEntry(t, 10)

		require.NoError(t, entry.Reserve(10))

		assert.Equal(t, 0, entry.Available())
	})

	t.Run("should fail beyond available and leave entry unchanged", func(t *testing.T) {
		entry := newEntry(t, 10)
		require.NoError(t, entry.Reserve(7))

		err := entry.Reserve(4)

		require.Error(t, err)
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 4, stockErr.Requested)
		assert.Equal(t, 3, stockErr.Available)
		assert.True(t, stockErr.ProductID.IsEqual(entry.ProductID()))

		assert.Equal(t, 7, entry.ReservedStock())
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		entry := newEntry(t, 10)

		require.Error(t, entry.Reserve(0))
		require.Error(t, entry.Reserve(-3))
		assert.Equal(t, 0, entry.ReservedStock())
	})
}

func TestEntry_Release(t *testing.T) {
	entry, err := inventory.RestoreEntry(kernel.NewUUID(), kernel.NewUUID(), 10, 5)
	require.NoError(t, err)

	t.Run("should return reservation to the pool", func(t *testing.T) {
		entry.Release(3)

		assert.Equal(t, 2, entry.ReservedStock())
		assert.Equal(t, 8, entry.Available())
		assert.Equal(t, 10, entry.TotalStock())
	})

	t.Run("should clamp at zero", func(t *testing.T) {
		entry.Release(100)

		assert.Equal(t, 0, entry.ReservedStock())
		assert.Equal(t, 10, entry.Available())
	})

	t.Run("should ignore non-positive quantities", func(t *testing.T) {
		entry.Release(0)
		entry.Release(-5)

		assert.Equal(t, 0, entry.ReservedStock())
	})
}

func TestEntry_Commit(t *testing.T) {
	t.Run("should deduct reserved stock permanently", func(t *testing.T) {
		entry, err := inventory.RestoreEntry(kernel.NewUUID(), kernel.NewUUID(), 10, 4)
		require.NoError(t, err)

		require.NoError(t, entry.Commit(4))

		assert.Equal(t, 6, entry.TotalStock())
		assert.Equal(t, 0, entry.ReservedStock())
		assert.Equal(t, 6, entry.Available())
	})

	t.Run("should fail beyond reserved quantity", func(t *testing.T) {
		entry, err := inventory.RestoreEntry(kernel.NewUUID(), kernel.NewUUID(), 10, 2)
		require.NoError(t, err)

		err = entry.Commit(3)

		require.Error(t, err)
		assert.Equal(t, 10, entry.TotalStock())
		assert.Equal(t, 2, entry.ReservedStock())
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		entry, err := inventory.RestoreEntry(kernel.NewUUID(), kernel.NewUUID(), 10, 2)
		require.NoError(t, err)

		require.Error(t, entry.Commit(0))
	})
}

func TestEntry_Restock(t *testing.T) {
	entry, err := inventory.NewEntry(kernel.NewUUID(), kernel.NewUUID(), 5)
	require.NoError(t, err)

	require.NoError(t, entry.Restock(20))
	assert.Equal(t, 25, entry.TotalStock())

	require.Error(t, entry.Restock(0))
	assert.Equal(t, 25, entry.TotalStock())
}

func TestEntry_Validate(t *testing.T) {
	t.Run("should fail for nil entry", func(t *testing.T) {
		var entry *inventory.Entry
		assert.ErrorIs(t, entry.Validate(), inventory.ErrEntryIsNotConstructed)
	})

	t.Run("should fail for zero-value entry", func(t *testing.T) {
		var entry inventory.Entry
		assert.ErrorIs(t, entry.Validate(), inventory.ErrEntryIsNotConstructed)
	})
}
