package ports

import (
	"context"

	"ferremas/internal/core/domain/model/inventory"
	"ferremas/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for the stock ledger.
type InventoryRepository interface {
	// Add persists a new ledger entry.
	Add(ctx context.Context, aggregate *inventory.Entry) error

	// Update persists changes to an existing ledger entry.
	Update(ctx context.Context, aggregate *inventory.Entry) error

	// Get retrieves the ledger entry for a product at a branch. Inside a
	// transaction the row is locked until commit. Callers that lock several
	// entries must request them in ascending product id order to avoid
	// deadlocks.
	Get(ctx context.Context, productID kernel.UUID, branchID kernel.UUID) (*inventory.Entry, error)
}
