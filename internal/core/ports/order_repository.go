package ports

import (
	"context"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their lifecycle status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier. Inside a
	// transaction the row is locked until commit, so concurrent workflow
	// actions on the same order are serialized.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// oldest first. Used by the role work queues.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
