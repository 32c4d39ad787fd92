// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the stock ledger within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across the order and the stock ledger.
	// Used by workflow actions whose side effects touch both: approval
	// reserves stock, cancellation releases it, completion commits it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   inventoryRepo := uow.InventoryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// OrderChangedEvent is published after a workflow action commits. Consumers
// (notification services, analytics) see the order id and the status it
// ended up in.
type OrderChangedEvent struct {
	OrderID    kernel.UUID
	Status     string
	Action     string
	OccurredAt time.Time
}

// EventPublisher sends order lifecycle events to the message broker.
// Publishing happens after commit; a publish failure never rolls back the
// workflow action.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderChangedEvent) error
}

// SnapshotInvalidator drops the cached read snapshot of an order after its
// state changed. Invalidation happens after commit and is best effort; a
// stale snapshot expires on its own TTL.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, orderID kernel.UUID) error
}
