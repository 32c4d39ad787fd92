// Package memstore provides an in-memory unit of work over the order and
// inventory repositories. It backs end-to-end workflow tests and local
// development runs that have no database at hand.
//
// A transaction holds the store-wide lock from Begin until Commit or
// Rollback, which mirrors the row-locking behavior of the SQL adapter at
// a coarser grain: concurrent workflow actions are fully serialized.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ferremas/internal/core/domain/model/inventory"
	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/core/ports"
	"ferremas/internal/pkg/errs"
)

// Store holds all aggregates. It is safe for concurrent use; every access
// goes through a unit of work.
type Store struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	entries map[string]*inventory.Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders:  make(map[string]*order.Order),
		entries: make(map[string]*inventory.Entry),
	}
}

func entryKey(productID, branchID kernel.UUID) string {
	return productID.String() + "@" + branchID.String()
}

// Factory creates units of work over a shared store.
type Factory struct {
	store *Store
}

// NewFactory creates a unit of work factory bound to the store.
func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

// Create returns a fresh unit of work. Each caller gets its own instance.
func (f *Factory) Create() ports.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork stages writes and applies them on Commit. The store lock is
// held for the lifetime of the transaction.
type unitOfWork struct {
	store         *Store
	active        bool
	stagedOrders  map[string]*order.Order
	stagedEntries map[string]*inventory.Entry
}

func (uow *unitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.store.mu.Lock()
	uow.active = true
	uow.stagedOrders = make(map[string]*order.Order)
	uow.stagedEntries = make(map[string]*inventory.Entry)
	return nil
}

func (uow *unitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return fmt.Errorf("no active transaction to commit")
	}
	for id, aggregate := range uow.stagedOrders {
		uow.store.orders[id] = aggregate
	}
	for key, entry := range uow.stagedEntries {
		uow.store.entries[key] = entry
	}
	uow.finish()
	return nil
}

func (uow *unitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return fmt.Errorf("no active transaction to roll back")
	}
	uow.finish()
	return nil
}

func (uow *unitOfWork) finish() {
	uow.active = false
	uow.stagedOrders = nil
	uow.stagedEntries = nil
	uow.store.mu.Unlock()
}

func (uow *unitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *unitOfWork) InventoryRepository() ports.InventoryRepository {
	return &inventoryRepository{uow: uow}
}

// withTx runs fn holding the store lock. Outside a transaction the lock is
// taken just for the call, so single reads still see consistent state.
func (uow *unitOfWork) withTx(fn func() error) error {
	if uow.active {
		return fn()
	}
	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()
	return fn()
}

type orderRepository struct {
	uow *unitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	return r.uow.withTx(func() error {
		id := aggregate.ID().String()
		if _, ok := r.lookupOrder(id); ok {
			return fmt.Errorf("order %s already exists", id)
		}
		return r.stage(aggregate)
	})
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	return r.uow.withTx(func() error {
		id := aggregate.ID().String()
		if _, ok := r.lookupOrder(id); !ok {
			return errs.NewObjectNotFoundError("orderId", id)
		}
		return r.stage(aggregate)
	})
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	var result *order.Order
	err := r.uow.withTx(func() error {
		stored, ok := r.lookupOrder(id.String())
		if !ok {
			return errs.NewObjectNotFoundError("orderId", id.String())
		}
		clone, err := cloneOrder(stored)
		if err != nil {
			return err
		}
		result = clone
		return nil
	})
	return result, err
}

func (r *orderRepository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	var result []*order.Order
	err := r.uow.withTx(func() error {
		for id, stored := range r.uow.store.orders {
			if staged, ok := r.stagedOrder(id); ok {
				stored = staged
			}
			if stored.Status() != status {
				continue
			}
			clone, err := cloneOrder(stored)
			if err != nil {
				return err
			}
			result = append(result, clone)
		}
		for id, staged := range r.stagedOrdersOnly() {
			if _, ok := r.uow.store.orders[id]; ok {
				continue
			}
			if staged.Status() != status {
				continue
			}
			clone, err := cloneOrder(staged)
			if err != nil {
				return err
			}
			result = append(result, clone)
		}
		sort.Slice(result, func(i, j int) bool {
			return result[i].CreatedAt().Before(result[j].CreatedAt())
		})
		return nil
	})
	return result, err
}

func (r *orderRepository) lookupOrder(id string) (*order.Order, bool) {
	if staged, ok := r.stagedOrder(id); ok {
		return staged, true
	}
	stored, ok := r.uow.store.orders[id]
	return stored, ok
}

func (r *orderRepository) stagedOrder(id string) (*order.Order, bool) {
	if !r.uow.active {
		return nil, false
	}
	staged, ok := r.uow.stagedOrders[id]
	return staged, ok
}

func (r *orderRepository) stagedOrdersOnly() map[string]*order.Order {
	if !r.uow.active {
		return nil
	}
	return r.uow.stagedOrders
}

func (r *orderRepository) stage(aggregate *order.Order) error {
	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	if r.uow.active {
		r.uow.stagedOrders[aggregate.ID().String()] = clone
		return nil
	}
	r.uow.store.orders[aggregate.ID().String()] = clone
	return nil
}

type inventoryRepository struct {
	uow *unitOfWork
}

func (r *inventoryRepository) Add(_ context.Context, aggregate *inventory.Entry) error {
	return r.uow.withTx(func() error {
		key := entryKey(aggregate.ProductID(), aggregate.BranchID())
		if _, ok := r.lookupEntry(key); ok {
			return fmt.Errorf("inventory entry %s already exists", key)
		}
		return r.stage(aggregate)
	})
}

func (r *inventoryRepository) Update(_ context.Context, aggregate *inventory.Entry) error {
	return r.uow.withTx(func() error {
		key := entryKey(aggregate.ProductID(), aggregate.BranchID())
		if _, ok := r.lookupEntry(key); !ok {
			return errs.NewObjectNotFoundError("productId", key)
		}
		return r.stage(aggregate)
	})
}

func (r *inventoryRepository) Get(
	_ context.Context,
	productID kernel.UUID,
	branchID kernel.UUID,
) (*inventory.Entry, error) {
	var result *inventory.Entry
	err := r.uow.withTx(func() error {
		key := entryKey(productID, branchID)
		stored, ok := r.lookupEntry(key)
		if !ok {
			return errs.NewObjectNotFoundError("productId", key)
		}
		clone, err := cloneEntry(stored)
		if err != nil {
			return err
		}
		result = clone
		return nil
	})
	return result, err
}

func (r *inventoryRepository) lookupEntry(key string) (*inventory.Entry, bool) {
	if r.uow.active {
		if staged, ok := r.uow.stagedEntries[key]; ok {
			return staged, true
		}
	}
	stored, ok := r.uow.store.entries[key]
	return stored, ok
}

func (r *inventoryRepository) stage(aggregate *inventory.Entry) error {
	clone, err := cloneEntry(aggregate)
	if err != nil {
		return err
	}
	key := entryKey(aggregate.ProductID(), aggregate.BranchID())
	if r.uow.active {
		r.uow.stagedEntries[key] = clone
		return nil
	}
	r.uow.store.entries[key] = clone
	return nil
}

// cloneOrder rebuilds an independent aggregate through the restore
// constructor, so workflow mutations on one copy never leak into another.
func cloneOrder(src *order.Order) (*order.Order, error) {
	p := src.Payment()
	payment, err := order.RestorePayment(
		p.Method(), p.ProofReference(), p.State(),
		copyUUIDPtr(p.ConfirmedBy()), copyTimePtr(p.ConfirmedAt()),
	)
	if err != nil {
		return nil, err
	}

	var fulfillment *order.Fulfillment
	if f := src.Fulfillment(); f != nil {
		items := append([]order.FulfillmentItem(nil), f.Items()...)
		fulfillment, err = order.RestoreFulfillment(items, f.State(), copyStringPtr(f.Carrier()))
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		src.ID(), src.CustomerID(), copyUUIDPtr(src.SalesRepID()), src.BranchID(),
		src.LineItems(), src.DeliveryMethod(), src.ShippingAddress(),
		src.Phone(), src.Notes(), src.Status(), payment, fulfillment,
		src.CreatedAt(), src.LastTransitionAt(),
	)
}

func cloneEntry(src *inventory.Entry) (*inventory.Entry, error) {
	return inventory.RestoreEntry(src.ProductID(), src.BranchID(), src.TotalStock(), src.ReservedStock())
}

func copyUUIDPtr(v *kernel.UUID) *kernel.UUID {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTimePtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
