package inventory

import (
	"errors"
	"fmt"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/pkg/errs"
	"ferremas/internal/pkg/guard"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not
	// created through NewEntry or RestoreEntry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrInsufficientStock indicates a reservation request exceeded the
	// available (unreserved) stock of a product at a branch.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the product and the quantities involved in
// a failed reservation. It unwraps to ErrInsufficientStock for
// classification.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError for the given
// product and quantities.
func NewInsufficientStockError(productID kernel.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d available, %d requested",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Entry is the stock ledger aggregate for one product at one branch.
//
// Entry maintains these invariants:
//   - totalStock >= 0 and reservedStock >= 0
//   - reservedStock never exceeds totalStock
//   - Available() is always totalStock - reservedStock
//
// Reservations are taken when an order is approved, released when it is
// cancelled, and committed (deducted from total) when it completes.
type Entry struct {
	// productID identifies the product tracked by this entry
	productID kernel.UUID

	// branchID identifies the branch holding the stock
	branchID kernel.UUID

	// totalStock is the physical quantity on the shelf
	totalStock int

	// reservedStock is the quantity promised to approved orders
	reservedStock int

	guard guard.ConstructorGuard
}

// NewEntry creates a stock ledger entry with no reservations.
func NewEntry(productID kernel.UUID, branchID kernel.UUID, totalStock int) (*Entry, error) {
	entry := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setProductID(productID),
		entry.setBranchID(branchID),
		entry.setTotalStock(totalStock),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreEntry reconstructs a stock ledger entry from persistence.
func RestoreEntry(productID kernel.UUID, branchID kernel.UUID, totalStock, reservedStock int) (*Entry, error) {
	entry, err := NewEntry(productID, branchID, totalStock)
	if err != nil {
		return nil, err
	}

	if reservedStock < 0 || reservedStock > totalStock {
		return nil, errs.NewValueIsOutOfRangeError("reservedStock", reservedStock, 0, totalStock)
	}
	entry.reservedStock = reservedStock

	return entry, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ProductID returns the product tracked by this entry.
func (e *Entry) ProductID() kernel.UUID {
	return e.productID
}

// BranchID returns the branch holding the stock.
func (e *Entry) BranchID() kernel.UUID {
	return e.branchID
}

// TotalStock returns the physical quantity on the shelf.
func (e *Entry) TotalStock() int {
	return e.totalStock
}

// ReservedStock returns the quantity promised to approved orders.
func (e *Entry) ReservedStock() int {
	return e.reservedStock
}

// Available returns the quantity that can still be reserved.
func (e *Entry) Available() int {
	return e.totalStock - e.reservedStock
}

// Reserve promises quantity units to an approved order. Fails with an
// InsufficientStockError when quantity exceeds Available; the entry is
// left unchanged in that case.
func (e *Entry) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > e.Available() {
		return NewInsufficientStockError(e.productID, quantity, e.Available())
	}

	e.reservedStock += quantity
	return nil
}

// Release returns a reservation to the available pool, clamped so the
// reserved quantity never goes below zero.
func (e *Entry) Release(quantity int) {
	if quantity <= 0 {
		return
	}

	e.reservedStock -= quantity
	if e.reservedStock < 0 {
		e.reservedStock = 0
	}
}

// Commit converts a reservation into a permanent deduction when an order
// completes. Fails if the entry does not hold that much reserved stock.
func (e *Entry) Commit(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > e.reservedStock {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, e.reservedStock)
	}

	e.totalStock -= quantity
	e.reservedStock -= quantity
	return nil
}

// Restock adds received quantity to the shelf.
func (e *Entry) Restock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	e.totalStock += quantity
	return nil
}

func (e *Entry) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	e.productID = productID
	return nil
}

func (e *Entry) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	e.branchID = branchID
	return nil
}

func (e *Entry) setTotalStock(totalStock int) error {
	if totalStock < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalStock is invalid",
			fmt.Errorf("%d is negative", totalStock),
		)
	}
	e.totalStock = totalStock
	return nil
}
