package order

import (
	"errors"
	"fmt"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/pkg/errs"
	"ferremas/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem constructor.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a value object capturing one product position of an order.
// The unit price is the catalog price at order-creation time and is never
// recomputed from live catalog prices, so later price changes cannot drift
// the order total retroactively.
type LineItem struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewLineItem creates a LineItem with validation. Quantity must be positive
// and the product ID must be a valid UUID.
func NewLineItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the LineItem was created through the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the product this position refers to.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity, always positive.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price captured at order-creation time.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns quantity × unit price.
func (i LineItem) Subtotal() kernel.Money {
	return i.unitPrice.MulInt(int64(i.quantity))
}

func (i *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	i.unitPrice = unitPrice
	return nil
}
