package commands

import (
	"errors"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem is one cart position carried by CreateOrderCommand.
// The unit price is the catalog price captured at checkout time.
type CreateOrderItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
}

// CreateOrderCommand represents a customer checkout: the cart positions, how
// the order should be delivered, and how it will be paid.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, branchID, items,
//	    order.Delivery, "Av. Providencia 1234", "+56 9 1234 5678", "",
//	    order.BankTransfer, "TRX-2024-0099")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	branchID        kernel.UUID
	items           []CreateOrderItem
	deliveryMethod  order.DeliveryMethod
	shippingAddress string
	phone           string
	notes           string
	paymentMethod   order.PaymentMethod
	proofReference  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Identifier and enum fields are validated here; cart contents, address and
// proof requirements are enforced by the Order aggregate itself.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	branchID kernel.UUID,
	items []CreateOrderItem,
	deliveryMethod order.DeliveryMethod,
	shippingAddress string,
	phone string,
	notes string,
	paymentMethod order.PaymentMethod,
	proofReference string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		items:           items,
		deliveryMethod:  deliveryMethod,
		shippingAddress: shippingAddress,
		phone:           phone,
		notes:           notes,
		paymentMethod:   paymentMethod,
		proofReference:  proofReference,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setBranchID(branchID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the client-supplied identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// BranchID returns the branch whose inventory will serve the order.
func (c CreateOrderCommand) BranchID() kernel.UUID {
	return c.branchID
}

// Items returns the cart positions.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

// DeliveryMethod returns how the customer receives the order.
func (c CreateOrderCommand) DeliveryMethod() order.DeliveryMethod {
	return c.deliveryMethod
}

// ShippingAddress returns the delivery address, empty for pickup.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// Phone returns the contact phone captured at checkout.
func (c CreateOrderCommand) Phone() string {
	return c.phone
}

// Notes returns the free-form delivery notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// PaymentMethod returns the declared payment instrument.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// ProofReference returns the transfer proof reference, empty for cards.
func (c CreateOrderCommand) ProofReference() string {
	return c.proofReference
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	c.branchID = branchID
	return nil
}
