package order

import (
	"errors"
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/pkg/errs"
	"ferremas/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrEmptyCart indicates an order was submitted without line items.
	ErrEmptyCart = errors.New("order requires at least one line item")

	// ErrInvalidAddress indicates a delivery order was submitted without a
	// shipping address.
	ErrInvalidAddress = errors.New("delivery requires a non-empty shipping address")

	// ErrPaymentNotConfirmed blocks completion of a bank-transfer order
	// whose payment has not been confirmed by finance.
	ErrPaymentNotConfirmed = errors.New("payment has not been confirmed")

	// ErrMissingCarrier blocks completion of a delivery order without an
	// assigned carrier.
	ErrMissingCarrier = errors.New("delivery requires a carrier before completion")
)

// Order is the aggregate root of the ordering workflow. It owns the
// lifecycle state machine, the captured line items, and the attached payment
// and fulfillment records.
//
// Order follows these invariants:
//   - Line items are non-empty and immutable after creation
//   - The total is always derived from the line items and delivery method,
//     never stored independently
//   - Status changes only through the named workflow transitions
//   - Delivery orders carry a non-empty shipping address
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// salesRepID is the sales actor who claimed the order at approval
	// (nil until claimed)
	salesRepID *kernel.UUID

	// branchID is the branch whose inventory serves the order
	branchID kernel.UUID

	// lineItems are the product positions captured at checkout
	lineItems []LineItem

	// deliveryMethod selects pickup or home delivery
	deliveryMethod DeliveryMethod

	// shippingAddress is required when deliveryMethod is Delivery
	shippingAddress string

	// phone and notes are informational checkout fields
	phone string
	notes string

	// status is the current state in the order lifecycle
	status Status

	// payment is the attached payment record, never nil
	payment *Payment

	// fulfillment is created when the order enters preparation
	fulfillment *Fulfillment

	createdAt        time.Time
	lastTransitionAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an Order in Pending status with validation. This is the
// only way to create a new order; all checkout input has to pass through the
// invariants here.
//
// Returns ErrEmptyCart when no line items are given, ErrInvalidAddress when
// a delivery order has no shipping address, and ErrMissingProof (via the
// payment record) when a bank transfer has no proof reference.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	branchID kernel.UUID,
	lineItems []LineItem,
	deliveryMethod DeliveryMethod,
	shippingAddress string,
	phone string,
	notes string,
	paymentMethod PaymentMethod,
	proofReference string,
) (*Order, error) {
	order := &Order{
		status: StatusPending,
		phone:  phone,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setBranchID(branchID),
		order.setLineItems(lineItems),
		order.setDelivery(deliveryMethod, shippingAddress),
	); err != nil {
		return nil, err
	}

	payment, err := NewPayment(paymentMethod, proofReference)
	if err != nil {
		return nil, err
	}
	order.payment = payment

	now := time.Now().UTC()
	order.createdAt = now
	order.lastTransitionAt = now

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status
// and attached records. The restored order behaves identically to one that
// went through the workflow transitions.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	salesRepID *kernel.UUID,
	branchID kernel.UUID,
	lineItems []LineItem,
	deliveryMethod DeliveryMethod,
	shippingAddress string,
	phone string,
	notes string,
	status Status,
	payment *Payment,
	fulfillment *Fulfillment,
	createdAt time.Time,
	lastTransitionAt time.Time,
) (*Order, error) {
	order := &Order{
		phone: phone,
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setBranchID(branchID),
		order.setLineItems(lineItems),
		order.setDelivery(deliveryMethod, shippingAddress),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	if fulfillment != nil {
		if err := fulfillment.Validate(); err != nil {
			return nil, err
		}
	}
	if salesRepID != nil {
		if err := salesRepID.Validate(); err != nil {
			return nil, err
		}
	}

	order.status = status
	order.payment = payment
	order.fulfillment = fulfillment
	order.salesRepID = salesRepID
	order.createdAt = createdAt
	order.lastTransitionAt = lastTransitionAt

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Called when reconstructing orders from persistence to ensure integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// SalesRepID returns the sales actor who claimed the order at approval.
// Returns nil while the order is unclaimed.
func (o *Order) SalesRepID() *kernel.UUID {
	return o.salesRepID
}

// BranchID returns the branch whose inventory serves the order.
func (o *Order) BranchID() kernel.UUID {
	return o.branchID
}

// LineItems returns a copy of the captured product positions.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// DeliveryMethod returns how the customer receives the order.
func (o *Order) DeliveryMethod() DeliveryMethod {
	return o.deliveryMethod
}

// ShippingAddress returns the delivery address, empty for pickup orders.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// Phone returns the contact phone captured at checkout.
func (o *Order) Phone() string {
	return o.phone
}

// Notes returns the free-form delivery notes captured at checkout.
func (o *Order) Notes() string {
	return o.notes
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Payment returns the attached payment record.
func (o *Order) Payment() *Payment {
	return o.payment
}

// Fulfillment returns the attached fulfillment record.
// Returns nil until the order enters preparation.
func (o *Order) Fulfillment() *Fulfillment {
	return o.fulfillment
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// LastTransitionAt returns when the last workflow transition was applied.
func (o *Order) LastTransitionAt() time.Time {
	return o.lastTransitionAt
}

// Subtotal returns the sum of all line item subtotals.
func (o *Order) Subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.lineItems {
		subtotal = subtotal.Add(item.Subtotal())
	}
	return subtotal
}

// ShippingFee returns the fee derived from the delivery method and subtotal.
func (o *Order) ShippingFee() kernel.Money {
	return o.deliveryMethod.ShippingFee(o.Subtotal())
}

// TotalAmount returns subtotal plus shipping fee. The total is always
// recomputed from the line items; it is never stored.
func (o *Order) TotalAmount() kernel.Money {
	return o.Subtotal().Add(o.ShippingFee())
}

// HasReservedStock reports whether the order currently holds a stock
// reservation. Reservation is taken at approval and resolved at completion
// (commit) or cancellation (release).
func (o *Order) HasReservedStock() bool {
	return o.status == StatusApproved || o.status == StatusInPreparation || o.status == StatusReady
}

// Approve moves a pending order to Approved and claims it for the given
// sales actor. Stock reservation is the caller's side effect and must be
// applied in the same transaction.
func (o *Order) Approve(salesRepID kernel.UUID) error {
	if err := salesRepID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.salesRepID = &salesRepID
	o.touch()
	return nil
}

// Reject moves a pending order to Rejected. No stock has been reserved at
// this point, so there is nothing to release.
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// SendToPreparation moves an approved order to InPreparation and creates
// the fulfillment record in Preparing state.
func (o *Order) SendToPreparation() error {
	newStatus, err := o.status.SendToPreparation()
	if err != nil {
		return err
	}

	fulfillment, err := NewFulfillment(o.lineItems)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.fulfillment = fulfillment
	o.touch()
	return nil
}

// MarkReady moves an order in preparation to Ready. The warehouse actor may
// attach a carrier and per-product shelf locations.
func (o *Order) MarkReady(carrier *string, locations map[string]string) error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}
	if o.fulfillment == nil {
		return ErrFulfillmentNotStarted
	}

	if err := o.fulfillment.MarkReady(carrier, locations); err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ConfirmDelivery moves a ready order to Completed.
//
// Gates: a bank-transfer payment must be confirmed (ErrPaymentNotConfirmed)
// and a delivery order must have a carrier (ErrMissingCarrier). Stock commit
// is the caller's side effect and must be applied in the same transaction.
func (o *Order) ConfirmDelivery() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	if o.fulfillment == nil {
		return ErrFulfillmentNotStarted
	}

	if o.payment.RequiresConfirmation() && !o.payment.IsConfirmed() {
		return ErrPaymentNotConfirmed
	}
	if o.deliveryMethod == Delivery && !o.fulfillment.HasCarrier() {
		return ErrMissingCarrier
	}

	if err := o.fulfillment.MarkDelivered(); err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel withdraws a pending or approved order. Releasing a reservation
// made at approval is the caller's side effect; check HasReservedStock
// before calling.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ConfirmPayment records finance acceptance of the order's bank transfer.
// Does not change the order status.
func (o *Order) ConfirmPayment(by kernel.UUID, at time.Time) error {
	return o.payment.Confirm(by, at)
}

// RejectPayment records finance refusal of the order's bank transfer.
// Does not change the order status; the rejection is surfaced for a
// human-driven cancel decision.
func (o *Order) RejectPayment(by kernel.UUID, at time.Time) error {
	return o.payment.Reject(by, at)
}

func (o *Order) touch() {
	o.lastTransitionAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	o.branchID = branchID
	return nil
}

func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return ErrEmptyCart
	}
	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.lineItems = make([]LineItem, len(lineItems))
	copy(o.lineItems, lineItems)
	return nil
}

func (o *Order) setDelivery(method DeliveryMethod, shippingAddress string) error {
	if err := method.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryMethod is invalid", err)
	}
	if method == Delivery && shippingAddress == "" {
		return ErrInvalidAddress
	}

	o.deliveryMethod = method
	o.shippingAddress = shippingAddress
	return nil
}
