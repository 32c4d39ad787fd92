package order

import (
	"errors"
	"fmt"
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/pkg/errs"
	"ferremas/internal/pkg/guard"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment was not created
	// through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrMissingProof indicates a bank-transfer payment was declared without
	// a transfer proof reference.
	ErrMissingProof = errors.New("bank transfer requires a proof reference")

	// ErrPaymentAlreadyResolved indicates a confirm or reject was attempted
	// on a payment that is no longer awaiting confirmation.
	ErrPaymentAlreadyResolved = errors.New("payment is not awaiting confirmation")
)

// PaymentMethod is the payment instrument declared at checkout.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// CreditCard payments are settled by the card processor and treated as
	// confirmed at order placement.
	CreditCard

	// DebitCard payments behave like credit card payments.
	DebitCard

	// BankTransfer payments carry a transfer proof reference and await
	// manual confirmation by a finance actor.
	BankTransfer
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "Unknown",
		CreditCard:           "CreditCard",
		DebitCard:            "DebitCard",
		BankTransfer:         "BankTransfer",
	}
}

// Validate checks if the PaymentMethod is one of the defined methods.
func (m PaymentMethod) Validate() error {
	if m != CreditCard && m != DebitCard && m != BankTransfer {
		return fmt.Errorf("%d is not a valid payment method", m)
	}
	return nil
}

// String returns the name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// PaymentMethodFromString parses a payment method from its name.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if method != PaymentMethodUnknown && name == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, fmt.Errorf("%q is not a valid payment method", s)
}

// ConfirmationState is the manual confirmation state of a payment.
//
// State transitions:
//
//	PaymentAwaiting ──> PaymentConfirmed
//	        └─────────> PaymentRejected
//
// Both outcomes are terminal. Card payments start in PaymentConfirmed.
type ConfirmationState int

const (
	// ConfirmationStateUnknown represents an invalid or undefined state.
	ConfirmationStateUnknown ConfirmationState = iota

	// PaymentAwaiting means a finance actor has not yet reviewed the
	// transfer proof.
	PaymentAwaiting

	// PaymentConfirmed means the payment is settled. Card payments carry
	// this state from the start.
	PaymentConfirmed

	// PaymentRejected means finance declined the transfer proof. The order
	// is not cancelled automatically; the rejection is surfaced for a
	// human-driven cancel decision.
	PaymentRejected
)

func getConfirmationStateStrings() map[ConfirmationState]string {
	return map[ConfirmationState]string{
		ConfirmationStateUnknown: "Unknown",
		PaymentAwaiting:          "AwaitingConfirmation",
		PaymentConfirmed:         "Confirmed",
		PaymentRejected:          "Rejected",
	}
}

// Validate checks if the ConfirmationState is one of the defined states.
func (s ConfirmationState) Validate() error {
	if s != PaymentAwaiting && s != PaymentConfirmed && s != PaymentRejected {
		return fmt.Errorf("%d is not a valid confirmation state", s)
	}
	return nil
}

// String returns the name of the confirmation state.
func (s ConfirmationState) String() string {
	if str, ok := getConfirmationStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ConfirmationStateFromString parses a confirmation state from its name.
func ConfirmationStateFromString(s string) (ConfirmationState, error) {
	for state, name := range getConfirmationStateStrings() {
		if state != ConfirmationStateUnknown && name == s {
			return state, nil
		}
	}
	return ConfirmationStateUnknown, fmt.Errorf("%q is not a valid confirmation state", s)
}

// Payment records the declared payment method, its proof reference and the
// manual confirmation outcome. There is exactly one Payment per order; it is
// created with the order and mutated only through Confirm and Reject.
type Payment struct {
	method         PaymentMethod
	proofReference string
	state          ConfirmationState
	confirmedBy    *kernel.UUID
	confirmedAt    *time.Time

	guard guard.ConstructorGuard
}

// NewPayment creates the payment record for a new order.
//
// Card payments are modeled as confirmed at placement; there is no manual
// step. Bank transfers require a non-empty proof reference and start in
// PaymentAwaiting.
func NewPayment(method PaymentMethod, proofReference string) (*Payment, error) {
	if err := method.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("method is invalid", err)
	}

	payment := &Payment{
		method:         method,
		proofReference: proofReference,
		state:          PaymentConfirmed,
		guard:          guard.NewConstructorGuard(),
	}

	if method == BankTransfer {
		if proofReference == "" {
			return nil, ErrMissingProof
		}
		payment.state = PaymentAwaiting
	}

	return payment, nil
}

// RestorePayment reconstructs a payment record from persistence.
func RestorePayment(
	method PaymentMethod,
	proofReference string,
	state ConfirmationState,
	confirmedBy *kernel.UUID,
	confirmedAt *time.Time,
) (*Payment, error) {
	if err := method.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("method is invalid", err)
	}
	if err := state.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("state is invalid", err)
	}
	if confirmedBy != nil {
		if err := confirmedBy.Validate(); err != nil {
			return nil, err
		}
	}

	return &Payment{
		method:         method,
		proofReference: proofReference,
		state:          state,
		confirmedBy:    confirmedBy,
		confirmedAt:    confirmedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// Method returns the declared payment method.
func (p *Payment) Method() PaymentMethod {
	return p.method
}

// ProofReference returns the transfer proof reference. Empty for cards.
func (p *Payment) ProofReference() string {
	return p.proofReference
}

// State returns the current confirmation state.
func (p *Payment) State() ConfirmationState {
	return p.state
}

// ConfirmedBy returns the finance actor who resolved the payment, nil for
// auto-confirmed card payments and unresolved transfers.
func (p *Payment) ConfirmedBy() *kernel.UUID {
	return p.confirmedBy
}

// ConfirmedAt returns when the payment was resolved, nil if unresolved.
func (p *Payment) ConfirmedAt() *time.Time {
	return p.confirmedAt
}

// RequiresConfirmation reports whether the method needs a manual decision.
func (p *Payment) RequiresConfirmation() bool {
	return p.method == BankTransfer
}

// IsConfirmed reports whether the payment is settled.
func (p *Payment) IsConfirmed() bool {
	return p.state == PaymentConfirmed
}

// Confirm records a finance actor's acceptance of the transfer proof.
// Fails with ErrPaymentAlreadyResolved unless the payment is awaiting.
func (p *Payment) Confirm(by kernel.UUID, at time.Time) error {
	return p.resolve(PaymentConfirmed, by, at)
}

// Reject records a finance actor's refusal of the transfer proof.
// Fails with ErrPaymentAlreadyResolved unless the payment is awaiting.
func (p *Payment) Reject(by kernel.UUID, at time.Time) error {
	return p.resolve(PaymentRejected, by, at)
}

func (p *Payment) resolve(outcome ConfirmationState, by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if p.state != PaymentAwaiting {
		return ErrPaymentAlreadyResolved
	}

	p.state = outcome
	p.confirmedBy = &by
	p.confirmedAt = &at
	return nil
}
