package commands

import (
	"errors"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/pkg/guard"
)

var ErrResolvePaymentCommandIsNotConstructed = errors.New(
	"ResolvePaymentCommand must be created via NewResolvePaymentCommand constructor",
)

// PaymentDecision is the finance actor's verdict on a bank transfer proof.
type PaymentDecision int

const (
	PaymentDecisionUnknown PaymentDecision = iota
	PaymentDecisionConfirm
	PaymentDecisionReject
)

// Validate checks the decision is one of the two verdicts.
func (d PaymentDecision) Validate() error {
	if d != PaymentDecisionConfirm && d != PaymentDecisionReject {
		return errors.New("payment decision must be confirm or reject")
	}
	return nil
}

// ResolvePaymentCommand represents a finance actor confirming or rejecting
// the transfer proof of an order that is awaiting payment confirmation.
type ResolvePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actorID  kernel.UUID
	decision PaymentDecision

	guard guard.ConstructorGuard
}

// NewResolvePaymentCommand creates a payment resolution request.
func NewResolvePaymentCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	decision PaymentDecision,
) (ResolvePaymentCommand, error) {
	cmd := ResolvePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setDecision(decision),
	); err != nil {
		return ResolvePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolvePaymentCommand) Validate() error {
	return c.guard.Validate(ErrResolvePaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment is being resolved.
func (c ResolvePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the finance actor making the decision.
func (c ResolvePaymentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Decision returns the verdict.
func (c ResolvePaymentCommand) Decision() PaymentDecision {
	return c.decision
}

func (c *ResolvePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ResolvePaymentCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *ResolvePaymentCommand) setDecision(decision PaymentDecision) error {
	if err := decision.Validate(); err != nil {
		return err
	}
	c.decision = decision
	return nil
}
