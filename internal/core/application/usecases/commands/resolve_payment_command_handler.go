package commands

import (
	"context"
	"log/slog"
	"time"
)

// ResolvePaymentCommandHandler records a finance actor's verdict on a bank
// transfer proof. Resolution changes only the payment record: a rejected
// payment leaves the order where it is and the rejection is surfaced for a
// human-driven cancel decision.
type ResolvePaymentCommandHandler struct {
	uowFactory  OrderUoWFactory
	invalidator SnapshotInvalidator
	logger      *slog.Logger
}

// NewResolvePaymentCommandHandler creates a handler for payment resolution.
func NewResolvePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	invalidator SnapshotInvalidator,
	logger *slog.Logger,
) ResolvePaymentCommandHandler {
	return ResolvePaymentCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Handle applies the verdict to the order's payment record. Fails with
// order.ErrPaymentAlreadyResolved when the payment is not awaiting a
// decision, including when a second finance actor raced this one.
func (h *ResolvePaymentCommandHandler) Handle(ctx context.Context, cmd ResolvePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch cmd.Decision() {
	case PaymentDecisionConfirm:
		err = aggregate.ConfirmPayment(cmd.ActorID(), now)
	case PaymentDecisionReject:
		err = aggregate.RejectPayment(cmd.ActorID(), now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.invalidator.Invalidate(ctx, aggregate.ID()); err != nil {
		h.logger.Warn("failed to invalidate order snapshot",
			"orderId", aggregate.ID().String(), "error", err)
	}

	return nil
}
