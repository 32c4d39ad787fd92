package commands

import (
	"context"
	"log/slog"
	"time"

	"ferremas/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Builds the Order aggregate from the checkout data, persists it in Pending
// status and announces it on the event bus.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for the post-commit announcement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the checkout command. The aggregate constructor enforces
// the cart, address and payment-proof rules; anything it rejects surfaces
// unchanged to the caller. The order is persisted in a transaction and the
// lifecycle event is published only after the commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lineItems := make([]order.LineItem, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		lineItem, err := order.NewLineItem(item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return err
		}
		lineItems = append(lineItems, lineItem)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.BranchID(),
		lineItems,
		cmd.DeliveryMethod(),
		cmd.ShippingAddress(),
		cmd.Phone(),
		cmd.Notes(),
		cmd.PaymentMethod(),
		cmd.ProofReference(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := OrderChangedEvent{
		OrderID:    aggregate.ID(),
		Status:     aggregate.Status().String(),
		Action:     "create",
		OccurredAt: time.Now().UTC(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		// the order is committed, publishing is best effort
		h.logger.Warn("failed to publish order created event",
			"orderId", aggregate.ID().String(), "error", err)
	}

	return nil
}
