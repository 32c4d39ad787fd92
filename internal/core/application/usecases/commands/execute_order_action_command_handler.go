package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/core/domain/services"
	"ferremas/internal/core/ports"
)

// ErrNotOrderOwner is returned when a customer requests cancellation of an
// order placed by someone else.
var ErrNotOrderOwner = fmt.Errorf("%w: customers may only cancel their own orders", services.ErrUnauthorized)

// OrderActionResponse reports the outcome of a successfully applied
// workflow action.
type OrderActionResponse struct {
	OrderID kernel.UUID
	Status  order.Status
}

// ExecuteOrderActionCommandHandler is the workflow engine. It applies one
// role-gated action to one order inside a single transaction.
//
// Processing order is fixed:
//  1. Role authorization (before any state is read)
//  2. Load the order under a row lock, serializing concurrent actions
//  3. Aggregate state transition (StaleState on any mismatch)
//  4. Stock ledger side effects, entries locked in product-id order
//  5. Atomic persist of order and ledger
//
// When any step fails the transaction rolls back and nothing is observable.
// A concurrent repeat of an already-applied action therefore finds the order
// past its expected source status and fails with StaleState without touching
// stock.
type ExecuteOrderActionCommandHandler struct {
	uowFactory  UoWFactory
	policy      services.TransitionPolicy
	publisher   EventPublisher
	invalidator SnapshotInvalidator
	logger      *slog.Logger
}

// NewExecuteOrderActionCommandHandler creates the workflow engine handler.
func NewExecuteOrderActionCommandHandler(
	uowFactory UoWFactory,
	policy services.TransitionPolicy,
	publisher EventPublisher,
	invalidator SnapshotInvalidator,
	logger *slog.Logger,
) ExecuteOrderActionCommandHandler {
	return ExecuteOrderActionCommandHandler{
		uowFactory:  uowFactory,
		policy:      policy,
		publisher:   publisher,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Handle applies the requested action and returns the order's new status.
func (h *ExecuteOrderActionCommandHandler) Handle(
	ctx context.Context,
	cmd ExecuteOrderActionCommand,
) (OrderActionResponse, error) {
	if err := cmd.Validate(); err != nil {
		return OrderActionResponse{}, err
	}

	if err := h.policy.Authorize(cmd.Action(), cmd.ActorRole()); err != nil {
		return OrderActionResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderActionResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return OrderActionResponse{}, err
	}

	if err = h.applyAction(ctx, uow, aggregate, cmd); err != nil {
		return OrderActionResponse{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return OrderActionResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderActionResponse{}, err
	}

	h.announce(ctx, aggregate, cmd.Action())

	return OrderActionResponse{OrderID: aggregate.ID(), Status: aggregate.Status()}, nil
}

// applyAction runs the aggregate transition first, then the stock ledger
// side effects the action demands. Both happen inside the caller's
// transaction.
func (h *ExecuteOrderActionCommandHandler) applyAction(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	cmd ExecuteOrderActionCommand,
) error {
	switch cmd.Action() {
	case order.ActionApprove:
		if err := aggregate.Approve(cmd.ActorID()); err != nil {
			return err
		}
		return h.reserveStock(ctx, uow.InventoryRepository(), aggregate)

	case order.ActionReject:
		return aggregate.Reject()

	case order.ActionSendToPreparation:
		return aggregate.SendToPreparation()

	case order.ActionMarkReady:
		return aggregate.MarkReady(cmd.Carrier(), cmd.Locations())

	case order.ActionConfirmDelivery:
		if err := aggregate.ConfirmDelivery(); err != nil {
			return err
		}
		return h.commitStock(ctx, uow.InventoryRepository(), aggregate)

	case order.ActionCancel:
		if cmd.ActorRole() == order.RoleCustomer && !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
			return ErrNotOrderOwner
		}
		hadReservation := aggregate.HasReservedStock()
		if err := aggregate.Cancel(); err != nil {
			return err
		}
		if hadReservation {
			return h.releaseStock(ctx, uow.InventoryRepository(), aggregate)
		}
		return nil

	default:
		// unreachable, command validation rejects unknown actions
		return fmt.Errorf("unsupported action %q", cmd.Action())
	}
}

// reserveStock takes the reservation for every line item, locking ledger
// entries in ascending product-id order so concurrent approvals of
// overlapping carts cannot deadlock. Any shortage aborts the whole
// reservation; the surrounding rollback undoes the partial work.
func (h *ExecuteOrderActionCommandHandler) reserveStock(
	ctx context.Context,
	inventoryRepo ports.InventoryRepository,
	aggregate *order.Order,
) error {
	for _, item := range sortedByProduct(aggregate.LineItems()) {
		entry, err := inventoryRepo.Get(ctx, item.ProductID(), aggregate.BranchID())
		if err != nil {
			return err
		}
		if err = entry.Reserve(item.Quantity()); err != nil {
			return err
		}
		if err = inventoryRepo.Update(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExecuteOrderActionCommandHandler) releaseStock(
	ctx context.Context,
	inventoryRepo ports.InventoryRepository,
	aggregate *order.Order,
) error {
	for _, item := range sortedByProduct(aggregate.LineItems()) {
		entry, err := inventoryRepo.Get(ctx, item.ProductID(), aggregate.BranchID())
		if err != nil {
			return err
		}
		entry.Release(item.Quantity())
		if err = inventoryRepo.Update(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExecuteOrderActionCommandHandler) commitStock(
	ctx context.Context,
	inventoryRepo ports.InventoryRepository,
	aggregate *order.Order,
) error {
	for _, item := range sortedByProduct(aggregate.LineItems()) {
		entry, err := inventoryRepo.Get(ctx, item.ProductID(), aggregate.BranchID())
		if err != nil {
			return err
		}
		if err = entry.Commit(item.Quantity()); err != nil {
			return err
		}
		if err = inventoryRepo.Update(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExecuteOrderActionCommandHandler) announce(ctx context.Context, aggregate *order.Order, action order.Action) {
	event := OrderChangedEvent{
		OrderID:    aggregate.ID(),
		Status:     aggregate.Status().String(),
		Action:     action.String(),
		OccurredAt: time.Now().UTC(),
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish order changed event",
			"orderId", aggregate.ID().String(), "action", action.String(), "error", err)
	}
	if err := h.invalidator.Invalidate(ctx, aggregate.ID()); err != nil {
		h.logger.Warn("failed to invalidate order snapshot",
			"orderId", aggregate.ID().String(), "error", err)
	}
}

// sortedByProduct fixes the ledger lock order for multi-item carts.
func sortedByProduct(items []order.LineItem) []order.LineItem {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID().String() < items[j].ProductID().String()
	})
	return items
}
