package commands

import (
	"errors"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/pkg/errs"
	"ferremas/internal/pkg/guard"
)

var ErrExecuteOrderActionCommandIsNotConstructed = errors.New(
	"ExecuteOrderActionCommand must be created via NewExecuteOrderActionCommand constructor",
)

// ExecuteOrderActionCommand represents one actor's request to advance an
// order through the workflow: who is asking (actor id and role), which order,
// and which action. markReady requests may additionally carry a carrier name
// and per-product warehouse locations.
type ExecuteOrderActionCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	action    order.Action
	actorID   kernel.UUID
	actorRole order.Role
	carrier   *string
	locations map[string]string

	guard guard.ConstructorGuard
}

// NewExecuteOrderActionCommand creates a workflow action request.
// Validates identifiers and enum values; role authorization and state checks
// happen in the handler against the live order.
func NewExecuteOrderActionCommand(
	orderID kernel.UUID,
	action order.Action,
	actorID kernel.UUID,
	actorRole order.Role,
) (ExecuteOrderActionCommand, error) {
	cmd := ExecuteOrderActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return ExecuteOrderActionCommand{}, err
	}

	return cmd, nil
}

// WithHandoffDetails returns a copy of the command carrying the carrier and
// warehouse locations a markReady request may attach.
func (c ExecuteOrderActionCommand) WithHandoffDetails(carrier *string, locations map[string]string) ExecuteOrderActionCommand {
	c.carrier = carrier
	c.locations = locations
	return c
}

// Validate ensures the command was created through the constructor.
func (c ExecuteOrderActionCommand) Validate() error {
	return c.guard.Validate(ErrExecuteOrderActionCommandIsNotConstructed)
}

// OrderID returns the order the action targets.
func (c ExecuteOrderActionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested workflow action.
func (c ExecuteOrderActionCommand) Action() order.Action {
	return c.action
}

// ActorID returns the identity of the requesting actor.
func (c ExecuteOrderActionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the actor acts under.
func (c ExecuteOrderActionCommand) ActorRole() order.Role {
	return c.actorRole
}

// Carrier returns the carrier attached to a markReady request, nil otherwise.
func (c ExecuteOrderActionCommand) Carrier() *string {
	return c.carrier
}

// Locations returns the productID -> warehouse location tags attached to a
// markReady request.
func (c ExecuteOrderActionCommand) Locations() map[string]string {
	return c.locations
}

func (c *ExecuteOrderActionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ExecuteOrderActionCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", err)
	}
	c.action = action
	return nil
}

func (c *ExecuteOrderActionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *ExecuteOrderActionCommand) setActorRole(actorRole order.Role) error {
	if err := actorRole.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("actorRole is invalid", err)
	}
	c.actorRole = actorRole
	return nil
}
