package services

import (
	"errors"
	"fmt"

	"ferremas/internal/core/domain/model/order"
)

// ErrUnauthorized is returned when an actor's role is not allowed to request
// a workflow action. The order is never loaded or modified in that case.
var ErrUnauthorized = errors.New("role is not allowed to perform this action")

// UnauthorizedActionError carries the action and the role that requested it.
// It unwraps to ErrUnauthorized for classification.
type UnauthorizedActionError struct {
	Action order.Action
	Role   order.Role
}

// NewUnauthorizedActionError creates an UnauthorizedActionError for the
// given action/role pair.
func NewUnauthorizedActionError(action order.Action, role order.Role) *UnauthorizedActionError {
	return &UnauthorizedActionError{Action: action, Role: role}
}

func (e *UnauthorizedActionError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s", ErrUnauthorized, e.Role, e.Action)
}

func (e *UnauthorizedActionError) Unwrap() error {
	return ErrUnauthorized
}

// TransitionPolicy is a domain service that decides which actor roles may
// request which workflow actions. Authorization is checked before the order
// is loaded, so an unauthorized request never observes or modifies state.
//
// Business rules:
//   - Sales reviews pending orders (approve, reject) and forwards approved
//     orders to the warehouse
//   - The warehouse marks orders ready
//   - Finance confirms handoff, which settles the stock deduction
//   - Cancellation is available to sales and to the customer; ownership of
//     the order by the requesting customer is enforced separately
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new TransitionPolicy instance.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

func getAllowedRoles() map[order.Action][]order.Role {
	return map[order.Action][]order.Role{
		order.ActionApprove:           {order.RoleSales},
		order.ActionReject:            {order.RoleSales},
		order.ActionSendToPreparation: {order.RoleSales},
		order.ActionMarkReady:         {order.RoleWarehouse},
		order.ActionConfirmDelivery:   {order.RoleFinance},
		order.ActionCancel:            {order.RoleSales, order.RoleCustomer},
	}
}

// IsAllowed reports whether the role may request the action.
func (p TransitionPolicy) IsAllowed(action order.Action, role order.Role) bool {
	for _, allowed := range getAllowedRoles()[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Authorize validates the pair and fails with an UnauthorizedActionError
// when the role may not request the action.
func (p TransitionPolicy) Authorize(action order.Action, role order.Role) error {
	if err := action.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	if !p.IsAllowed(action, role) {
		return NewUnauthorizedActionError(action, role)
	}
	return nil
}
