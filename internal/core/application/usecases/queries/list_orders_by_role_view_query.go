package queries

import (
	"errors"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/pkg/errs"
	"ferremas/internal/pkg/guard"
)

var ErrListOrdersByRoleViewQueryIsNotConstructed = errors.New(
	"ListOrdersByRoleViewQuery must be created via NewListOrdersByRoleViewQuery constructor",
)

// ListOrdersByRoleViewQuery retrieves the work queue of one actor role.
// Each role sees the slice of the lifecycle it acts on; customers see only
// their own orders. An optional status filter narrows the view further.
type ListOrdersByRoleViewQuery struct {
	role         order.Role
	actorID      kernel.UUID
	statusFilter *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersByRoleViewQuery creates a role work-queue query. The actor id
// scopes customer views to their own orders; other roles ignore it.
func NewListOrdersByRoleViewQuery(
	role order.Role,
	actorID kernel.UUID,
	statusFilter *order.Status,
) (ListOrdersByRoleViewQuery, error) {
	if err := role.Validate(); err != nil {
		return ListOrdersByRoleViewQuery{}, errs.NewValueIsInvalidErrorWithCause("role is invalid", err)
	}
	if err := actorID.Validate(); err != nil {
		return ListOrdersByRoleViewQuery{}, err
	}
	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return ListOrdersByRoleViewQuery{}, err
		}
	}

	return ListOrdersByRoleViewQuery{
		role:         role,
		actorID:      actorID,
		statusFilter: statusFilter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersByRoleViewQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByRoleViewQueryIsNotConstructed)
}

// Role returns the requesting role.
func (q ListOrdersByRoleViewQuery) Role() order.Role {
	return q.role
}

// ActorID returns the requesting actor.
func (q ListOrdersByRoleViewQuery) ActorID() kernel.UUID {
	return q.actorID
}

// StatusFilter returns the optional status narrowing, nil for the role's
// full working set.
func (q ListOrdersByRoleViewQuery) StatusFilter() *order.Status {
	return q.statusFilter
}
