package http

import (
	"net/http"
	"testing"

	"ferremas/internal/core/application/usecases/commands"
	"ferremas/internal/core/domain/model/inventory"
	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/core/domain/services"
	"ferremas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "unknown order maps to 404",
			err:  errs.NewObjectNotFoundError("orderId", "some-id"),
			want: http.StatusNotFound,
		},
		{
			name: "role gate maps to 403",
			err:  services.NewUnauthorizedActionError(order.ActionApprove, order.RoleWarehouse),
			want: http.StatusForbidden,
		},
		{
			name: "ownership gate maps to 403",
			err:  commands.ErrNotOrderOwner,
			want: http.StatusForbidden,
		},
		{
			name: "stale transition maps to 409",
			err:  order.NewStaleTransitionError(order.ActionApprove, order.StatusApproved),
			want: http.StatusConflict,
		},
		{
			name: "insufficient stock maps to 409",
			err:  inventory.NewInsufficientStockError(kernel.NewUUID(), 5, 2),
			want: http.StatusConflict,
		},
		{
			name: "unconfirmed payment maps to 409",
			err:  order.ErrPaymentNotConfirmed,
			want: http.StatusConflict,
		},
		{
			name: "already resolved payment maps to 409",
			err:  order.ErrPaymentAlreadyResolved,
			want: http.StatusConflict,
		},
		{
			name: "missing carrier maps to 409",
			err:  order.ErrMissingCarrier,
			want: http.StatusConflict,
		},
		{
			name: "empty cart maps to 400",
			err:  order.ErrEmptyCart,
			want: http.StatusBadRequest,
		},
		{
			name: "missing proof maps to 400",
			err:  order.ErrMissingProof,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid value maps to 400",
			err:  errs.NewValueIsInvalidError("action"),
			want: http.StatusBadRequest,
		},
		{
			name: "anything else maps to 500",
			err:  assert.AnError,
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusCodeFor(tt.err))
		})
	}
}
