package order_test

import (
	"testing"
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLineItem(t *testing.T, quantity int, unitPrice int64) order.LineItem {
	t.Helper()
	price, err := kernel.NewMoneyFromInt(unitPrice)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), quantity, price)
	require.NoError(t, err)
	return item
}

func newPickupOrder(t *testing.T, items ...order.LineItem) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		items,
		order.Pickup, "", "+56 9 1234 5678", "",
		order.CreditCard, "",
	)
	require.NoError(t, err)
	return o
}

func newDeliveryTransferOrder(t *testing.T, items ...order.LineItem) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		items,
		order.Delivery, "Av. Providencia 1234, Santiago", "", "ring twice",
		order.BankTransfer, "TRX-2024-0099",
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validCustomer := kernel.NewUUID()
	validBranch := kernel.NewUUID()

	t.Run("should create valid pickup order", func(t *testing.T) {
		item := mustLineItem(t, 2, 12990)

		o, err := order.NewOrder(
			validID, validCustomer, validBranch,
			[]order.LineItem{item},
			order.Pickup, "", "+56 9 1234 5678", "call on arrival",
			order.CreditCard, "",
		)

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.CustomerID().IsEqual(validCustomer))
		assert.True(t, o.BranchID().IsEqual(validBranch))
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.SalesRepID())
		assert.Nil(t, o.Fulfillment())
		assert.Equal(t, "+56 9 1234 5678", o.Phone())
		assert.Equal(t, "call on arrival", o.Notes())
		assert.False(t, o.CreatedAt().IsZero())
		assert.Equal(t, o.CreatedAt(), o.LastTransitionAt())
	})

	t.Run("should auto-confirm card payments", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 5000))

		assert.Equal(t, order.PaymentConfirmed, o.Payment().State())
		assert.False(t, o.Payment().RequiresConfirmation())
	})

	t.Run("should leave bank transfers awaiting confirmation", func(t *testing.T) {
		o := newDeliveryTransferOrder(t, mustLineItem(t, 1, 5000))

		assert.Equal(t, order.PaymentAwaiting, o.Payment().State())
		assert.True(t, o.Payment().RequiresConfirmation())
		assert.Equal(t, "TRX-2024-0099", o.Payment().ProofReference())
	})

	t.Run("should fail with empty cart", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, validCustomer, validBranch,
			nil,
			order.Pickup, "", "", "",
			order.CreditCard, "",
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrEmptyCart)
	})

	t.Run("should fail for delivery without address", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, validCustomer, validBranch,
			[]order.LineItem{mustLineItem(t, 1, 1000)},
			order.Delivery, "", "", "",
			order.CreditCard, "",
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrInvalidAddress)
	})

	t.Run("should fail for bank transfer without proof", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, validCustomer, validBranch,
			[]order.LineItem{mustLineItem(t, 1, 1000)},
			order.Pickup, "", "", "",
			order.BankTransfer, "",
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrMissingProof)
	})

	t.Run("should fail with invalid customer UUID", func(t *testing.T) {
		var invalidCustomer kernel.UUID

		o, err := order.NewOrder(
			validID, invalidCustomer, validBranch,
			[]order.LineItem{mustLineItem(t, 1, 1000)},
			order.Pickup, "", "", "",
			order.CreditCard, "",
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with unknown delivery method", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, validCustomer, validBranch,
			[]order.LineItem{mustLineItem(t, 1, 1000)},
			order.DeliveryMethodUnknown, "", "", "",
			order.CreditCard, "",
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "deliveryMethod is invalid")
	})
}

func TestOrder_Totals(t *testing.T) {
	t.Run("subtotal sums line item subtotals", func(t *testing.T) {
		o := newPickupOrder(t,
			mustLineItem(t, 2, 12990), // 25980
			mustLineItem(t, 1, 4500),  // 4500
		)

		expected := kernel.MustNewMoneyFromInt(30480)
		assert.True(t, o.Subtotal().IsEqual(expected))
	})

	t.Run("pickup orders never pay shipping", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))

		assert.True(t, o.ShippingFee().IsZero())
		assert.True(t, o.TotalAmount().IsEqual(o.Subtotal()))
	})

	t.Run("delivery below threshold pays flat fee", func(t *testing.T) {
		o := newDeliveryTransferOrder(t, mustLineItem(t, 2, 25000)) // 50000, not over

		assert.True(t, o.ShippingFee().IsEqual(kernel.MustNewMoneyFromInt(5990)))
		assert.True(t, o.TotalAmount().IsEqual(kernel.MustNewMoneyFromInt(55990)))
	})

	t.Run("delivery above threshold ships free", func(t *testing.T) {
		o := newDeliveryTransferOrder(t, mustLineItem(t, 1, 50001))

		assert.True(t, o.ShippingFee().IsZero())
		assert.True(t, o.TotalAmount().IsEqual(kernel.MustNewMoneyFromInt(50001)))
	})
}

func TestOrder_PickupLifecycle(t *testing.T) {
	o := newPickupOrder(t, mustLineItem(t, 3, 8990))
	salesRep := kernel.NewUUID()

	require.NoError(t, o.Approve(salesRep))
	assert.Equal(t, order.StatusApproved, o.Status())
	require.NotNil(t, o.SalesRepID())
	assert.True(t, o.SalesRepID().IsEqual(salesRep))
	assert.True(t, o.HasReservedStock())

	require.NoError(t, o.SendToPreparation())
	assert.Equal(t, order.StatusInPreparation, o.Status())
	require.NotNil(t, o.Fulfillment())
	assert.Equal(t, order.Preparing, o.Fulfillment().State())
	assert.Len(t, o.Fulfillment().Items(), 1)

	require.NoError(t, o.MarkReady(nil, map[string]string{
		o.LineItems()[0].ProductID().String(): "Pasillo A-3",
	}))
	assert.Equal(t, order.StatusReady, o.Status())
	assert.Equal(t, "Pasillo A-3", o.Fulfillment().Items()[0].WarehouseLocation)

	// card payment is already confirmed, pickup needs no carrier
	require.NoError(t, o.ConfirmDelivery())
	assert.Equal(t, order.StatusCompleted, o.Status())
	assert.Equal(t, order.Delivered, o.Fulfillment().State())
	assert.False(t, o.HasReservedStock())
	assert.True(t, o.Status().IsTerminal())
}

func TestOrder_DeliveryTransferLifecycle(t *testing.T) {
	o := newDeliveryTransferOrder(t, mustLineItem(t, 1, 39990))
	salesRep := kernel.NewUUID()
	finance := kernel.NewUUID()
	carrier := "Chilexpress"

	require.NoError(t, o.Approve(salesRep))
	require.NoError(t, o.SendToPreparation())

	t.Run("completion blocked until payment confirmed", func(t *testing.T) {
		require.NoError(t, o.MarkReady(&carrier, nil))

		err := o.ConfirmDelivery()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrPaymentNotConfirmed)
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("completes after finance confirms the transfer", func(t *testing.T) {
		require.NoError(t, o.ConfirmPayment(finance, time.Now().UTC()))
		require.NotNil(t, o.Payment().ConfirmedBy())
		assert.True(t, o.Payment().ConfirmedBy().IsEqual(finance))

		require.NoError(t, o.ConfirmDelivery())
		assert.Equal(t, order.StatusCompleted, o.Status())
	})
}

func TestOrder_ConfirmDelivery_MissingCarrier(t *testing.T) {
	o := newDeliveryTransferOrder(t, mustLineItem(t, 1, 1000))
	require.NoError(t, o.Approve(kernel.NewUUID()))
	require.NoError(t, o.ConfirmPayment(kernel.NewUUID(), time.Now().UTC()))
	require.NoError(t, o.SendToPreparation())
	require.NoError(t, o.MarkReady(nil, nil)) // ready without a carrier

	err := o.ConfirmDelivery()

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrMissingCarrier)
	assert.Equal(t, order.StatusReady, o.Status())
}

func TestOrder_Reject(t *testing.T) {
	t.Run("should reject pending order", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))

		require.NoError(t, o.Reject())
		assert.Equal(t, order.StatusRejected, o.Status())
		assert.Nil(t, o.SalesRepID())
	})

	t.Run("should fail after approval", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))
		require.NoError(t, o.Approve(kernel.NewUUID()))

		err := o.Reject()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrStaleState)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel pending order", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("should cancel approved order", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))
		require.NoError(t, o.Approve(kernel.NewUUID()))

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("should fail once preparation started", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))
		require.NoError(t, o.Approve(kernel.NewUUID()))
		require.NoError(t, o.SendToPreparation())

		err := o.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrStaleState)
		assert.Equal(t, order.StatusInPreparation, o.Status())
	})
}

func TestOrder_StaleTransitions(t *testing.T) {
	t.Run("second approve fails with stale state", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))
		require.NoError(t, o.Approve(kernel.NewUUID()))

		err := o.Approve(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrStaleState)

		var staleErr *order.StaleTransitionError
		require.ErrorAs(t, err, &staleErr)
		assert.Equal(t, order.StatusApproved, staleErr.Current)
	})

	t.Run("failed transition leaves order untouched", func(t *testing.T) {
		o := newPickupOrder(t, mustLineItem(t, 1, 1000))

		err := o.MarkReady(nil, nil)

		require.Error(t, err)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.Fulfillment())
	})
}

func TestOrder_LastTransitionAt(t *testing.T) {
	o := newPickupOrder(t, mustLineItem(t, 1, 1000))
	placedAt := o.LastTransitionAt()

	require.NoError(t, o.Approve(kernel.NewUUID()))

	assert.False(t, o.LastTransitionAt().Before(placedAt))
	assert.Equal(t, placedAt, o.CreatedAt())
}

func TestRestoreOrder(t *testing.T) {
	item := mustLineItem(t, 2, 12990)
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	salesRepID := kernel.NewUUID()
	branchID := kernel.NewUUID()
	createdAt := time.Now().UTC().Add(-time.Hour)
	transitionAt := time.Now().UTC().Add(-30 * time.Minute)

	t.Run("should restore order with mid-workflow state", func(t *testing.T) {
		payment, err := order.RestorePayment(order.BankTransfer, "TRX-1", order.PaymentAwaiting, nil, nil)
		require.NoError(t, err)
		fulfillment, err := order.RestoreFulfillment(
			[]order.FulfillmentItem{{ProductID: item.ProductID(), Quantity: 2, WarehouseLocation: "Pasillo B-1"}},
			order.Preparing, nil,
		)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			id, customerID, &salesRepID, branchID,
			[]order.LineItem{item},
			order.Delivery, "Calle Falsa 123", "", "",
			order.StatusInPreparation, payment, fulfillment,
			createdAt, transitionAt,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusInPreparation, o.Status())
		assert.True(t, o.SalesRepID().IsEqual(salesRepID))
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, transitionAt, o.LastTransitionAt())

		// restored orders continue the workflow
		carrier := "Starken"
		require.NoError(t, o.MarkReady(&carrier, nil))
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		payment, err := order.RestorePayment(order.CreditCard, "", order.PaymentConfirmed, nil, nil)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			id, customerID, nil, branchID,
			[]order.LineItem{item},
			order.Pickup, "", "", "",
			order.StatusUnknown, payment, nil,
			createdAt, transitionAt,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail for zero-value order", func(t *testing.T) {
		var o order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_LineItems_Copy(t *testing.T) {
	o := newPickupOrder(t, mustLineItem(t, 1, 1000), mustLineItem(t, 2, 2000))

	items := o.LineItems()
	items[0] = order.LineItem{}

	assert.NoError(t, o.LineItems()[0].Validate())
}
