package order_test

import (
	"testing"
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("should confirm card payments at creation", func(t *testing.T) {
		for _, method := range []order.PaymentMethod{order.CreditCard, order.DebitCard} {
			p, err := order.NewPayment(method, "")

			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.Equal(t, order.PaymentConfirmed, p.State())
			assert.True(t, p.IsConfirmed())
			assert.False(t, p.RequiresConfirmation())
			assert.Nil(t, p.ConfirmedBy())
			assert.Nil(t, p.ConfirmedAt())
		}
	})

	t.Run("should leave bank transfer awaiting with proof", func(t *testing.T) {
		p, err := order.NewPayment(order.BankTransfer, "TRX-42")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentAwaiting, p.State())
		assert.True(t, p.RequiresConfirmation())
		assert.False(t, p.IsConfirmed())
		assert.Equal(t, "TRX-42", p.ProofReference())
	})

	t.Run("should fail bank transfer without proof", func(t *testing.T) {
		p, err := order.NewPayment(order.BankTransfer, "")

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, order.ErrMissingProof)
	})

	t.Run("should fail with unknown method", func(t *testing.T) {
		p, err := order.NewPayment(order.PaymentMethodUnknown, "")

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "method is invalid")
	})
}

func TestPayment_Confirm(t *testing.T) {
	finance := kernel.NewUUID()
	now := time.Now().UTC()

	t.Run("should confirm awaiting transfer", func(t *testing.T) {
		p, err := order.NewPayment(order.BankTransfer, "TRX-42")
		require.NoError(t, err)

		require.NoError(t, p.Confirm(finance, now))

		assert.True(t, p.IsConfirmed())
		require.NotNil(t, p.ConfirmedBy())
		assert.True(t, p.ConfirmedBy().IsEqual(finance))
		require.NotNil(t, p.ConfirmedAt())
		assert.Equal(t, now, *p.ConfirmedAt())
	})

	t.Run("should fail on already confirmed transfer", func(t *testing.T) {
		p, err := order.NewPayment(order.BankTransfer, "TRX-42")
		require.NoError(t, err)
		require.NoError(t, p.Confirm(finance, now))

		err = p.Confirm(kernel.NewUUID(), now)

		assert.ErrorIs(t, err, order.ErrPaymentAlreadyResolved)
	})

	t.Run("should fail on auto-confirmed card payment", func(t *testing.T) {
		p, err := order.NewPayment(order.CreditCard, "")
		require.NoError(t, err)

		err = p.Confirm(finance, now)

		assert.ErrorIs(t, err, order.ErrPaymentAlreadyResolved)
	})

	t.Run("should fail with invalid actor", func(t *testing.T) {
		p, err := order.NewPayment(order.BankTransfer, "TRX-42")
		require.NoError(t, err)

		var invalidActor kernel.UUID
		err = p.Confirm(invalidActor, now)

		require.Error(t, err)
		assert.Equal(t, order.PaymentAwaiting, p.State())
	})
}

func TestPayment_Reject(t *testing.T) {
	finance := kernel.NewUUID()
	now := time.Now().UTC()

	t.Run("should reject awaiting transfer", func(t *testing.T) {
		p, err := order.NewPayment(order.BankTransfer, "TRX-42")
		require.NoError(t, err)

		require.NoError(t, p.Reject(finance, now))

		assert.Equal(t, order.PaymentRejected, p.State())
		assert.False(t, p.IsConfirmed())
	})

	t.Run("rejected transfer cannot be confirmed afterwards", func(t *testing.T) {
		p, err := order.NewPayment(order.BankTransfer, "TRX-42")
		require.NoError(t, err)
		require.NoError(t, p.Reject(finance, now))

		err = p.Confirm(finance, now)

		assert.ErrorIs(t, err, order.ErrPaymentAlreadyResolved)
	})
}

func TestPaymentMethodFromString(t *testing.T) {
	testCases := []struct {
		name     string
		expected order.PaymentMethod
	}{
		{"CreditCard", order.CreditCard},
		{"DebitCard", order.DebitCard},
		{"BankTransfer", order.BankTransfer},
	}

	for _, tc := range testCases {
		method, err := order.PaymentMethodFromString(tc.name)

		require.NoError(t, err)
		assert.Equal(t, tc.expected, method)
	}

	_, err := order.PaymentMethodFromString("cash")
	require.Error(t, err)
}
