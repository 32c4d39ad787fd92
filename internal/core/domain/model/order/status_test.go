package order_test

import (
	"fmt"
	"testing"

	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.StatusUnknown))
		assert.Equal(t, 1, int(order.StatusPending))
		assert.Equal(t, 2, int(order.StatusApproved))
		assert.Equal(t, 3, int(order.StatusInPreparation))
		assert.Equal(t, 4, int(order.StatusReady))
		assert.Equal(t, 5, int(order.StatusCompleted))
		assert.Equal(t, 6, int(order.StatusRejected))
		assert.Equal(t, 7, int(order.StatusCancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.StatusPending,
			order.StatusApproved,
			order.StatusInPreparation,
			order.StatusReady,
			order.StatusCompleted,
			order.StatusRejected,
			order.StatusCancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				err := status.Validate()
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject StatusUnknown", func(t *testing.T) {
		err := order.StatusUnknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Status(-1),
			order.Status(8),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct string for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.StatusPending, "Pending"},
			{order.StatusApproved, "Approved"},
			{order.StatusInPreparation, "InPreparation"},
			{order.StatusReady, "ReadyForPickupOrDispatch"},
			{order.StatusCompleted, "Completed"},
			{order.StatusRejected, "Rejected"},
			{order.StatusCancelled, "Cancelled"},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should return %s for %d", tc.expected, int(tc.status)), func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.status.String())
			})
		}
	})

	t.Run("should return Unknown for invalid statuses", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.StatusUnknown,
			order.Status(-1),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			assert.Equal(t, "Unknown", status.String())
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse valid status names", func(t *testing.T) {
		testCases := []struct {
			name     string
			expected order.Status
		}{
			{"Pending", order.StatusPending},
			{"Approved", order.StatusApproved},
			{"InPreparation", order.StatusInPreparation},
			{"ReadyForPickupOrDispatch", order.StatusReady},
			{"Completed", order.StatusCompleted},
			{"Rejected", order.StatusRejected},
			{"Cancelled", order.StatusCancelled},
		}

		for _, tc := range testCases {
			status, err := order.StatusFromString(tc.name)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
		}
	})

	t.Run("should fail on unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "pending", "Unknown", "Shipped"} {
			status, err := order.StatusFromString(name)

			require.Error(t, err)
			assert.Equal(t, order.StatusUnknown, status)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := []order.Status{order.StatusCompleted, order.StatusRejected, order.StatusCancelled}
	for _, status := range terminal {
		assert.True(t, status.IsTerminal(), "%s should be terminal", status)
	}

	active := []order.Status{order.StatusPending, order.StatusApproved, order.StatusInPreparation, order.StatusReady}
	for _, status := range active {
		assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
	}
}

func TestStatus_Transitions(t *testing.T) {
	allStatuses := []order.Status{
		order.StatusPending,
		order.StatusApproved,
		order.StatusInPreparation,
		order.StatusReady,
		order.StatusCompleted,
		order.StatusRejected,
		order.StatusCancelled,
	}

	testCases := []struct {
		name       string
		transition func(order.Status) (order.Status, error)
		validFrom  map[order.Status]order.Status
	}{
		{
			name:       "Approve",
			transition: order.Status.Approve,
			validFrom:  map[order.Status]order.Status{order.StatusPending: order.StatusApproved},
		},
		{
			name:       "Reject",
			transition: order.Status.Reject,
			validFrom:  map[order.Status]order.Status{order.StatusPending: order.StatusRejected},
		},
		{
			name:       "SendToPreparation",
			transition: order.Status.SendToPreparation,
			validFrom:  map[order.Status]order.Status{order.StatusApproved: order.StatusInPreparation},
		},
		{
			name:       "MarkReady",
			transition: order.Status.MarkReady,
			validFrom:  map[order.Status]order.Status{order.StatusInPreparation: order.StatusReady},
		},
		{
			name:       "Complete",
			transition: order.Status.Complete,
			validFrom:  map[order.Status]order.Status{order.StatusReady: order.StatusCompleted},
		},
		{
			name:       "Cancel",
			transition: order.Status.Cancel,
			validFrom: map[order.Status]order.Status{
				order.StatusPending:  order.StatusCancelled,
				order.StatusApproved: order.StatusCancelled,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, from := range allStatuses {
				target, ok := tc.validFrom[from]

				newStatus, err := tc.transition(from)

				if ok {
					require.NoError(t, err, "%s from %s should succeed", tc.name, from)
					assert.Equal(t, target, newStatus)
				} else {
					require.Error(t, err, "%s from %s should fail", tc.name, from)
					assert.ErrorIs(t, err, order.ErrStaleState)
					assert.Equal(t, order.StatusUnknown, newStatus)

					var staleErr *order.StaleTransitionError
					require.ErrorAs(t, err, &staleErr)
					assert.Equal(t, from, staleErr.Current)
				}
			}
		})
	}
}

func TestStaleTransitionError(t *testing.T) {
	err := order.NewStaleTransitionError(order.ActionApprove, order.StatusCompleted)

	assert.ErrorIs(t, err, order.ErrStaleState)
	assert.Contains(t, err.Error(), "approve")
	assert.Contains(t, err.Error(), "Completed")
}
