package order

import (
	"errors"
	"fmt"

	"ferremas/internal/pkg/errs"
)

// ErrStaleState indicates that an action was attempted against an order
// whose current status does not match the action's expected source status.
// Callers should refetch the order and re-evaluate; the order is never
// silently overwritten.
var ErrStaleState = errors.New("order status does not allow this action")

// StaleTransitionError carries the action that was attempted and the status
// the order was actually in. It unwraps to ErrStaleState for classification.
type StaleTransitionError struct {
	Action  Action
	Current Status
}

// NewStaleTransitionError creates a StaleTransitionError for the given
// action/status pair.
func NewStaleTransitionError(action Action, current Status) *StaleTransitionError {
	return &StaleTransitionError{Action: action, Current: current}
}

func (e *StaleTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order in status %s", ErrStaleState, e.Action, e.Current)
}

func (e *StaleTransitionError) Unwrap() error {
	return ErrStaleState
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the approval workflow and can never be double-fulfilled or stuck.
//
// State transitions:
//
//	Pending ──> Approved ──> InPreparation ──> Ready ──> Completed
//	   │            │
//	   ├──> Rejected│
//	   └────────────┴──> Cancelled
//
// Rejected, Cancelled and Completed are terminal. Orders in terminal states
// are retained for audit and accept no further transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status after checkout. The order waits
	// for a sales review; no stock has been reserved yet.
	StatusPending

	// StatusApproved indicates a sales actor accepted the order and stock
	// has been reserved for every line item.
	StatusApproved

	// StatusInPreparation indicates the warehouse is picking and packing
	// the order. A fulfillment record exists from this point on.
	StatusInPreparation

	// StatusReady indicates the order is packed and waiting for customer
	// pickup or carrier dispatch.
	StatusReady

	// StatusCompleted indicates the order was handed over and the reserved
	// stock was deducted permanently. Terminal.
	StatusCompleted

	// StatusRejected indicates a sales actor declined the order before any
	// stock movement. Terminal.
	StatusRejected

	// StatusCancelled indicates the order was withdrawn before packing;
	// any reservation has been released. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:       "Unknown",
		StatusPending:       "Pending",
		StatusApproved:      "Approved",
		StatusInPreparation: "InPreparation",
		StatusReady:         "ReadyForPickupOrDispatch",
		StatusCompleted:     "Completed",
		StatusRejected:      "Rejected",
		StatusCancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:       "Pending",
		StatusApproved:      "Approved",
		StatusInPreparation: "InPreparation",
		StatusReady:         "ReadyForPickupOrDispatch",
		StatusCompleted:     "Completed",
		StatusRejected:      "Rejected",
		StatusCancelled:     "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle
// states. StatusUnknown and out-of-range values are invalid. Used when
// reconstructing orders from persistence or parsing external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation.
// Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, fmt.Errorf("%q is not a valid order status", s)
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// Approve transitions Pending -> Approved.
// Any other source status fails with a StaleTransitionError.
func (s Status) Approve() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, NewStaleTransitionError(ActionApprove, s)
	}
	return StatusApproved, nil
}

// Reject transitions Pending -> Rejected.
// Any other source status fails with a StaleTransitionError.
func (s Status) Reject() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, NewStaleTransitionError(ActionReject, s)
	}
	return StatusRejected, nil
}

// SendToPreparation transitions Approved -> InPreparation.
// Any other source status fails with a StaleTransitionError.
func (s Status) SendToPreparation() (Status, error) {
	if s != StatusApproved {
		return StatusUnknown, NewStaleTransitionError(ActionSendToPreparation, s)
	}
	return StatusInPreparation, nil
}

// MarkReady transitions InPreparation -> Ready.
// Any other source status fails with a StaleTransitionError.
func (s Status) MarkReady() (Status, error) {
	if s != StatusInPreparation {
		return StatusUnknown, NewStaleTransitionError(ActionMarkReady, s)
	}
	return StatusReady, nil
}

// Complete transitions Ready -> Completed.
// Any other source status fails with a StaleTransitionError.
func (s Status) Complete() (Status, error) {
	if s != StatusReady {
		return StatusUnknown, NewStaleTransitionError(ActionConfirmDelivery, s)
	}
	return StatusCompleted, nil
}

// Cancel transitions Pending or Approved -> Cancelled. Cancellation is not
// possible once the warehouse has started packing, nor from terminal states.
func (s Status) Cancel() (Status, error) {
	if s != StatusPending && s != StatusApproved {
		return StatusUnknown, NewStaleTransitionError(ActionCancel, s)
	}
	return StatusCancelled, nil
}
