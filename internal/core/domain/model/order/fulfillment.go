package order

import (
	"errors"
	"fmt"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/pkg/guard"
)

var (
	// ErrFulfillmentIsNotConstructed is returned when a Fulfillment was not
	// created through NewFulfillment or RestoreFulfillment.
	ErrFulfillmentIsNotConstructed = errors.New("Fulfillment must be created via NewFulfillment constructor")

	// ErrFulfillmentNotStarted indicates a warehouse action was attempted
	// before the order entered preparation.
	ErrFulfillmentNotStarted = errors.New("order has no fulfillment record yet")
)

// FulfillmentState is the warehouse-side state of an order.
//
// State transitions:
//
//	Preparing ──> ReadyForHandoff ──> Delivered
type FulfillmentState int

const (
	// FulfillmentStateUnknown represents an invalid or undefined state.
	FulfillmentStateUnknown FulfillmentState = iota

	// Preparing means the warehouse is picking and packing the items.
	Preparing

	// ReadyForHandoff means the package waits for pickup or dispatch.
	ReadyForHandoff

	// Delivered means the package left the store. Terminal.
	Delivered
)

func getFulfillmentStateStrings() map[FulfillmentState]string {
	return map[FulfillmentState]string{
		FulfillmentStateUnknown: "Unknown",
		Preparing:               "Preparing",
		ReadyForHandoff:         "ReadyForHandoff",
		Delivered:               "Delivered",
	}
}

// Validate checks if the FulfillmentState is one of the defined states.
func (s FulfillmentState) Validate() error {
	if s != Preparing && s != ReadyForHandoff && s != Delivered {
		return fmt.Errorf("%d is not a valid fulfillment state", s)
	}
	return nil
}

// String returns the name of the fulfillment state.
func (s FulfillmentState) String() string {
	if str, ok := getFulfillmentStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// FulfillmentStateFromString parses a fulfillment state from its name.
func FulfillmentStateFromString(s string) (FulfillmentState, error) {
	for state, name := range getFulfillmentStateStrings() {
		if state != FulfillmentStateUnknown && name == s {
			return state, nil
		}
	}
	return FulfillmentStateUnknown, fmt.Errorf("%q is not a valid fulfillment state", s)
}

// FulfillmentItem mirrors one order line item on the warehouse side and
// carries an informational shelf location tag ("Pasillo A-3" style).
type FulfillmentItem struct {
	ProductID         kernel.UUID
	Quantity          int
	WarehouseLocation string
}

// Fulfillment tracks the warehouse preparation of an order. It is created
// when the order enters preparation and mutated only through the order's
// workflow transitions.
type Fulfillment struct {
	items   []FulfillmentItem
	state   FulfillmentState
	carrier *string

	guard guard.ConstructorGuard
}

// NewFulfillment creates the fulfillment record for an order entering
// preparation, with one item per order line item and no location tags yet.
func NewFulfillment(lineItems []LineItem) (*Fulfillment, error) {
	if len(lineItems) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]FulfillmentItem, 0, len(lineItems))
	for _, li := range lineItems {
		items = append(items, FulfillmentItem{
			ProductID: li.ProductID(),
			Quantity:  li.Quantity(),
		})
	}

	return &Fulfillment{
		items: items,
		state: Preparing,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreFulfillment reconstructs a fulfillment record from persistence.
func RestoreFulfillment(items []FulfillmentItem, state FulfillmentState, carrier *string) (*Fulfillment, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	return &Fulfillment{
		items:   items,
		state:   state,
		carrier: carrier,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Fulfillment was created through a constructor.
func (f *Fulfillment) Validate() error {
	if f == nil {
		return ErrFulfillmentIsNotConstructed
	}
	return f.guard.Validate(ErrFulfillmentIsNotConstructed)
}

// Items returns the warehouse view of the order's line items.
func (f *Fulfillment) Items() []FulfillmentItem {
	items := make([]FulfillmentItem, len(f.items))
	copy(items, f.items)
	return items
}

// State returns the current fulfillment state.
func (f *Fulfillment) State() FulfillmentState {
	return f.state
}

// Carrier returns the carrier assigned for dispatch, nil if none yet.
func (f *Fulfillment) Carrier() *string {
	return f.carrier
}

// HasCarrier reports whether a non-empty carrier is assigned.
func (f *Fulfillment) HasCarrier() bool {
	return f.carrier != nil && *f.carrier != ""
}

// MarkReady transitions Preparing -> ReadyForHandoff. The warehouse actor
// may attach a carrier and per-product shelf locations at the same time.
func (f *Fulfillment) MarkReady(carrier *string, locations map[string]string) error {
	if f.state != Preparing {
		return fmt.Errorf("%w: fulfillment is %s", ErrStaleState, f.state)
	}

	if carrier != nil && *carrier != "" {
		f.carrier = carrier
	}
	for i := range f.items {
		if loc, ok := locations[f.items[i].ProductID.String()]; ok {
			f.items[i].WarehouseLocation = loc
		}
	}

	f.state = ReadyForHandoff
	return nil
}

// MarkDelivered transitions ReadyForHandoff -> Delivered.
func (f *Fulfillment) MarkDelivered() error {
	if f.state != ReadyForHandoff {
		return fmt.Errorf("%w: fulfillment is %s", ErrStaleState, f.state)
	}

	f.state = Delivered
	return nil
}
