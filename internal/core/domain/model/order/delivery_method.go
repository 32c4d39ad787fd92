package order

import (
	"fmt"

	"ferremas/internal/core/domain/model/kernel"
)

// Shipping policy: store pickup is always free, home delivery is free above
// a subtotal threshold and a flat fee below it.
var (
	freeShippingOver = kernel.MustNewMoneyFromInt(50000)
	flatShippingFee  = kernel.MustNewMoneyFromInt(5990)
)

// DeliveryMethod selects how the customer receives the order.
type DeliveryMethod int

const (
	// DeliveryMethodUnknown represents an invalid or undefined method.
	DeliveryMethodUnknown DeliveryMethod = iota

	// Pickup means the customer collects the order at the branch.
	Pickup

	// Delivery means the order is dispatched to a shipping address.
	// Orders with this method require a non-empty address and a carrier
	// before completion.
	Delivery
)

func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		DeliveryMethodUnknown: "Unknown",
		Pickup:                "Pickup",
		Delivery:              "Delivery",
	}
}

// Validate checks if the DeliveryMethod is one of the defined methods.
func (m DeliveryMethod) Validate() error {
	if m != Pickup && m != Delivery {
		return fmt.Errorf("%d is not a valid delivery method", m)
	}
	return nil
}

// String returns the name of the delivery method.
func (m DeliveryMethod) String() string {
	if str, ok := getDeliveryMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// DeliveryMethodFromString parses a delivery method from its name.
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	for method, name := range getDeliveryMethodStrings() {
		if method != DeliveryMethodUnknown && name == s {
			return method, nil
		}
	}
	return DeliveryMethodUnknown, fmt.Errorf("%q is not a valid delivery method", s)
}

// ShippingFee returns the fee the method adds on top of the given subtotal.
// Pickup is free; Delivery is free above the threshold, flat fee otherwise.
func (m DeliveryMethod) ShippingFee(subtotal kernel.Money) kernel.Money {
	if m != Delivery {
		return kernel.ZeroMoney()
	}
	if subtotal.GreaterThan(freeShippingOver) {
		return kernel.ZeroMoney()
	}
	return flatShippingFee
}
