package order

import "fmt"

// Action is a named workflow transition. Actions form the closed set of
// mutations an order accepts; no component sets status directly.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionApprove accepts a pending order and reserves its stock.
	ActionApprove

	// ActionReject declines a pending order.
	ActionReject

	// ActionSendToPreparation forwards an approved order to the warehouse.
	ActionSendToPreparation

	// ActionMarkReady marks a packed order as ready for handoff.
	ActionMarkReady

	// ActionConfirmDelivery records the handoff and commits the stock.
	ActionConfirmDelivery

	// ActionCancel withdraws an order before packing starts.
	ActionCancel
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:           "unknown",
		ActionApprove:           "approve",
		ActionReject:            "reject",
		ActionSendToPreparation: "sendToPreparation",
		ActionMarkReady:         "markReady",
		ActionConfirmDelivery:   "confirmDelivery",
		ActionCancel:            "cancel",
	}
}

// Validate checks if the Action value is one of the defined actions.
func (a Action) Validate() error {
	if a <= ActionUnknown || a > ActionCancel {
		return fmt.Errorf("%d is not a valid action", a)
	}
	return nil
}

// String returns the wire name of the action, e.g. "sendToPreparation".
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ActionFromString parses an action from its wire name.
func ActionFromString(s string) (Action, error) {
	for action, name := range getActionStrings() {
		if action != ActionUnknown && name == s {
			return action, nil
		}
	}
	return ActionUnknown, fmt.Errorf("%q is not a valid action", s)
}

// Role identifies the kind of actor requesting a transition. Authentication
// is an external concern; the workflow only needs the resolved role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the order's owner. Customers may cancel their own
	// orders before packing starts.
	RoleCustomer

	// RoleSales reviews pending orders and moves approved ones toward the
	// warehouse.
	RoleSales

	// RoleWarehouse prepares and packs approved orders.
	RoleWarehouse

	// RoleFinance confirms bank-transfer payments and records deliveries.
	RoleFinance
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "unknown",
		RoleCustomer:  "customer",
		RoleSales:     "sales",
		RoleWarehouse: "warehouse",
		RoleFinance:   "finance",
	}
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleFinance {
		return fmt.Errorf("%d is not a valid role", r)
	}
	return nil
}

// String returns the wire name of the role, e.g. "warehouse".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a role from its wire name.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%q is not a valid role", s)
}
