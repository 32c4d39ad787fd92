// Package order provides domain entities and business logic for the retail
// ordering workflow. It implements the Order aggregate root with lifecycle
// management, role-gated actions, payment confirmation, and fulfillment
// tracking.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items,
//     totals, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Payment: The payment record attached to every order
//   - Fulfillment: The warehouse record created when preparation starts
//   - Action, Role: The workflow action vocabulary and the actor roles that
//     request them
//
// Key business rules:
//   - Orders must have at least one line item and a valid customer and branch
//   - Order status follows a defined workflow:
//     Pending -> Approved -> InPreparation -> ReadyForPickupOrDispatch -> Completed
//     with Rejected and Cancelled as terminal exits
//   - Delivery orders require a shipping address and, before completion,
//     an assigned carrier
//   - Bank transfers require a payment proof and finance confirmation before
//     the order can complete; card payments confirm automatically
//   - Totals are always derived from line items plus the shipping fee policy
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
