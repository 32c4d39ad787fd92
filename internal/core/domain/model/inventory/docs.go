// Package inventory provides the per-branch stock ledger that backs the
// ordering workflow.
//
// Each Entry tracks one product at one branch and splits its quantity into
// total and reserved stock. The workflow reserves stock when an order is
// approved, releases it when the order is cancelled, and commits the
// deduction when the order completes. Reservations can never exceed the
// stock on the shelf, which is what prevents overselling.
package inventory
