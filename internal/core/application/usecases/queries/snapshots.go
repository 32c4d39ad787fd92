// Package queries contains read operations for the ordering workflow.
// Implements the Query side of the CQRS architecture: handlers read
// denormalized rows straight from the database (optionally through the
// snapshot cache) and never touch domain aggregates.
package queries

import (
	"context"
	"time"

	"ferremas/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// OrderItemSnapshot is one line of an order as seen by readers.
type OrderItemSnapshot struct {
	ProductID         string          `json:"productId"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	WarehouseLocation string          `json:"warehouseLocation,omitempty"`
}

// PaymentSnapshot is the read view of an order's payment record.
type PaymentSnapshot struct {
	Method         string     `json:"method"`
	State          string     `json:"state"`
	ProofReference string     `json:"proofReference,omitempty"`
	ConfirmedBy    *string    `json:"confirmedBy,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmedAt,omitempty"`
}

// FulfillmentSnapshot is the read view of an order's fulfillment record.
// Nil on orders that have not entered preparation.
type FulfillmentSnapshot struct {
	State   string  `json:"state"`
	Carrier *string `json:"carrier,omitempty"`
}

// OrderSnapshot is the full read view of one order: lifecycle state, the
// captured items, recomputed totals, payment and fulfillment. This is what
// the GetOrder query returns and what the snapshot cache stores.
type OrderSnapshot struct {
	ID               string               `json:"id"`
	CustomerID       string               `json:"customerId"`
	SalesRepID       *string              `json:"salesRepId,omitempty"`
	BranchID         string               `json:"branchId"`
	Status           string               `json:"status"`
	DeliveryMethod   string               `json:"deliveryMethod"`
	ShippingAddress  string               `json:"shippingAddress,omitempty"`
	Phone            string               `json:"phone,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	Items            []OrderItemSnapshot  `json:"items"`
	Subtotal         decimal.Decimal      `json:"subtotal"`
	ShippingFee      decimal.Decimal      `json:"shippingFee"`
	TotalAmount      decimal.Decimal      `json:"totalAmount"`
	Currency         string               `json:"currency"`
	Payment          PaymentSnapshot      `json:"payment"`
	Fulfillment      *FulfillmentSnapshot `json:"fulfillment,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastTransitionAt time.Time            `json:"lastTransitionAt"`
}

// OrderSummary is the condensed row returned by the role work queues.
type OrderSummary struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customerId"`
	Status         string          `json:"status"`
	DeliveryMethod string          `json:"deliveryMethod"`
	PaymentState   string          `json:"paymentState"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// SnapshotCache is the read-through cache consulted by GetOrder. A miss is
// reported as (nil, nil); cache failures degrade to database reads.
type SnapshotCache interface {
	Get(ctx context.Context, orderID kernel.UUID) (*OrderSnapshot, error)
	Set(ctx context.Context, snapshot *OrderSnapshot) error
}
