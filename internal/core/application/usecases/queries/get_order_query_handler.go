package queries

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's snapshot, consulting the snapshot
// cache first. On a miss the snapshot is assembled from the database, with
// totals recomputed from the line items, and written back to the cache.
// Cache failures are logged and degrade to plain database reads.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	cache  SnapshotCache
	logger *slog.Logger
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection; cache may be nil to disable caching.
func NewGetOrderQueryHandler(db *gorm.DB, cache SnapshotCache, logger *slog.Logger) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, cache: cache, logger: logger}
}

// Handle returns the order snapshot or errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		snapshot, err := h.cache.Get(ctx, query.OrderID())
		if err != nil {
			h.logger.Warn("order snapshot cache read failed",
				"orderId", query.OrderID().String(), "error", err)
		} else if snapshot != nil {
			return snapshot, nil
		}
	}

	snapshot, err := h.loadSnapshot(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err = h.cache.Set(ctx, snapshot); err != nil {
			h.logger.Warn("order snapshot cache write failed",
				"orderId", query.OrderID().String(), "error", err)
		}
	}

	return snapshot, nil
}

func (h GetOrderQueryHandler) loadSnapshot(ctx context.Context, orderID kernel.UUID) (*OrderSnapshot, error) {
	var row struct {
		ID                    string
		CustomerID            string
		SalesRepID            sql.NullString
		BranchID              string
		Status                string
		DeliveryMethod        string
		ShippingAddress       string
		Phone                 string
		Notes                 string
		PaymentMethod         string
		PaymentProofReference string
		PaymentState          string
		PaymentConfirmedBy    sql.NullString
		PaymentConfirmedAt    sql.NullTime
		FulfillmentState      sql.NullString
		FulfillmentCarrier    sql.NullString
		CreatedAt             time.Time
		LastTransitionAt      time.Time
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id, customer_id, sales_rep_id, branch_id, status,
			delivery_method, shipping_address, phone, notes,
			payment_method, payment_proof_reference, payment_state,
			payment_confirmed_by, payment_confirmed_at,
			fulfillment_state, fulfillment_carrier,
			created_at, last_transition_at
		FROM orders
		WHERE id = ?
	`, orderID.String()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("orderId", orderID)
	}

	items, subtotal, err := h.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	fee, err := shippingFeeFor(row.DeliveryMethod, subtotal)
	if err != nil {
		return nil, err
	}

	snapshot := &OrderSnapshot{
		ID:               row.ID,
		CustomerID:       row.CustomerID,
		BranchID:         row.BranchID,
		Status:           row.Status,
		DeliveryMethod:   row.DeliveryMethod,
		ShippingAddress:  row.ShippingAddress,
		Phone:            row.Phone,
		Notes:            row.Notes,
		Items:            items,
		Subtotal:         subtotal,
		ShippingFee:      fee,
		TotalAmount:      subtotal.Add(fee),
		Currency:         kernel.Currency,
		CreatedAt:        row.CreatedAt,
		LastTransitionAt: row.LastTransitionAt,
		Payment: PaymentSnapshot{
			Method:         row.PaymentMethod,
			State:          row.PaymentState,
			ProofReference: row.PaymentProofReference,
		},
	}
	if row.SalesRepID.Valid {
		snapshot.SalesRepID = &row.SalesRepID.String
	}
	if row.PaymentConfirmedBy.Valid {
		snapshot.Payment.ConfirmedBy = &row.PaymentConfirmedBy.String
	}
	if row.PaymentConfirmedAt.Valid {
		snapshot.Payment.ConfirmedAt = &row.PaymentConfirmedAt.Time
	}
	if row.FulfillmentState.Valid {
		snapshot.Fulfillment = &FulfillmentSnapshot{State: row.FulfillmentState.String}
		if row.FulfillmentCarrier.Valid {
			snapshot.Fulfillment.Carrier = &row.FulfillmentCarrier.String
		}
	}

	return snapshot, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemSnapshot, decimal.Decimal, error) {
	items := make([]OrderItemSnapshot, 0)
	subtotal := decimal.Zero

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, quantity, unit_price, warehouse_location
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY product_id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemSnapshot
		var unitPrice decimal.Decimal
		var location sql.NullString

		if err = rows.Scan(&item.ProductID, &item.Quantity, &unitPrice, &location); err != nil {
			return nil, decimal.Zero, err
		}

		item.UnitPrice = unitPrice
		item.Subtotal = unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if location.Valid {
			item.WarehouseLocation = location.String
		}

		subtotal = subtotal.Add(item.Subtotal)
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, decimal.Zero, err
	}

	return items, subtotal, nil
}

// shippingFeeFor recomputes the delivery fee from the stored method name,
// reusing the domain fee policy so readers and writers cannot drift.
func shippingFeeFor(methodName string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	method, err := order.DeliveryMethodFromString(methodName)
	if err != nil {
		return decimal.Zero, err
	}
	subtotalMoney, err := kernel.NewMoney(subtotal)
	if err != nil {
		return decimal.Zero, err
	}
	return method.ShippingFee(subtotalMoney).Amount(), nil
}
