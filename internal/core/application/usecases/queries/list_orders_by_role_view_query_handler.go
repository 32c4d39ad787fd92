package queries

import (
	"context"
	"time"

	"ferremas/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersByRoleViewQueryHandler reads the work queue of one role from
// the database. Totals are recomputed from the line items; the stored rows
// never carry a total column.
//
// Role working sets:
//   - sales: the full lifecycle
//   - warehouse: InPreparation and Ready
//   - finance: Ready and Completed, plus any order still awaiting payment
//     confirmation
//   - customer: their own orders, any status
type ListOrdersByRoleViewQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersByRoleViewQueryHandler creates a handler for role work-queue
// reads. Requires a GORM database connection.
func NewListOrdersByRoleViewQueryHandler(db *gorm.DB) ListOrdersByRoleViewQueryHandler {
	return ListOrdersByRoleViewQueryHandler{db: db}
}

func warehouseStatuses() []string {
	return []string{order.StatusInPreparation.String(), order.StatusReady.String()}
}

func financeStatuses() []string {
	return []string{order.StatusReady.String(), order.StatusCompleted.String()}
}

// Handle returns the summaries of the role's working set, oldest first.
func (h ListOrdersByRoleViewQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersByRoleViewQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	base := `
		SELECT
			o.id, o.customer_id, o.status, o.delivery_method, o.payment_state,
			o.created_at,
			COALESCE(SUM(i.quantity * i.unit_price), 0) AS subtotal
		FROM orders o
		LEFT JOIN order_line_items i ON i.order_id = o.id
	`
	group := ` GROUP BY o.id, o.customer_id, o.status, o.delivery_method,
		o.payment_state, o.created_at ORDER BY o.created_at`

	var where string
	var args []any

	switch query.Role() {
	case order.RoleCustomer:
		where = ` WHERE o.customer_id = ?`
		args = append(args, query.ActorID().String())
	case order.RoleWarehouse:
		where = ` WHERE o.status IN ?`
		args = append(args, warehouseStatuses())
	case order.RoleFinance:
		where = ` WHERE (o.status IN ? OR o.payment_state = ?)`
		args = append(args, financeStatuses(), order.PaymentAwaiting.String())
	case order.RoleSales:
		where = ` WHERE 1=1`
	}

	if filter := query.StatusFilter(); filter != nil {
		where += ` AND o.status = ?`
		args = append(args, filter.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(base+where+group, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var summary OrderSummary
		var createdAt time.Time
		var subtotal decimal.Decimal

		err = rows.Scan(
			&summary.ID,
			&summary.CustomerID,
			&summary.Status,
			&summary.DeliveryMethod,
			&summary.PaymentState,
			&createdAt,
			&subtotal,
		)
		if err != nil {
			return nil, err
		}

		fee, feeErr := shippingFeeFor(summary.DeliveryMethod, subtotal)
		if feeErr != nil {
			return nil, feeErr
		}

		summary.TotalAmount = subtotal.Add(fee)
		summary.CreatedAt = createdAt
		summaries = append(summaries, summary)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
