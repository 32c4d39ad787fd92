// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The payment and fulfillment records live in columns of the order row; line
// items are an owned association. Totals are never stored.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	SalesRepID       *uuid.UUID `gorm:"type:uuid"`
	BranchID         uuid.UUID  `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:varchar(32);index"`
	DeliveryMethod   string     `gorm:"type:varchar(16)"`
	ShippingAddress  string
	Phone            string
	Notes            string
	PaymentMethod         string     `gorm:"type:varchar(16)"`
	PaymentProofReference string
	PaymentState          string     `gorm:"type:varchar(32);index"`
	PaymentConfirmedBy    *uuid.UUID `gorm:"type:uuid"`
	PaymentConfirmedAt    *time.Time
	FulfillmentState   *string `gorm:"type:varchar(16)"`
	FulfillmentCarrier *string
	CreatedAt        time.Time
	LastTransitionAt time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one captured line item of an order. The warehouse
// location tag is filled in when the warehouse marks the order ready.
type OrderItemDTO struct {
	OrderID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity          int
	UnitPrice         decimal.Decimal `gorm:"type:numeric(14,2)"`
	WarehouseLocation *string
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		CustomerID:            aggregate.CustomerID().Bytes(),
		SalesRepID:            optionalUUID(aggregate.SalesRepID()),
		BranchID:              aggregate.BranchID().Bytes(),
		Status:                aggregate.Status().String(),
		DeliveryMethod:        aggregate.DeliveryMethod().String(),
		ShippingAddress:       aggregate.ShippingAddress(),
		Phone:                 aggregate.Phone(),
		Notes:                 aggregate.Notes(),
		PaymentMethod:         aggregate.Payment().Method().String(),
		PaymentProofReference: aggregate.Payment().ProofReference(),
		PaymentState:          aggregate.Payment().State().String(),
		PaymentConfirmedBy:    optionalUUID(aggregate.Payment().ConfirmedBy()),
		PaymentConfirmedAt:    aggregate.Payment().ConfirmedAt(),
		CreatedAt:             aggregate.CreatedAt(),
		LastTransitionAt:      aggregate.LastTransitionAt(),
	}

	locations := map[string]*string{}
	if fulfillment := aggregate.Fulfillment(); fulfillment != nil {
		state := fulfillment.State().String()
		dto.FulfillmentState = &state
		dto.FulfillmentCarrier = fulfillment.Carrier()

		for _, item := range fulfillment.Items() {
			if item.WarehouseLocation != "" {
				loc := item.WarehouseLocation
				locations[item.ProductID.String()] = &loc
			}
		}
	}

	for _, item := range aggregate.LineItems() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:           dto.ID,
			ProductID:         item.ProductID().Bytes(),
			Quantity:          item.Quantity(),
			UnitPrice:         item.UnitPrice().Amount(),
			WarehouseLocation: locations[item.ProductID().String()],
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including payment and fulfillment
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	salesRepID, err := optionalKernelUUID(dto.SalesRepID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	deliveryMethod, err := order.DeliveryMethodFromString(dto.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	lineItems, fulfillmentItems, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	payment, err := paymentToDomain(dto)
	if err != nil {
		return nil, err
	}

	var fulfillment *order.Fulfillment
	if dto.FulfillmentState != nil {
		state, stateErr := order.FulfillmentStateFromString(*dto.FulfillmentState)
		if stateErr != nil {
			return nil, stateErr
		}
		fulfillment, err = order.RestoreFulfillment(fulfillmentItems, state, dto.FulfillmentCarrier)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id, customerID, salesRepID, branchID,
		lineItems, deliveryMethod,
		dto.ShippingAddress, dto.Phone, dto.Notes,
		status, payment, fulfillment,
		dto.CreatedAt, dto.LastTransitionAt,
	)
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.LineItem, []order.FulfillmentItem, error) {
	lineItems := make([]order.LineItem, 0, len(dtos))
	fulfillmentItems := make([]order.FulfillmentItem, 0, len(dtos))

	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, nil, err
		}
		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, nil, err
		}
		lineItem, err := order.NewLineItem(productID, dto.Quantity, unitPrice)
		if err != nil {
			return nil, nil, err
		}
		lineItems = append(lineItems, lineItem)

		location := ""
		if dto.WarehouseLocation != nil {
			location = *dto.WarehouseLocation
		}
		fulfillmentItems = append(fulfillmentItems, order.FulfillmentItem{
			ProductID:         productID,
			Quantity:          dto.Quantity,
			WarehouseLocation: location,
		})
	}

	return lineItems, fulfillmentItems, nil
}

func paymentToDomain(dto OrderDTO) (*order.Payment, error) {
	method, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	state, err := order.ConfirmationStateFromString(dto.PaymentState)
	if err != nil {
		return nil, err
	}
	confirmedBy, err := optionalKernelUUID(dto.PaymentConfirmedBy)
	if err != nil {
		return nil, err
	}

	return order.RestorePayment(method, dto.PaymentProofReference, state, confirmedBy, dto.PaymentConfirmedAt)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
