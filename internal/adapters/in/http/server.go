// Package http exposes the order workflow over a REST API. Actor identity
// arrives in X-Actor-ID and X-Actor-Role headers; authentication itself is
// handled upstream.
package http

import (
	"errors"
	"fmt"
	"net/http"

	"ferremas/internal/core/application/usecases/commands"
	"ferremas/internal/core/application/usecases/queries"
	"ferremas/internal/core/domain/model/inventory"
	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/core/domain/services"
	"ferremas/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	actorIDHeader   = "X-Actor-ID"
	actorRoleHeader = "X-Actor-Role"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	BranchID        string                   `json:"branchId"`
	Items           []CreateOrderItemRequest `json:"items"`
	DeliveryMethod  string                   `json:"deliveryMethod"`
	ShippingAddress string                   `json:"shippingAddress"`
	Phone           string                   `json:"phone"`
	Notes           string                   `json:"notes"`
	PaymentMethod   string                   `json:"paymentMethod"`
	ProofReference  string                   `json:"proofReference"`
}

// CreateOrderItemRequest is one cart position.
type CreateOrderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateOrderResponse reports the id of the newly placed order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// OrderActionRequest asks for one workflow transition. Carrier and
// locations are only meaningful for markReady.
type OrderActionRequest struct {
	Action    string            `json:"action"`
	Carrier   *string           `json:"carrier,omitempty"`
	Locations map[string]string `json:"locations,omitempty"`
}

// OrderActionResponse reports the status the order ended up in.
type OrderActionResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// ResolvePaymentRequest carries the finance verdict on a bank transfer.
type ResolvePaymentRequest struct {
	Decision string `json:"decision"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	executeActionHandler  commands.ExecuteOrderActionCommandHandler
	resolvePaymentHandler commands.ResolvePaymentCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersByRoleViewQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	executeActionHandler commands.ExecuteOrderActionCommandHandler,
	resolvePaymentHandler commands.ResolvePaymentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersByRoleViewQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		executeActionHandler:  executeActionHandler,
		resolvePaymentHandler: resolvePaymentHandler,
		getOrderHandler:       getOrderHandler,
		listOrdersHandler:     listOrdersHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/actions", s.ExecuteOrderAction)
	api.POST("/orders/:id/payment", s.ResolvePayment)
}

// CreateOrder handles POST /api/v1/orders - customer checkout.
// The acting customer becomes the order's owner.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actorID, _, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	branchID, err := kernel.UUIDFromString(req.BranchID)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("branchId", err))
	}
	deliveryMethod, err := order.DeliveryMethodFromString(req.DeliveryMethod)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("deliveryMethod", err))
	}
	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("paymentMethod", err))
	}

	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("productId", err))
		}
		unitPrice, err := kernel.NewMoney(item.UnitPrice)
		if err != nil {
			return s.fail(ctx, err)
		}
		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actorID, branchID, items,
		deliveryMethod, req.ShippingAddress, req.Phone, req.Notes,
		paymentMethod, req.ProofReference,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - full order snapshot.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// ListOrders handles GET /api/v1/orders - the actor's role working set,
// optionally narrowed by ?status=.
func (s *Server) ListOrders(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersByRoleViewQuery(role, actorID, statusFilter)
	if err != nil {
		return s.fail(ctx, err)
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	if summaries == nil {
		summaries = []queries.OrderSummary{}
	}

	return ctx.JSON(http.StatusOK, summaries)
}

// ExecuteOrderAction handles POST /api/v1/orders/:id/actions - one workflow
// transition requested by the acting role.
func (s *Server) ExecuteOrderAction(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var req OrderActionRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	action, err := order.ActionFromString(req.Action)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("action", err))
	}

	cmd, err := commands.NewExecuteOrderActionCommand(orderID, action, actorID, role)
	if err != nil {
		return s.fail(ctx, err)
	}
	if req.Carrier != nil || req.Locations != nil {
		cmd = cmd.WithHandoffDetails(req.Carrier, req.Locations)
	}

	result, err := s.executeActionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderActionResponse{
		OrderID: result.OrderID.String(),
		Status:  result.Status.String(),
	})
}

// ResolvePayment handles POST /api/v1/orders/:id/payment - the finance
// verdict on a bank-transfer proof.
func (s *Server) ResolvePayment(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if role != order.RoleFinance {
		return s.fail(ctx, fmt.Errorf("%w: only finance may resolve payments", services.ErrUnauthorized))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var req ResolvePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var decision commands.PaymentDecision
	switch req.Decision {
	case "confirm":
		decision = commands.PaymentDecisionConfirm
	case "reject":
		decision = commands.PaymentDecisionReject
	default:
		return s.fail(ctx, errs.NewValueIsInvalidError("decision"))
	}

	cmd, err := commands.NewResolvePaymentCommand(orderID, actorID, decision)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.resolvePaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// actor resolves the caller's identity and role from the request headers.
func (s *Server) actor(ctx echo.Context) (kernel.UUID, order.Role, error) {
	rawID := ctx.Request().Header.Get(actorIDHeader)
	if rawID == "" {
		return kernel.UUID{}, order.RoleUnknown, errs.NewValueIsRequiredError(actorIDHeader)
	}
	actorID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, errs.NewValueIsInvalidErrorWithCause(actorIDHeader, err)
	}

	rawRole := ctx.Request().Header.Get(actorRoleHeader)
	role, err := order.RoleFromString(rawRole)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, errs.NewValueIsInvalidErrorWithCause(actorRoleHeader, err)
	}

	return actorID, role, nil
}

// fail maps a domain or application error onto an HTTP response.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusCodeFor(err)
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

// statusCodeFor classifies errors by sentinel: ownership and role failures
// are 403, state conflicts 409, validation problems 400.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, order.ErrStaleState),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, order.ErrPaymentNotConfirmed),
		errors.Is(err, order.ErrPaymentAlreadyResolved),
		errors.Is(err, order.ErrMissingCarrier),
		errors.Is(err, order.ErrFulfillmentNotStarted):
		return http.StatusConflict

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidAddress),
		errors.Is(err, order.ErrMissingProof):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
