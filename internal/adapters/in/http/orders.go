package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	UserID         string          `json:"userId"`
	CustomerName   string          `json:"customerName"`
	RestaurantName string          `json:"restaurantName"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	CustomerName   string          `json:"customerName"`
	RestaurantName string          `json:"restaurantName"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type orderBasicResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type orderStatsResponse struct {
	TotalOrders     int64           `json:"totalOrders"`
	CompletedOrders int64           `json:"completedOrders"`
	CancelledOrders int64           `json:"cancelledOrders"`
	PendingOrders   int64           `json:"pendingOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
}

type paymentResponse struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	PaymentTime time.Time       `json:"paymentTime"`
}

// CreateOrder handles POST /api/v1/orders. A checkout where the payment
// provider was unavailable still returns 201: the order stays
// PAYMENT_PENDING and reconciliation settles it later.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("userId", err))
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		userID,
		req.CustomerName,
		req.RestaurantName,
		req.TotalAmount,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	aggregate, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(aggregate))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.handlers.GetOrderByID.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromReadModel(resp))
}

// GetOrderHistory handles GET /api/v1/orders/user/{userId}.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "userId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(userID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderFromReadModel(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderBasic handles GET /api/v1/orders/{orderId}/basic, the minimal
// projection used by other services.
func (s *Server) GetOrderBasic(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderBasicQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.handlers.GetOrderBasic.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderBasicResponse{
		ID:     resp.ID.String(),
		UserID: resp.UserID.String(),
		Status: resp.Status,
	})
}

// GetOrderStats handles GET /api/v1/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	resp, err := s.handlers.GetOrderStats.Handle(ctx.Request().Context(), queries.NewGetOrderStatsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderStatsResponse{
		TotalOrders:     resp.TotalOrders,
		CompletedOrders: resp.CompletedOrders,
		CancelledOrders: resp.CancelledOrders,
		PendingOrders:   resp.PendingOrders,
		TotalRevenue:    resp.TotalRevenue,
	})
}

// GetOrderPayment handles GET /api/v1/orders/{orderId}/payment, returning
// the latest payment attempt.
func (s *Server) GetOrderPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetPaymentByOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.handlers.GetPaymentByOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentResponse{
		ID:          resp.ID.String(),
		OrderID:     resp.OrderID.String(),
		Amount:      resp.Amount,
		Status:      resp.Status,
		PaymentTime: resp.PaymentTime,
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	aggregate, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(aggregate))
}

// UpdateOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	aggregate, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(aggregate))
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func orderFromAggregate(aggregate *order.Order) orderResponse {
	return orderResponse{
		ID:             aggregate.ID().String(),
		UserID:         aggregate.UserID().String(),
		CustomerName:   aggregate.CustomerName(),
		RestaurantName: aggregate.RestaurantName(),
		TotalAmount:    aggregate.TotalAmount(),
		Status:         aggregate.Status().String(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

func orderFromReadModel(resp queries.OrderResponse) orderResponse {
	return orderResponse{
		ID:             resp.ID.String(),
		UserID:         resp.UserID.String(),
		CustomerName:   resp.CustomerName,
		RestaurantName: resp.RestaurantName,
		TotalAmount:    resp.TotalAmount,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
	}
}
