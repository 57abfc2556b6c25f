// Package http exposes the service over REST. Handlers translate requests
// into commands and queries, and core errors into HTTP statuses via
// problems.go. Delivery endpoints are guarded by the actor headers in
// guards.go.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	AssignDelivery    commands.AssignDeliveryCommandHandler
	PickupDelivery    commands.PickupDeliveryCommandHandler
	DeliverOrder      commands.DeliverOrderCommandHandler
	RetryNotification commands.RetryNotificationCommandHandler

	GetOrderByID           queries.GetOrderByIDQueryHandler
	GetOrderHistory        queries.GetOrderHistoryQueryHandler
	GetOrderBasic          queries.GetOrderBasicQueryHandler
	GetOrderStats          queries.GetOrderStatsQueryHandler
	GetPaymentByOrder      queries.GetPaymentByOrderQueryHandler
	GetRiderDeliveries     queries.GetRiderDeliveriesQueryHandler
	GetNotificationsByRef  queries.GetNotificationsByReferenceQueryHandler
	GetNotificationsByUser queries.GetNotificationsByUserQueryHandler
	GetFailedNotifications queries.GetFailedNotificationsQueryHandler
	GetNotificationStats   queries.GetNotificationStatsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/stats", s.GetOrderStats)
	api.GET("/orders/user/:userId", s.GetOrderHistory)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/basic", s.GetOrderBasic)
	api.GET("/orders/:orderId/payment", s.GetOrderPayment)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.PUT("/orders/:orderId/status", s.UpdateOrderStatus)

	api.POST("/deliveries", s.AssignDelivery)
	api.GET("/deliveries/rider/:riderId", s.GetRiderDeliveries)
	api.PUT("/deliveries/:deliveryId/pickup", s.PickupDelivery)
	api.PUT("/deliveries/:deliveryId/deliver", s.DeliverOrder)

	api.GET("/notifications/stats", s.GetNotificationStats)
	api.GET("/notifications/failed", s.GetFailedNotifications)
	api.GET("/notifications/reference/:referenceId", s.GetNotificationsByReference)
	api.GET("/notifications/user/:userId", s.GetNotificationsByUser)
	api.POST("/notifications/:notificationId/retry", s.RetryNotification)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "UP"})
}
