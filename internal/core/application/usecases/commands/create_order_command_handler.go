package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"
)

// CreateOrderCommandHandler handles the checkout flow: it persists the
// order, charges the customer through the payment gateway, and records the
// outcome.
//
// The order is committed in PaymentPending status before the gateway is
// called, so a payment call that never completes leaves a durable order
// behind instead of losing it. When the gateway is unreachable (circuit
// open, timeout), the order simply stays PaymentPending and the
// reconciliation job settles it later.
type CreateOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for the checkout flow.
func NewCreateOrderCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order creation command and returns the order in its
// post-checkout status: Paid, PaymentFailed, or PaymentPending when the
// payment gate was unreachable. The returned order is always persisted.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.UserID(), cmd.CustomerName(), cmd.RestaurantName(), cmd.TotalAmount())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AwaitPayment(); err != nil {
		return nil, err
	}

	if err = h.persistNewOrder(ctx, aggregate); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	publishEvent(ctx, h.logger, h.publisher, notification.OrderCreated, aggregate.ID(), aggregate.UserID())

	attempt, err := h.gateway.Pay(ctx, aggregate.ID(), aggregate.TotalAmount())
	if err != nil {
		// Payment gate unreachable: the order stays PaymentPending and the
		// reconciliation job picks it up.
		metrics.PaymentOutcomesTotal.WithLabelValues("UNAVAILABLE").Inc()
		h.logger.WarnContext(ctx, "payment gate unavailable, order left pending",
			"orderId", aggregate.ID().String(),
			"error", err)
		return aggregate, nil
	}

	if err = recordPaymentOutcome(ctx, h.uowFactory, aggregate, attempt); err != nil {
		return nil, err
	}

	paymentEvent := notification.PaymentFailed
	if attempt.IsSuccessful() {
		paymentEvent = notification.PaymentSuccess
	}
	publishEvent(ctx, h.logger, h.publisher, paymentEvent, aggregate.ID(), aggregate.UserID())

	return aggregate, nil
}

func (h CreateOrderCommandHandler) persistNewOrder(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
