package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// SettlePendingPaymentsCommandHandler retries payment for orders left in
// PaymentPending by an unreachable payment gate. Each order settles in its
// own transaction, so one bad row never blocks the rest; if the gate is
// still down, the remaining orders stay pending for the next run.
type SettlePendingPaymentsCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewSettlePendingPaymentsCommandHandler creates a reconciliation handler.
func NewSettlePendingPaymentsCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) SettlePendingPaymentsCommandHandler {
	return SettlePendingPaymentsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle retries payment for every pending order and returns how many settled.
func (h SettlePendingPaymentsCommandHandler) Handle(
	ctx context.Context, cmd SettlePendingPaymentsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.pendingOrders(ctx)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, aggregate := range pending {
		attempt, payErr := h.gateway.Pay(ctx, aggregate.ID(), aggregate.TotalAmount())
		if payErr != nil {
			// Gate still unavailable. Stop early; the next run will retry.
			h.logger.WarnContext(ctx, "payment gate unavailable during reconciliation",
				"orderId", aggregate.ID().String(),
				"error", payErr)
			return settled, nil
		}

		if err = recordPaymentOutcome(ctx, h.uowFactory, aggregate, attempt); err != nil {
			h.logger.ErrorContext(ctx, "failed to record payment outcome",
				"orderId", aggregate.ID().String(),
				"error", err)
			continue
		}

		paymentEvent := notification.PaymentFailed
		if attempt.IsSuccessful() {
			paymentEvent = notification.PaymentSuccess
		}
		publishEvent(ctx, h.logger, h.publisher, paymentEvent, aggregate.ID(), aggregate.UserID())

		settled++
	}

	return settled, nil
}

func (h SettlePendingPaymentsCommandHandler) pendingOrders(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetAllInStatus(ctx, order.PaymentPending)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pending, nil
}
