package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles explicit status changes. Every
// change is checked against the order state machine, so a request that
// jumps the workflow fails instead of silently rewriting history.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the status update command and returns the updated order.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if eventType, ok := statusEvent(cmd.Status()); ok {
		publishEvent(ctx, h.logger, h.publisher, eventType, aggregate.ID(), aggregate.UserID())
	}

	return aggregate, nil
}

// statusEvent maps announced status changes to their event types. Statuses
// reached through dedicated commands (payment, delivery) publish from there.
func statusEvent(status order.Status) (notification.EventType, bool) {
	switch status {
	case order.Confirmed:
		return notification.OrderConfirmed, true
	case order.Cancelled:
		return notification.OrderCancelled, true
	default:
		return notification.UnknownEvent, false
	}
}
