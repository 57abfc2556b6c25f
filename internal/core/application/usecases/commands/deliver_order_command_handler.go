package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

// DeliverOrderCommandHandler handles delivery completion. The delivery and
// the order move together in one transaction: the delivery becomes
// Delivered and releases rider capacity, and the order reaches its
// terminal Delivered status.
type DeliverOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDeliverOrderCommandHandler creates a handler for delivery completion.
func NewDeliverOrderCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the completion command and returns the updated delivery.
func (h DeliverOrderCommandHandler) Handle(
	ctx context.Context, cmd DeliverOrderCommand,
) (*delivery.Delivery, error) {
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

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Deliver(cmd.RiderID()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, err
	}

	if err = orderAggregate.MarkDelivered(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.logger, h.publisher, notification.DeliveryCompleted,
		orderAggregate.ID(), orderAggregate.UserID())

	return aggregate, nil
}
