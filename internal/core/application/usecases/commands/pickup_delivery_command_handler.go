package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

// PickupDeliveryCommandHandler handles the pickup step. Ownership and the
// Assigned-to-PickedUp transition are enforced by the delivery aggregate.
type PickupDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewPickupDeliveryCommandHandler creates a handler for the pickup step.
func NewPickupDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PickupDeliveryCommandHandler {
	return PickupDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the pickup command and returns the updated delivery.
func (h PickupDeliveryCommandHandler) Handle(
	ctx context.Context, cmd PickupDeliveryCommand,
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

	if err = aggregate.Pickup(cmd.RiderID()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	orderAggregate, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvent(ctx, h.logger, h.publisher, notification.DeliveryPicked,
		aggregate.OrderID(), orderAggregate.UserID())

	return aggregate, nil
}
