package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"
)

// AssignDeliveryCommandHandler handles rider assignment. Admission runs
// three checks inside the transaction, in order:
//
//  1. the order has no delivery yet (one delivery per order, ever)
//  2. the order is eligible (Confirmed or Paid)
//  3. the rider is below the configured active-delivery limit
//
// The storage layer's unique index on the order reference backs check 1
// against concurrent assigns.
type AssignDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	maxActive  int
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for rider assignment.
// maxActive is the per-rider cap on concurrent Assigned/PickedUp deliveries.
func NewAssignDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	maxActive int,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		maxActive:  maxActive,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the assignment command and returns the new delivery.
func (h AssignDeliveryCommandHandler) Handle(
	ctx context.Context, cmd AssignDeliveryCommand,
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

	exists, err := deliveryRepo.ExistsForOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewOrderNotEligibleError(cmd.OrderID().String(), "order already has a delivery assigned")
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !aggregate.Status().IsEligibleForDelivery() {
		return nil, errs.NewOrderNotEligibleError(cmd.OrderID().String(),
			fmt.Sprintf("order in status %s is not eligible for delivery", aggregate.Status()))
	}

	active, err := deliveryRepo.CountActiveByRider(ctx, cmd.RiderID())
	if err != nil {
		return nil, err
	}
	if active >= h.maxActive {
		return nil, errs.NewCapacityExceededError("rider "+cmd.RiderID().String(), h.maxActive)
	}

	newDelivery, err := delivery.NewDelivery(kernel.NewUUID(), cmd.OrderID(), cmd.RiderID())
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.Add(ctx, newDelivery); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.DeliveriesAssignedTotal.Inc()
	publishEvent(ctx, h.logger, h.publisher, notification.DeliveryAssigned, aggregate.ID(), aggregate.UserID())

	return newDelivery, nil
}
