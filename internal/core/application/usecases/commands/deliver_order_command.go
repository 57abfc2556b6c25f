package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand represents a rider reporting a completed delivery.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	riderID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command to mark a delivery as completed.
func NewDeliverOrderCommand(deliveryID kernel.UUID, riderID kernel.UUID) (DeliverOrderCommand, error) {
	if err := errors.Join(deliveryID.Validate(), riderID.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}

	return DeliverOrderCommand{
		deliveryID: deliveryID,
		riderID:    riderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery.
func (c DeliverOrderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RiderID returns the identifier of the reporting rider.
func (c DeliverOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}
