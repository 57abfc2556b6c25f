package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPickupDeliveryCommandIsNotConstructed = errors.New(
	"PickupDeliveryCommand must be created via NewPickupDeliveryCommand constructor",
)

// PickupDeliveryCommand represents a rider reporting that they collected
// the order from the restaurant.
type PickupDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	riderID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickupDeliveryCommand creates a command to mark a delivery as picked up.
func NewPickupDeliveryCommand(deliveryID kernel.UUID, riderID kernel.UUID) (PickupDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), riderID.Validate()); err != nil {
		return PickupDeliveryCommand{}, err
	}

	return PickupDeliveryCommand{
		deliveryID: deliveryID,
		riderID:    riderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPickupDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery.
func (c PickupDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RiderID returns the identifier of the reporting rider.
func (c PickupDeliveryCommand) RiderID() kernel.UUID {
	return c.riderID
}
