package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents a request to assign a rider to an order.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a command to assign a rider to an order.
func NewAssignDeliveryCommand(orderID kernel.UUID, riderID kernel.UUID) (AssignDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return AssignDeliveryCommand{
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to deliver.
func (c AssignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the identifier of the rider to assign.
func (c AssignDeliveryCommand) RiderID() kernel.UUID {
	return c.riderID
}
