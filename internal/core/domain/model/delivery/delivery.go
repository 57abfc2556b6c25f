// Package delivery contains the Delivery aggregate.
//
// A delivery binds one order to one rider. The binding is exclusive both
// ways while active: an order has at most one delivery ever, and a rider
// holds at most a configured number of active deliveries at a time. Only
// the assigned rider may progress a delivery.
package delivery

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through the NewDelivery or RestoreDelivery factory functions.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery is the aggregate root of the rider-assignment workflow.
type Delivery struct {
	id          kernel.UUID
	orderID     kernel.UUID
	riderID     kernel.UUID
	status      Status
	assignedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewDelivery creates a Delivery in Assigned status with validation.
func NewDelivery(id kernel.UUID, orderID kernel.UUID, riderID kernel.UUID) (*Delivery, error) {
	d := &Delivery{
		status:        Assigned,
		assignedAt:    time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setRiderID(riderID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	riderID kernel.UUID,
	status Status,
	assignedAt time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d, err := NewDelivery(id, orderID, riderID)
	if err != nil {
		return nil, err
	}

	d.status = status
	d.assignedAt = assignedAt
	d.pickedUpAt = pickedUpAt
	d.deliveredAt = deliveredAt
	return d, nil
}

// Validate ensures the Delivery was constructed through a factory function.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the identifier of the delivered order.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// RiderID returns the identifier of the assigned rider.
func (d *Delivery) RiderID() kernel.UUID {
	return d.riderID
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// AssignedAt returns the assignment timestamp.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// PickedUpAt returns the pickup timestamp, or nil before pickup.
func (d *Delivery) PickedUpAt() *time.Time {
	return d.pickedUpAt
}

// DeliveredAt returns the completion timestamp, or nil before completion.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// IsActive reports whether the delivery currently occupies rider capacity.
func (d *Delivery) IsActive() bool {
	return d.status.IsActive()
}

// Pickup marks the order as collected from the restaurant. Only the
// assigned rider may pick up, and only from Assigned status.
func (d *Delivery) Pickup(riderID kernel.UUID) error {
	if err := d.authorizeRider(riderID); err != nil {
		return err
	}
	if d.status != Assigned {
		return errs.NewInvalidStateTransitionError("delivery", d.status.String(), PickedUp.String())
	}

	now := time.Now().UTC()
	d.status = PickedUp
	d.pickedUpAt = &now
	return nil
}

// Deliver marks the delivery as completed. Only the assigned rider may
// complete it, and only from PickedUp status.
func (d *Delivery) Deliver(riderID kernel.UUID) error {
	if err := d.authorizeRider(riderID); err != nil {
		return err
	}
	if d.status != PickedUp {
		return errs.NewInvalidStateTransitionError("delivery", d.status.String(), Delivered.String())
	}

	now := time.Now().UTC()
	d.status = Delivered
	d.deliveredAt = &now
	return nil
}

// authorizeRider runs the ownership check before the state check, so a
// foreign rider always sees an authorization error rather than learning
// the delivery's state.
func (d *Delivery) authorizeRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if !d.riderID.IsEqual(riderID) {
		return errs.NewUnauthorizedError("rider "+riderID.String(), "delivery "+d.id.String())
	}
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.riderID = id
	return nil
}
