package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetRiderDeliveriesQueryIsNotConstructed = errors.New(
	"GetRiderDeliveriesQuery must be created via NewGetRiderDeliveriesQuery constructor",
)

// GetRiderDeliveriesQuery retrieves a rider's deliveries, newest first.
// With activeOnly set, only Assigned and PickedUp deliveries are returned.
type GetRiderDeliveriesQuery struct {
	riderID    kernel.UUID
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewGetRiderDeliveriesQuery creates a query for a rider's deliveries.
func NewGetRiderDeliveriesQuery(riderID kernel.UUID, activeOnly bool) (GetRiderDeliveriesQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderDeliveriesQuery{}, err
	}

	return GetRiderDeliveriesQuery{
		riderID:    riderID,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderDeliveriesQueryIsNotConstructed)
}

// RiderID returns the identifier of the rider.
func (q GetRiderDeliveriesQuery) RiderID() kernel.UUID {
	return q.riderID
}

// ActiveOnly reports whether only capacity-occupying deliveries are requested.
func (q GetRiderDeliveriesQuery) ActiveOnly() bool {
	return q.activeOnly
}

// DeliveryResponse is the read model for a delivery.
type DeliveryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	RiderID     kernel.UUID
	Status      string
	AssignedAt  time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}
