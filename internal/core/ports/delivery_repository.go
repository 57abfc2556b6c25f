package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate. The storage layer enforces a
	// unique index on the order reference, so a concurrent double-assign
	// surfaces as a constraint violation here.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no such delivery exists.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// ExistsForOrder reports whether any delivery references the order,
	// regardless of status.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// CountActiveByRider counts the rider's deliveries in Assigned or
	// PickedUp status. Used for capacity admission.
	CountActiveByRider(ctx context.Context, riderID kernel.UUID) (int, error)
}
