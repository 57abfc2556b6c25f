package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// records.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists changes to an existing notification record.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification record by its unique identifier.
	// Returns an ObjectNotFoundError when no such record exists.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// ExistsProcessed reports whether a non-Skipped record already exists
	// for the (referenceID, eventType) pair. This is the idempotency check
	// that makes redelivered events harmless.
	ExistsProcessed(ctx context.Context, referenceID kernel.UUID, eventType notification.EventType) (bool, error)
}
