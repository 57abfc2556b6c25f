package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
)

// EventPublisher is the outbound contract to the notification topic.
// Order and delivery commands publish their domain events through it;
// publication failures are logged and never fail the triggering command.
type EventPublisher interface {
	Publish(ctx context.Context, event notification.Event) error
}
