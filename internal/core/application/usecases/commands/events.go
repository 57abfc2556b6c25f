package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

// publishEvent emits a domain event to the notification topic. Publication
// is best-effort: a broker outage must never fail the command that already
// committed, so failures are logged and swallowed.
func publishEvent(
	ctx context.Context,
	logger *slog.Logger,
	publisher ports.EventPublisher,
	eventType notification.EventType,
	referenceID kernel.UUID,
	userID kernel.UUID,
) {
	if publisher == nil {
		return
	}

	event := notification.Event{
		EventType:   eventType,
		ReferenceID: referenceID,
		UserID:      userID,
		Timestamp:   time.Now().UTC(),
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			"eventType", eventType.String(),
			"referenceId", referenceID.String(),
			"error", err)
	}
}
