package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
)

// NotificationChannel is the outbound contract for one delivery channel
// (log, email, sms, push). The dispatcher fans a notification out to every
// registered channel that supports its event type.
type NotificationChannel interface {
	// ChannelType identifies the channel in logs and error messages.
	ChannelType() notification.Channel

	// Supports reports whether this channel announces the given event type.
	Supports(eventType notification.EventType) bool

	// Send delivers the notification over this channel.
	Send(ctx context.Context, aggregate *notification.Notification) error
}
