// Package services provides domain services that orchestrate business
// operations across multiple domain entities. It implements workflows that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - NotificationDispatcher: fans a notification out to delivery channels
//     and folds the per-channel outcomes into one result
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

// ErrNoChannels is returned when the dispatcher has no channel that
// supports the notification's event type.
var ErrNoChannels = errors.New("no notification channels available")

// NotificationDispatcher is a domain service that fans a notification out
// to every registered channel supporting its event type.
//
// Business rules:
//   - Every supporting channel is attempted; one channel's failure never
//     short-circuits the others.
//   - The notification succeeds if at least one channel accepted it.
//   - The notification fails only when every channel rejected it; the
//     per-channel errors are folded into a single message.
type NotificationDispatcher struct {
	channels []ports.NotificationChannel
}

// NewNotificationDispatcher creates a dispatcher over the given channels.
func NewNotificationDispatcher(channels []ports.NotificationChannel) NotificationDispatcher {
	return NotificationDispatcher{channels: channels}
}

// Dispatch sends the notification over every supporting channel and
// returns the folded outcome: the first channel that accepted it and a nil
// error, ErrNoChannels when nothing supports the event type, or an error
// concatenating every channel failure.
func (d NotificationDispatcher) Dispatch(
	ctx context.Context, aggregate *notification.Notification,
) (notification.Channel, error) {
	if err := aggregate.Validate(); err != nil {
		return notification.UnknownChannel, err
	}

	attempted := 0
	delivered := notification.UnknownChannel
	var failures []string

	for _, channel := range d.channels {
		if !channel.Supports(aggregate.EventType()) {
			continue
		}
		attempted++

		if err := channel.Send(ctx, aggregate); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %s", channel.ChannelType(), err))
			continue
		}
		if delivered == notification.UnknownChannel {
			delivered = channel.ChannelType()
		}
	}

	if attempted == 0 {
		return notification.UnknownChannel, ErrNoChannels
	}
	if delivered == notification.UnknownChannel {
		return notification.UnknownChannel, errors.New(strings.Join(failures, "; "))
	}
	return delivered, nil
}
