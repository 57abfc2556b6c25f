// Package notify implements the notification channel ports. The log channel
// is the always-on baseline: it supports every event type and emits a
// structured NOTIFICATION_SENT record, so an environment without email or
// SMS providers still has a full notification trail.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/notification"
)

// LogChannel announces notifications on the service log.
type LogChannel struct {
	logger *slog.Logger
}

// NewLogChannel creates a log channel over the given logger.
func NewLogChannel(logger *slog.Logger) *LogChannel {
	return &LogChannel{
		logger: logger.With("channel", notification.Log.String()),
	}
}

// ChannelType identifies this channel in logs and error messages.
func (c *LogChannel) ChannelType() notification.Channel {
	return notification.Log
}

// Supports reports true for every event type.
func (c *LogChannel) Supports(_ notification.EventType) bool {
	return true
}

// Send logs the notification at a level derived from the event priority.
func (c *LogChannel) Send(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if aggregate.EventType().Priority() == notification.PriorityHigh {
		level = slog.LevelWarn
	}

	c.logger.Log(ctx, level, "NOTIFICATION_SENT",
		"eventType", aggregate.EventType().String(),
		"referenceId", aggregate.ReferenceID().String(),
		"userId", aggregate.UserID().String(),
		"message", aggregate.Message(),
	)
	return nil
}
