package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRetryNotificationCommandIsNotConstructed = errors.New(
	"RetryNotificationCommand must be created via NewRetryNotificationCommand constructor",
)

// RetryNotificationCommand represents a manual request to re-run channel
// fan-out for a failed notification.
type RetryNotificationCommand struct {
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRetryNotificationCommand creates a command to retry a notification.
func NewRetryNotificationCommand(notificationID kernel.UUID) (RetryNotificationCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return RetryNotificationCommand{}, err
	}

	return RetryNotificationCommand{
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryNotificationCommand) Validate() error {
	return c.guard.Validate(ErrRetryNotificationCommandIsNotConstructed)
}

// NotificationID returns the identifier of the notification to retry.
func (c RetryNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
