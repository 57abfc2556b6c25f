package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessNotificationCommandIsNotConstructed = errors.New(
	"ProcessNotificationCommand must be created via NewProcessNotificationCommand constructor",
)

// ProcessNotificationCommand represents one event consumed from the
// notification topic.
type ProcessNotificationCommand struct {
	event notification.Event

	guard guard.ConstructorGuard
}

// NewProcessNotificationCommand creates a command for an incoming event.
// A validation failure here means the payload is malformed and must be
// acknowledged rather than redelivered.
func NewProcessNotificationCommand(event notification.Event) (ProcessNotificationCommand, error) {
	if err := event.Validate(); err != nil {
		return ProcessNotificationCommand{}, err
	}

	return ProcessNotificationCommand{
		event: event,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessNotificationCommand) Validate() error {
	return c.guard.Validate(ErrProcessNotificationCommandIsNotConstructed)
}

// Event returns the consumed event.
func (c ProcessNotificationCommand) Event() notification.Event {
	return c.event
}
