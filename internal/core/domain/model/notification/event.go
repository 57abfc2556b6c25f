package notification

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Event is a domain event received from the notification topic. It is a
// value object: adapters decode the wire payload into an Event and hand it
// to the processing command.
type Event struct {
	EventType   EventType
	ReferenceID kernel.UUID
	UserID      kernel.UUID
	Message     string
	Metadata    map[string]string
	Timestamp   time.Time
	TraceID     string
}

// Validate checks that the event carries everything processing needs.
// A failing event must be acknowledged, not retried: redelivery cannot
// make a malformed payload valid.
func (e Event) Validate() error {
	return errors.Join(
		e.validateReferenceID(),
		e.validateUserID(),
	)
}

func (e Event) validateReferenceID() error {
	if err := e.ReferenceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("referenceId", err)
	}
	return nil
}

func (e Event) validateUserID() error {
	if err := e.UserID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return nil
}

// ResolvedMessage returns the event's own message, falling back to the
// event type's default text when the producer sent none.
func (e Event) ResolvedMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.EventType.DefaultMessage()
}
