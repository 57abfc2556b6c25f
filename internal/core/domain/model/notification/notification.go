// Package notification contains the notification processing domain: the
// event catalog, delivery channels, and the Notification record that tracks
// each event's journey through channel fan-out.
//
// Idempotency lives here as a rule, enforced by the processing command: at
// most one non-Skipped Notification exists per (referenceID, eventType)
// pair, so redelivered events are recorded as Skipped instead of announced
// twice.
package notification

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through a factory function.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is the aggregate root tracking one event's processing
// outcome. It starts Pending, moves to Processing during fan-out, and ends
// in Success, Failed, or Skipped. Failed records may be retried manually,
// which increments the retry counter and runs fan-out again.
type Notification struct {
	id           kernel.UUID
	eventType    EventType
	referenceID  kernel.UUID
	userID       kernel.UUID
	message        string
	channel        Channel
	status         Status
	errorMessage   string
	retryCount     int
	traceID        string
	eventTimestamp time.Time
	createdAt      time.Time
	processedAt    *time.Time

	isConstructed bool
}

// NewNotification creates a Pending record for an incoming event.
func NewNotification(id kernel.UUID, event Event) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	eventTimestamp := event.Timestamp
	if eventTimestamp.IsZero() {
		eventTimestamp = createdAt
	}

	return &Notification{
		id:             id,
		eventType:      event.EventType,
		referenceID:    event.ReferenceID,
		userID:         event.UserID,
		message:        event.ResolvedMessage(),
		status:         Pending,
		traceID:        event.TraceID,
		eventTimestamp: eventTimestamp,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	eventType EventType,
	referenceID kernel.UUID,
	userID kernel.UUID,
	message string,
	channel Channel,
	status Status,
	errorMessage string,
	retryCount int,
	traceID string,
	eventTimestamp time.Time,
	createdAt time.Time,
	processedAt *time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), referenceID.Validate(), userID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Notification{
		id:             id,
		eventType:      eventType,
		referenceID:    referenceID,
		userID:         userID,
		message:        message,
		channel:        channel,
		status:         status,
		errorMessage:   errorMessage,
		retryCount:     retryCount,
		traceID:        traceID,
		eventTimestamp: eventTimestamp,
		createdAt:      createdAt,
		processedAt:    processedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Notification was constructed through a factory function.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// IsEqual compares two notifications by identity.
func (n *Notification) IsEqual(other *Notification) bool {
	return other != nil && n.id.IsEqual(other.id)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// EventType returns the classified event type.
func (n *Notification) EventType() EventType {
	return n.eventType
}

// ReferenceID returns the identifier of the entity the event refers to.
func (n *Notification) ReferenceID() kernel.UUID {
	return n.referenceID
}

// UserID returns the identifier of the notified user.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

// Message returns the user-facing notification text.
func (n *Notification) Message() string {
	return n.message
}

// Channel returns the channel that accepted the notification, or
// UnknownChannel while pending or after every channel rejected it.
func (n *Notification) Channel() Channel {
	return n.channel
}

// TraceID returns the trace identifier carried by the originating event.
func (n *Notification) TraceID() string {
	return n.traceID
}

// EventTimestamp returns when the originating event was produced.
func (n *Notification) EventTimestamp() time.Time {
	return n.eventTimestamp
}

// Status returns the current processing status.
func (n *Notification) Status() Status {
	return n.status
}

// ErrorMessage returns the concatenated channel errors of the last failed
// fan-out, or empty.
func (n *Notification) ErrorMessage() string {
	return n.errorMessage
}

// RetryCount returns how many manual retries have run.
func (n *Notification) RetryCount() int {
	return n.retryCount
}

// CreatedAt returns the record creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// ProcessedAt returns when processing finished, or nil while in flight.
func (n *Notification) ProcessedAt() *time.Time {
	return n.processedAt
}

// MarkProcessing moves the record into fan-out.
func (n *Notification) MarkProcessing() error {
	if n.status != Pending && n.status != Failed {
		return errs.NewInvalidStateTransitionError("notification", n.status.String(), Processing.String())
	}
	n.status = Processing
	return nil
}

// MarkSuccess records that at least one channel accepted the notification
// and which channel that was.
func (n *Notification) MarkSuccess(channel Channel) {
	n.channel = channel
	n.finish(Success, "")
}

// MarkFailed records that every channel rejected the notification.
func (n *Notification) MarkFailed(errorMessage string) {
	n.finish(Failed, errorMessage)
}

// MarkSkipped records the event as a duplicate without running fan-out.
func (n *Notification) MarkSkipped(reason string) {
	n.finish(Skipped, reason)
}

// PrepareRetry readies a failed record for another fan-out pass. Only
// Failed records may be retried.
func (n *Notification) PrepareRetry() error {
	if n.status != Failed {
		return errs.NewInvalidStateTransitionError("notification", n.status.String(), Processing.String())
	}
	n.retryCount++
	n.errorMessage = ""
	n.channel = UnknownChannel
	n.processedAt = nil
	n.status = Processing
	return nil
}

func (n *Notification) finish(status Status, errorMessage string) {
	now := time.Now().UTC()
	n.status = status
	n.errorMessage = errorMessage
	n.processedAt = &now
}
