// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence. The composite index on
// (reference_id, event_type) backs the idempotency check that makes
// redelivered events harmless.
package notificationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification records.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType      string    `gorm:"type:varchar(64);index:idx_notifications_reference,priority:2"`
	ReferenceID    uuid.UUID `gorm:"type:uuid;index:idx_notifications_reference,priority:1"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	Message        string    `gorm:"type:text"`
	Channel        string    `gorm:"type:varchar(32)"`
	Status         string    `gorm:"type:varchar(32);index"`
	ErrorMessage   string    `gorm:"type:text"`
	RetryCount     int
	TraceID        string `gorm:"type:varchar(128)"`
	EventTimestamp time.Time
	CreatedAt      time.Time
	ProcessedAt    *time.Time
}

// TableName overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification record to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             aggregate.ID().Bytes(),
		EventType:      aggregate.EventType().String(),
		ReferenceID:    aggregate.ReferenceID().Bytes(),
		UserID:         aggregate.UserID().Bytes(),
		Message:        aggregate.Message(),
		Channel:        aggregate.Channel().String(),
		Status:         aggregate.Status().String(),
		ErrorMessage:   aggregate.ErrorMessage(),
		RetryCount:     aggregate.RetryCount(),
		TraceID:        aggregate.TraceID(),
		EventTimestamp: aggregate.EventTimestamp(),
		CreatedAt:      aggregate.CreatedAt(),
		ProcessedAt:    aggregate.ProcessedAt(),
	}
}

// toDomain reconstructs the notification record from a database row using
// RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	referenceID, err := kernel.UUIDFromBytes(dto.ReferenceID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := notification.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	// The channel column holds UNKNOWN until a channel accepts the
	// notification, so parsing falls back instead of failing.
	channel, err := notification.ParseChannel(dto.Channel)
	if err != nil {
		channel = notification.UnknownChannel
	}

	return notification.RestoreNotification(
		id,
		notification.ParseEventType(dto.EventType),
		referenceID,
		userID,
		dto.Message,
		channel,
		status,
		dto.ErrorMessage,
		dto.RetryCount,
		dto.TraceID,
		dto.EventTimestamp,
		dto.CreatedAt,
		dto.ProcessedAt,
	)
}
