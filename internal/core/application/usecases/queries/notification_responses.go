package queries

import (
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// NotificationResponse is the read model for a notification record.
type NotificationResponse struct {
	ID             kernel.UUID
	EventType      string
	ReferenceID    kernel.UUID
	UserID         kernel.UUID
	Message        string
	Channel        string
	Status         string
	ErrorMessage   string
	RetryCount     int
	TraceID        string
	EventTimestamp time.Time
	CreatedAt      time.Time
	ProcessedAt    *time.Time
}

const notificationColumns = `
		id, event_type, reference_id, user_id, message, channel,
		status, error_message, retry_count, trace_id, event_timestamp,
		created_at, processed_at`

// scanNotificationRows folds a notification result set into read models.
func scanNotificationRows(rows *sql.Rows) ([]NotificationResponse, error) {
	defer rows.Close()

	notifications := make([]NotificationResponse, 0)
	for rows.Next() {
		var resp NotificationResponse
		var id, referenceID, userID uuid.UUID

		err := rows.Scan(
			&id,
			&resp.EventType,
			&referenceID,
			&userID,
			&resp.Message,
			&resp.Channel,
			&resp.Status,
			&resp.ErrorMessage,
			&resp.RetryCount,
			&resp.TraceID,
			&resp.EventTimestamp,
			&resp.CreatedAt,
			&resp.ProcessedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ReferenceID, err = kernel.UUIDFromBytes(referenceID[:]); err != nil {
			return nil, err
		}
		if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}

		notifications = append(notifications, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
