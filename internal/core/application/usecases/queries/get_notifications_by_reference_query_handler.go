package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetNotificationsByReferenceQueryHandler reads every notification for a
// referenced entity, newest first.
type GetNotificationsByReferenceQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsByReferenceQueryHandler creates a handler for
// reference-scoped notification reads.
func NewGetNotificationsByReferenceQueryHandler(db *gorm.DB) GetNotificationsByReferenceQueryHandler {
	return GetNotificationsByReferenceQueryHandler{db: db}
}

// Handle executes the query.
func (h GetNotificationsByReferenceQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsByReferenceQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+notificationColumns+`
		FROM notifications
		WHERE reference_id = ?
		ORDER BY created_at DESC
	`, query.ReferenceID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}

	return scanNotificationRows(rows)
}
