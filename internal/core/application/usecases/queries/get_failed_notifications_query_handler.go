package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GetFailedNotificationsQueryHandler reads every Failed notification,
// oldest first so the longest-waiting records surface on top.
type GetFailedNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetFailedNotificationsQueryHandler creates a handler for failed-record
// reads.
func NewGetFailedNotificationsQueryHandler(db *gorm.DB) GetFailedNotificationsQueryHandler {
	return GetFailedNotificationsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetFailedNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetFailedNotificationsQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+notificationColumns+`
		FROM notifications
		WHERE status = ?
		ORDER BY created_at ASC
	`, notification.Failed.String()).Rows()
	if err != nil {
		return nil, err
	}

	return scanNotificationRows(rows)
}
