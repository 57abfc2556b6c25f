package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetNotificationsByUserQueryHandler reads one page of a user's
// notifications.
type GetNotificationsByUserQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsByUserQueryHandler creates a handler for user-scoped
// notification reads.
func NewGetNotificationsByUserQueryHandler(db *gorm.DB) GetNotificationsByUserQueryHandler {
	return GetNotificationsByUserQueryHandler{db: db}
}

// Handle executes the query.
func (h GetNotificationsByUserQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsByUserQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+notificationColumns+`
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, query.UserID().Bytes(), query.Size(), query.Page()*query.Size()).Rows()
	if err != nil {
		return nil, err
	}

	return scanNotificationRows(rows)
}
