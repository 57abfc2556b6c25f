package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GetNotificationStatsQueryHandler computes pipeline counters in a single
// scan over the notifications table.
type GetNotificationStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationStatsQueryHandler creates a handler for pipeline stats.
func NewGetNotificationStatsQueryHandler(db *gorm.DB) GetNotificationStatsQueryHandler {
	return GetNotificationStatsQueryHandler{db: db}
}

// Handle executes the stats query.
func (h GetNotificationStatsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationStatsQuery,
) (NotificationStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return NotificationStatsResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM notifications
	`,
		notification.Success.String(),
		notification.Failed.String(),
		notification.Skipped.String(),
		notification.Pending.String(),
		notification.Processing.String(),
	).Row()

	var resp NotificationStatsResponse
	err := row.Scan(
		&resp.Total,
		&resp.Success,
		&resp.Failed,
		&resp.Skipped,
		&resp.Pending,
		&resp.Processing,
	)
	if err != nil {
		return NotificationStatsResponse{}, err
	}

	return resp, nil
}
