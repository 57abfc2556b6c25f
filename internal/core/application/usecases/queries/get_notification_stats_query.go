package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetNotificationStatsQueryIsNotConstructed = errors.New(
	"GetNotificationStatsQuery must be created via NewGetNotificationStatsQuery constructor",
)

// GetNotificationStatsQuery retrieves pipeline counters for monitoring.
type GetNotificationStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetNotificationStatsQuery creates a parameterless stats query.
func NewGetNotificationStatsQuery() GetNotificationStatsQuery {
	return GetNotificationStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationStatsQueryIsNotConstructed)
}

// NotificationStatsResponse summarizes the notification pipeline.
// Processing counts records stuck mid-flight by a consumer crash.
type NotificationStatsResponse struct {
	Total      int64
	Success    int64
	Failed     int64
	Skipped    int64
	Pending    int64
	Processing int64
}
