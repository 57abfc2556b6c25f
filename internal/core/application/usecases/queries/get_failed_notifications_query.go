package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetFailedNotificationsQueryIsNotConstructed = errors.New(
	"GetFailedNotificationsQuery must be created via NewGetFailedNotificationsQuery constructor",
)

// GetFailedNotificationsQuery retrieves every Failed notification, the
// candidates for manual retry.
type GetFailedNotificationsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFailedNotificationsQuery creates a parameterless failed-record query.
func NewGetFailedNotificationsQuery() GetFailedNotificationsQuery {
	return GetFailedNotificationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetFailedNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetFailedNotificationsQueryIsNotConstructed)
}
