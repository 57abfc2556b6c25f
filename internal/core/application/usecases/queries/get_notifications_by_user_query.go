package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetNotificationsByUserQueryIsNotConstructed = errors.New(
	"GetNotificationsByUserQuery must be created via NewGetNotificationsByUserQuery constructor",
)

const maxNotificationPageSize = 100

// GetNotificationsByUserQuery retrieves one page of a user's notifications,
// newest first. Pages are zero-based.
type GetNotificationsByUserQuery struct {
	userID kernel.UUID
	page   int
	size   int

	guard guard.ConstructorGuard
}

// NewGetNotificationsByUserQuery creates a paged query for a user's
// notifications.
func NewGetNotificationsByUserQuery(userID kernel.UUID, page, size int) (GetNotificationsByUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetNotificationsByUserQuery{}, err
	}
	if page < 0 {
		return GetNotificationsByUserQuery{}, errs.NewValueIsOutOfRangeError("page", page, 0, nil)
	}
	if size <= 0 || size > maxNotificationPageSize {
		return GetNotificationsByUserQuery{}, errs.NewValueIsOutOfRangeError("size", size, 1, maxNotificationPageSize)
	}

	return GetNotificationsByUserQuery{
		userID: userID,
		page:   page,
		size:   size,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsByUserQueryIsNotConstructed)
}

// UserID returns the identifier of the notified user.
func (q GetNotificationsByUserQuery) UserID() kernel.UUID {
	return q.userID
}

// Page returns the zero-based page index.
func (q GetNotificationsByUserQuery) Page() int {
	return q.page
}

// Size returns the page size.
func (q GetNotificationsByUserQuery) Size() int {
	return q.size
}
