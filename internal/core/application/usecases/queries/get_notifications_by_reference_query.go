package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetNotificationsByReferenceQueryIsNotConstructed = errors.New(
	"GetNotificationsByReferenceQuery must be created via NewGetNotificationsByReferenceQuery constructor",
)

// GetNotificationsByReferenceQuery retrieves every notification recorded
// for one referenced entity (an order or a delivery).
type GetNotificationsByReferenceQuery struct {
	referenceID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNotificationsByReferenceQuery creates a query for one reference.
func NewGetNotificationsByReferenceQuery(referenceID kernel.UUID) (GetNotificationsByReferenceQuery, error) {
	if err := referenceID.Validate(); err != nil {
		return GetNotificationsByReferenceQuery{}, err
	}

	return GetNotificationsByReferenceQuery{
		referenceID: referenceID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsByReferenceQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsByReferenceQueryIsNotConstructed)
}

// ReferenceID returns the referenced entity's identifier.
func (q GetNotificationsByReferenceQuery) ReferenceID() kernel.UUID {
	return q.referenceID
}
