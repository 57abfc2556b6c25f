package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderBasicQueryIsNotConstructed = errors.New(
	"GetOrderBasicQuery must be created via NewGetOrderBasicQuery constructor",
)

// GetOrderBasicQuery retrieves the minimal order projection used by
// internal service-to-service lookups: identity, owner, and status.
type GetOrderBasicQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderBasicQuery creates a query for the minimal order projection.
func NewGetOrderBasicQuery(orderID kernel.UUID) (GetOrderBasicQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderBasicQuery{}, err
	}

	return GetOrderBasicQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderBasicQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBasicQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderBasicQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderBasicResponse is the minimal order read model.
type OrderBasicResponse struct {
	ID     kernel.UUID
	UserID kernel.UUID
	Status string
}
