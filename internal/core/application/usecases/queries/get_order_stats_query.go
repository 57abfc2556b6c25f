package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery retrieves aggregate order counters for monitoring.
type GetOrderStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a parameterless stats query.
func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// OrderStatsResponse summarizes the order book.
// TotalRevenue counts orders whose payment settled: Paid, Confirmed, and
// Delivered statuses.
type OrderStatsResponse struct {
	TotalOrders     int64
	CompletedOrders int64
	CancelledOrders int64
	PendingOrders   int64
	TotalRevenue    decimal.Decimal
}
