package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler computes aggregate order counters in a single
// scan over the orders table.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for order stats.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the stats query.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (OrderStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatsResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COALESCE(SUM(total_amount) FILTER (WHERE status IN (?, ?, ?)), 0)
		FROM orders
	`,
		order.Delivered.String(),
		order.Cancelled.String(),
		order.PaymentPending.String(),
		order.Paid.String(), order.Confirmed.String(), order.Delivered.String(),
	).Row()

	var resp OrderStatsResponse
	err := row.Scan(
		&resp.TotalOrders,
		&resp.CompletedOrders,
		&resp.CancelledOrders,
		&resp.PendingOrders,
		&resp.TotalRevenue,
	)
	if err != nil {
		return OrderStatsResponse{}, err
	}

	return resp, nil
}
