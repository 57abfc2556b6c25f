package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRiderDeliveriesQueryHandler reads a rider's deliveries.
type GetRiderDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderDeliveriesQueryHandler creates a handler for rider delivery reads.
func NewGetRiderDeliveriesQueryHandler(db *gorm.DB) GetRiderDeliveriesQueryHandler {
	return GetRiderDeliveriesQueryHandler{db: db}
}

// Handle executes the query. A rider with no deliveries gets an empty slice.
func (h GetRiderDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetRiderDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT id, order_id, rider_id, status, assigned_at, picked_up_at, delivered_at
		FROM deliveries
		WHERE rider_id = ?
		ORDER BY assigned_at DESC
	`
	args := []any{query.RiderID().Bytes()}
	if query.ActiveOnly() {
		sqlQuery = `
			SELECT id, order_id, rider_id, status, assigned_at, picked_up_at, delivered_at
			FROM deliveries
			WHERE rider_id = ? AND status IN (?, ?)
			ORDER BY assigned_at DESC
		`
		args = append(args, delivery.Assigned.String(), delivery.PickedUp.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)
	for rows.Next() {
		var resp DeliveryResponse
		var id, orderID, riderID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&riderID,
			&resp.Status,
			&resp.AssignedAt,
			&resp.PickedUpAt,
			&resp.DeliveredAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.RiderID, err = kernel.UUIDFromBytes(riderID[:]); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
