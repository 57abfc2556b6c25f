package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderBasicQueryHandler reads the minimal order projection.
type GetOrderBasicQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderBasicQueryHandler creates a handler for minimal order reads.
func NewGetOrderBasicQueryHandler(db *gorm.DB) GetOrderBasicQueryHandler {
	return GetOrderBasicQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// does not exist.
func (h GetOrderBasicQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBasicQuery,
) (OrderBasicResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderBasicResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id, status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var resp OrderBasicResponse
	var id, userID uuid.UUID

	err := row.Scan(&id, &userID, &resp.Status)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderBasicResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return OrderBasicResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderBasicResponse{}, err
	}
	if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return OrderBasicResponse{}, err
	}

	return resp, nil
}
