// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire name, indexed for the reconciliation job and
// the stats query.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName   string          `gorm:"type:varchar(255)"`
	RestaurantName string          `gorm:"type:varchar(255)"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status         string          `gorm:"type:varchar(32);index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		UserID:         aggregate.UserID().Bytes(),
		CustomerName:   aggregate.CustomerName(),
		RestaurantName: aggregate.RestaurantName(),
		TotalAmount:    aggregate.TotalAmount(),
		Status:         aggregate.Status().String(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

// toDomain reconstructs the order aggregate from a database row using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		userID,
		dto.CustomerName,
		dto.RestaurantName,
		dto.TotalAmount,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
