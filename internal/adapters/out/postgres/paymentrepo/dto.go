// Package paymentrepo provides data transfer objects and mapping functions
// for payment persistence. Payment rows are append-only; every charge attempt
// is recorded and the latest one wins for reads.
package paymentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for persisting payment records.
type PaymentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status      string          `gorm:"type:varchar(32)"`
	PaymentTime time.Time
}

// TableName overrides GORM's default naming convention to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment record to its database representation.
func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		Amount:      aggregate.Amount(),
		Status:      aggregate.Status().String(),
		PaymentTime: aggregate.PaymentTime(),
	}
}

// toDomain reconstructs the payment record from a database row using
// RestorePayment.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, orderID, dto.Amount, status, dto.PaymentTime)
}
