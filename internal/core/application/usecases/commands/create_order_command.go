package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired   = errors.New("customer name is required")
	ErrRestaurantNameIsRequired = errors.New("restaurant name is required")
	ErrTotalAmountIsInvalid     = errors.New("total amount must be greater than 0")
)

// CreateOrderCommand represents a request to place a new order and charge
// the customer for it.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	userID         kernel.UUID
	customerName   string
	restaurantName string
	totalAmount    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the IDs are valid, names are not empty, and the amount is positive.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	customerName string,
	restaurantName string,
	totalAmount decimal.Decimal,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setUserID(userID),
		orderCommand.setCustomerName(customerName),
		orderCommand.setRestaurantName(restaurantName),
		orderCommand.setTotalAmount(totalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the ordering user's identifier.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// CustomerName returns the customer's display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// RestaurantName returns the restaurant's display name.
func (c CreateOrderCommand) RestaurantName() string {
	return c.restaurantName
}

// TotalAmount returns the amount to charge.
func (c CreateOrderCommand) TotalAmount() decimal.Decimal {
	return c.totalAmount
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(name string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = name
	return nil
}

func (c *CreateOrderCommand) setRestaurantName(name string) error {
	if name == "" {
		return ErrRestaurantNameIsRequired
	}

	c.restaurantName = name
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrTotalAmountIsInvalid
	}

	c.totalAmount = amount
	return nil
}
