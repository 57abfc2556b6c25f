package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have distinct values", func(t *testing.T) {
		statuses := []order.Status{
			order.Unknown,
			order.Created,
			order.PaymentPending,
			order.Paid,
			order.Confirmed,
			order.PaymentFailed,
			order.Cancelled,
			order.Delivered,
		}

		for i, status1 := range statuses {
			for j, status2 := range statuses {
				if i != j {
					assert.NotEqual(t, status1, status2,
						"statuses at indices %d and %d should be different", i, j)
				}
			}
		}
	})

	t.Run("should have Unknown as zero value", func(t *testing.T) {
		var status order.Status
		assert.Equal(t, order.Unknown, status)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Created,
			order.PaymentPending,
			order.Paid,
			order.Confirmed,
			order.PaymentFailed,
			order.Cancelled,
			order.Delivered,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})

	t.Run("should reject undefined status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(100)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire-format names", func(t *testing.T) {
		assert.Equal(t, "CREATED", order.Created.String())
		assert.Equal(t, "PAYMENT_PENDING", order.PaymentPending.String())
		assert.Equal(t, "PAID", order.Paid.String())
		assert.Equal(t, "CONFIRMED", order.Confirmed.String())
		assert.Equal(t, "PAYMENT_FAILED", order.PaymentFailed.String())
		assert.Equal(t, "CANCELLED", order.Cancelled.String())
		assert.Equal(t, "DELIVERED", order.Delivered.String())
	})

	t.Run("should return UNKNOWN for undefined values", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.Unknown.String())
		assert.Equal(t, "UNKNOWN", order.Status(42).String())
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse wire-format names", func(t *testing.T) {
		cases := map[string]order.Status{
			"CREATED":         order.Created,
			"PAYMENT_PENDING": order.PaymentPending,
			"PAID":            order.Paid,
			"CONFIRMED":       order.Confirmed,
			"PAYMENT_FAILED":  order.PaymentFailed,
			"CANCELLED":       order.Cancelled,
			"DELIVERED":       order.Delivered,
		}

		for name, want := range cases {
			got, err := order.ParseStatus(name)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should parse case-insensitively with surrounding spaces", func(t *testing.T) {
		got, err := order.ParseStatus("  paid ")

		require.NoError(t, err)
		assert.Equal(t, order.Paid, got)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "UNKNOWN", "SHIPPED", "paid!"} {
			got, err := order.ParseStatus(name)

			require.Error(t, err)
			assert.Equal(t, order.Unknown, got)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("should allow defined edges", func(t *testing.T) {
		allowed := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Created, order.PaymentPending},
			{order.Created, order.Cancelled},
			{order.PaymentPending, order.Paid},
			{order.PaymentPending, order.PaymentFailed},
			{order.PaymentPending, order.Cancelled},
			{order.Paid, order.Confirmed},
			{order.Paid, order.Cancelled},
			{order.PaymentFailed, order.Confirmed},
			{order.PaymentFailed, order.Cancelled},
			{order.Confirmed, order.Delivered},
			{order.Confirmed, order.Cancelled},
		}

		for _, edge := range allowed {
			t.Run(fmt.Sprintf("%s to %s", edge.from, edge.to), func(t *testing.T) {
				assert.True(t, edge.from.CanTransitionTo(edge.to))

				next, err := edge.from.TransitionTo(edge.to)
				require.NoError(t, err)
				assert.Equal(t, edge.to, next)
			})
		}
	})

	t.Run("should reject undefined edges", func(t *testing.T) {
		forbidden := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Created, order.Paid},
			{order.Created, order.Confirmed},
			{order.Created, order.Delivered},
			{order.PaymentPending, order.Confirmed},
			{order.Paid, order.Delivered},
			{order.Paid, order.PaymentPending},
			{order.PaymentFailed, order.Paid},
			{order.Confirmed, order.Paid},
			{order.Delivered, order.Cancelled},
			{order.Cancelled, order.Cancelled},
			{order.Cancelled, order.Created},
		}

		for _, edge := range forbidden {
			t.Run(fmt.Sprintf("%s to %s", edge.from, edge.to), func(t *testing.T) {
				assert.False(t, edge.from.CanTransitionTo(edge.to))

				next, err := edge.from.TransitionTo(edge.to)
				require.Error(t, err)
				assert.Equal(t, order.Unknown, next)
				assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
				assert.Contains(t, err.Error(), edge.from.String())
				assert.Contains(t, err.Error(), edge.to.String())
			})
		}
	})

	t.Run("should reject transition to invalid target", func(t *testing.T) {
		_, err := order.Created.TransitionTo(order.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())

	for _, status := range []order.Status{
		order.Created, order.PaymentPending, order.Paid, order.Confirmed, order.PaymentFailed,
	} {
		assert.False(t, status.IsTerminal(), "status %s should not be terminal", status)
	}
}

func TestStatus_IsEligibleForDelivery(t *testing.T) {
	assert.True(t, order.Confirmed.IsEligibleForDelivery())
	assert.True(t, order.Paid.IsEligibleForDelivery())

	for _, status := range []order.Status{
		order.Created, order.PaymentPending, order.PaymentFailed, order.Cancelled, order.Delivered,
	} {
		assert.False(t, status.IsEligibleForDelivery(), "status %s should not be eligible", status)
	}
}
