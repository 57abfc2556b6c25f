package notification_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() notification.Event {
	return notification.Event{
		EventType:   notification.OrderCreated,
		ReferenceID: kernel.NewUUID(),
		UserID:      kernel.NewUUID(),
		Message:     "Your order #42 has been placed.",
		Timestamp:   time.Now().UTC(),
		TraceID:     "trace-1",
	}
}

func TestParseEventType(t *testing.T) {
	t.Run("should parse known names", func(t *testing.T) {
		cases := map[string]notification.EventType{
			"ORDER_CREATED":      notification.OrderCreated,
			"ORDER_CONFIRMED":    notification.OrderConfirmed,
			"ORDER_CANCELLED":    notification.OrderCancelled,
			"PAYMENT_SUCCESS":    notification.PaymentSuccess,
			"PAYMENT_FAILED":     notification.PaymentFailed,
			"PAYMENT_REFUNDED":   notification.PaymentRefunded,
			"DELIVERY_ASSIGNED":  notification.DeliveryAssigned,
			"DELIVERY_PICKED":    notification.DeliveryPicked,
			"DELIVERY_COMPLETED": notification.DeliveryCompleted,
		}

		for name, want := range cases {
			assert.Equal(t, want, notification.ParseEventType(name), "name %s", name)
		}
	})

	t.Run("should parse case-insensitively", func(t *testing.T) {
		assert.Equal(t, notification.OrderCreated, notification.ParseEventType(" order_created "))
	})

	t.Run("should fall back to UnknownEvent for unrecognized names", func(t *testing.T) {
		assert.Equal(t, notification.UnknownEvent, notification.ParseEventType("ORDER_TELEPORTED"))
		assert.Equal(t, notification.UnknownEvent, notification.ParseEventType(""))
	})

	t.Run("should expose default messages and priorities", func(t *testing.T) {
		assert.NotEmpty(t, notification.PaymentFailed.DefaultMessage())
		assert.Equal(t, notification.PriorityHigh, notification.PaymentFailed.Priority())
		assert.Equal(t, notification.PriorityLow, notification.UnknownEvent.Priority())
	})
}

func TestEvent_Validate(t *testing.T) {
	t.Run("should validate complete event", func(t *testing.T) {
		require.NoError(t, validEvent().Validate())
	})

	t.Run("should fail without reference ID", func(t *testing.T) {
		e := validEvent()
		e.ReferenceID = kernel.UUID{}

		err := e.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "referenceId")
	})

	t.Run("should fail without user ID", func(t *testing.T) {
		e := validEvent()
		e.UserID = kernel.UUID{}

		err := e.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "userId")
	})
}

func TestEvent_ResolvedMessage(t *testing.T) {
	t.Run("should prefer the event's own message", func(t *testing.T) {
		e := validEvent()

		assert.Equal(t, "Your order #42 has been placed.", e.ResolvedMessage())
	})

	t.Run("should fall back to the event type default", func(t *testing.T) {
		e := validEvent()
		e.Message = ""

		assert.Equal(t, notification.OrderCreated.DefaultMessage(), e.ResolvedMessage())
	})
}

func TestNewNotification(t *testing.T) {
	t.Run("should create pending record from event", func(t *testing.T) {
		event := validEvent()

		n, err := notification.NewNotification(kernel.NewUUID(), event)

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Equal(t, notification.Pending, n.Status())
		assert.Equal(t, notification.OrderCreated, n.EventType())
		assert.True(t, n.ReferenceID().IsEqual(event.ReferenceID))
		assert.True(t, n.UserID().IsEqual(event.UserID))
		assert.Equal(t, event.Message, n.Message())
		assert.Equal(t, notification.UnknownChannel, n.Channel())
		assert.Equal(t, "trace-1", n.TraceID())
		assert.Equal(t, event.Timestamp, n.EventTimestamp())
		assert.Zero(t, n.RetryCount())
		assert.Nil(t, n.ProcessedAt())
	})

	t.Run("should default a missing event timestamp to creation time", func(t *testing.T) {
		event := validEvent()
		event.Timestamp = time.Time{}

		n, err := notification.NewNotification(kernel.NewUUID(), event)

		require.NoError(t, err)
		assert.Equal(t, n.CreatedAt(), n.EventTimestamp())
	})

	t.Run("should fail with invalid event", func(t *testing.T) {
		event := validEvent()
		event.ReferenceID = kernel.UUID{}

		n, err := notification.NewNotification(kernel.NewUUID(), event)

		require.Error(t, err)
		assert.Nil(t, n)
	})
}

func TestNotification_Lifecycle(t *testing.T) {
	newPending := func(t *testing.T) *notification.Notification {
		t.Helper()
		n, err := notification.NewNotification(kernel.NewUUID(), validEvent())
		require.NoError(t, err)
		return n
	}

	t.Run("should finish successfully", func(t *testing.T) {
		n := newPending(t)

		require.NoError(t, n.MarkProcessing())
		assert.Equal(t, notification.Processing, n.Status())

		n.MarkSuccess(notification.Log)

		assert.Equal(t, notification.Success, n.Status())
		assert.Equal(t, notification.Log, n.Channel())
		assert.Empty(t, n.ErrorMessage())
		require.NotNil(t, n.ProcessedAt())
	})

	t.Run("should record channel errors on failure", func(t *testing.T) {
		n := newPending(t)
		require.NoError(t, n.MarkProcessing())

		n.MarkFailed("EMAIL: mailbox full; SMS: number unreachable")

		assert.Equal(t, notification.Failed, n.Status())
		assert.Contains(t, n.ErrorMessage(), "mailbox full")
	})

	t.Run("should skip duplicates without processing", func(t *testing.T) {
		n := newPending(t)

		n.MarkSkipped("Duplicate event")

		assert.Equal(t, notification.Skipped, n.Status())
		assert.Equal(t, "Duplicate event", n.ErrorMessage())
		require.NotNil(t, n.ProcessedAt())
	})

	t.Run("should reject processing a finished record", func(t *testing.T) {
		n := newPending(t)
		require.NoError(t, n.MarkProcessing())
		n.MarkSuccess(notification.Log)

		err := n.MarkProcessing()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestNotification_PrepareRetry(t *testing.T) {
	newFailed := func(t *testing.T) *notification.Notification {
		t.Helper()
		n, err := notification.NewNotification(kernel.NewUUID(), validEvent())
		require.NoError(t, err)
		require.NoError(t, n.MarkProcessing())
		n.MarkFailed("LOG: sink closed")
		return n
	}

	t.Run("should ready failed record for another pass", func(t *testing.T) {
		n := newFailed(t)

		err := n.PrepareRetry()

		require.NoError(t, err)
		assert.Equal(t, notification.Processing, n.Status())
		assert.Equal(t, 1, n.RetryCount())
		assert.Empty(t, n.ErrorMessage())
		assert.Equal(t, notification.UnknownChannel, n.Channel())
		assert.Nil(t, n.ProcessedAt())
	})

	t.Run("should count successive retries", func(t *testing.T) {
		n := newFailed(t)

		require.NoError(t, n.PrepareRetry())
		n.MarkFailed("LOG: sink closed")
		require.NoError(t, n.PrepareRetry())

		assert.Equal(t, 2, n.RetryCount())
	})

	t.Run("should reject retrying a successful record", func(t *testing.T) {
		n, err := notification.NewNotification(kernel.NewUUID(), validEvent())
		require.NoError(t, err)
		require.NoError(t, n.MarkProcessing())
		n.MarkSuccess(notification.Log)

		err = n.PrepareRetry()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should reject retrying a skipped record", func(t *testing.T) {
		n, err := notification.NewNotification(kernel.NewUUID(), validEvent())
		require.NoError(t, err)
		n.MarkSkipped("Duplicate event")

		err = n.PrepareRetry()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestChannel(t *testing.T) {
	t.Run("should parse wire-format names", func(t *testing.T) {
		got, err := notification.ParseChannel("email")
		require.NoError(t, err)
		assert.Equal(t, notification.Email, got)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := notification.ParseChannel("CARRIER_PIGEON")
		require.Error(t, err)
	})

	t.Run("should render wire-format names", func(t *testing.T) {
		assert.Equal(t, "LOG", notification.Log.String())
		assert.Equal(t, "EMAIL", notification.Email.String())
		assert.Equal(t, "SMS", notification.SMS.String())
		assert.Equal(t, "PUSH", notification.Push.String())
	})
}
