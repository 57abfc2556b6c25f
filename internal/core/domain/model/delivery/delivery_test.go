package delivery_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDelivery(t *testing.T) {
	validID := kernel.NewUUID()
	validOrderID := kernel.NewUUID()
	validRiderID := kernel.NewUUID()

	t.Run("should create valid delivery in Assigned status", func(t *testing.T) {
		d, err := delivery.NewDelivery(validID, validOrderID, validRiderID)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(validID))
		assert.True(t, d.OrderID().IsEqual(validOrderID))
		assert.True(t, d.RiderID().IsEqual(validRiderID))
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.True(t, d.IsActive())
		assert.False(t, d.AssignedAt().IsZero())
		assert.Nil(t, d.PickedUpAt())
		assert.Nil(t, d.DeliveredAt())
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidOrderID kernel.UUID

		d, err := delivery.NewDelivery(validID, invalidOrderID, validRiderID)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with invalid rider ID", func(t *testing.T) {
		var invalidRiderID kernel.UUID

		d, err := delivery.NewDelivery(validID, validOrderID, invalidRiderID)

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestRestoreDelivery(t *testing.T) {
	assignedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pickedUpAt := assignedAt.Add(10 * time.Minute)

	t.Run("should restore delivery with persisted state", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			delivery.PickedUp, assignedAt, &pickedUpAt, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.PickedUp, d.Status())
		assert.Equal(t, assignedAt, d.AssignedAt())
		require.NotNil(t, d.PickedUpAt())
		assert.Equal(t, pickedUpAt, *d.PickedUpAt())
		assert.Nil(t, d.DeliveredAt())
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			delivery.Unknown, assignedAt, nil, nil,
		)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("should fail validation for nil delivery", func(t *testing.T) {
		var d *delivery.Delivery

		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, d.Validate())
	})

	t.Run("should fail validation for zero value delivery", func(t *testing.T) {
		var d delivery.Delivery

		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, d.Validate())
	})
}

func TestDelivery_Pickup(t *testing.T) {
	riderID := kernel.NewUUID()

	newAssigned := func(t *testing.T) *delivery.Delivery {
		t.Helper()
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), riderID)
		require.NoError(t, err)
		return d
	}

	t.Run("should pick up by assigned rider", func(t *testing.T) {
		d := newAssigned(t)

		err := d.Pickup(riderID)

		require.NoError(t, err)
		assert.Equal(t, delivery.PickedUp, d.Status())
		assert.True(t, d.IsActive())
		require.NotNil(t, d.PickedUpAt())
	})

	t.Run("should reject pickup by another rider", func(t *testing.T) {
		d := newAssigned(t)
		otherRider := kernel.NewUUID()

		err := d.Pickup(otherRider)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, delivery.Assigned, d.Status())
	})

	t.Run("should reject double pickup", func(t *testing.T) {
		d := newAssigned(t)
		require.NoError(t, d.Pickup(riderID))

		err := d.Pickup(riderID)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should check ownership before state", func(t *testing.T) {
		d := newAssigned(t)
		require.NoError(t, d.Pickup(riderID))

		err := d.Pickup(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestDelivery_Deliver(t *testing.T) {
	riderID := kernel.NewUUID()

	newPickedUp := func(t *testing.T) *delivery.Delivery {
		t.Helper()
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), riderID)
		require.NoError(t, err)
		require.NoError(t, d.Pickup(riderID))
		return d
	}

	t.Run("should deliver by assigned rider", func(t *testing.T) {
		d := newPickedUp(t)

		err := d.Deliver(riderID)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, d.Status())
		assert.False(t, d.IsActive())
		require.NotNil(t, d.DeliveredAt())
	})

	t.Run("should reject delivering before pickup", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), riderID)
		require.NoError(t, err)

		err = d.Deliver(riderID)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, delivery.Assigned, d.Status())
	})

	t.Run("should reject delivering by another rider", func(t *testing.T) {
		d := newPickedUp(t)

		err := d.Deliver(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, delivery.PickedUp, d.Status())
	})

	t.Run("should reject double delivery", func(t *testing.T) {
		d := newPickedUp(t)
		require.NoError(t, d.Deliver(riderID))

		err := d.Deliver(riderID)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestDeliveryStatus(t *testing.T) {
	t.Run("should parse wire-format names", func(t *testing.T) {
		got, err := delivery.ParseStatus("picked_up")
		require.NoError(t, err)
		assert.Equal(t, delivery.PickedUp, got)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := delivery.ParseStatus("IN_TRANSIT")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should expose active statuses", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]delivery.Status{delivery.Assigned, delivery.PickedUp},
			delivery.ActiveStatuses())
		assert.False(t, delivery.Delivered.IsActive())
	})
}
