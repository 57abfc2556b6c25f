package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoredDelivery(
	t *testing.T, id, orderID, riderID kernel.UUID, status delivery.Status,
) *delivery.Delivery {
	t.Helper()
	now := time.Now().UTC()
	var pickedUpAt *time.Time
	if status == delivery.PickedUp || status == delivery.Delivered {
		pickedUpAt = &now
	}
	d, err := delivery.RestoreDelivery(id, orderID, riderID, status, now, pickedUpAt, nil)
	require.NoError(t, err)
	return d
}

func TestPickupDeliveryCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should mark delivery picked up", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		riderID := kernel.NewUUID()
		cmd, err := commands.NewPickupDeliveryCommand(deliveryID, riderID)
		require.NoError(t, err)

		deliveryRepo := new(MockDeliveryRepository)
		deliveryRepo.On("Get", mock.Anything, deliveryID).
			Return(restoredDelivery(t, deliveryID, orderID, riderID, delivery.Assigned), nil).Once()
		deliveryRepo.On("Update", mock.Anything, mock.MatchedBy(func(d *delivery.Delivery) bool {
			return d.Status() == delivery.PickedUp
		})).Return(nil).Once()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(restoredOrder(t, orderID, order.Confirmed), nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("DeliveryRepository").Return(deliveryRepo)
		uow.On("OrderRepository").Return(orderRepo)

		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow)

		publisher := new(MockEventPublisher)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.EventType == notification.DeliveryPicked
		})).Return(nil).Once()

		h := commands.NewPickupDeliveryCommandHandler(factory, publisher, testLogger())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.PickedUp, result.Status())
		deliveryRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should reject pickup by another rider", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		cmd, err := commands.NewPickupDeliveryCommand(deliveryID, kernel.NewUUID())
		require.NoError(t, err)

		deliveryRepo := new(MockDeliveryRepository)
		deliveryRepo.On("Get", mock.Anything, deliveryID).
			Return(restoredDelivery(t, deliveryID, kernel.NewUUID(), kernel.NewUUID(), delivery.Assigned), nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("DeliveryRepository").Return(deliveryRepo)

		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow)

		h := commands.NewPickupDeliveryCommandHandler(factory, new(MockEventPublisher), testLogger())
		result, err := h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		deliveryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeliverOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should complete delivery and order together", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		riderID := kernel.NewUUID()
		cmd, err := commands.NewDeliverOrderCommand(deliveryID, riderID)
		require.NoError(t, err)

		deliveryRepo := new(MockDeliveryRepository)
		deliveryRepo.On("Get", mock.Anything, deliveryID).
			Return(restoredDelivery(t, deliveryID, orderID, riderID, delivery.PickedUp), nil).Once()
		deliveryRepo.On("Update", mock.Anything, mock.MatchedBy(func(d *delivery.Delivery) bool {
			return d.Status() == delivery.Delivered
		})).Return(nil).Once()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(restoredOrder(t, orderID, order.Confirmed), nil).Once()
		orderRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Delivered
		})).Return(nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("DeliveryRepository").Return(deliveryRepo)
		uow.On("OrderRepository").Return(orderRepo)

		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow)

		publisher := new(MockEventPublisher)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.EventType == notification.DeliveryCompleted
		})).Return(nil).Once()

		h := commands.NewDeliverOrderCommandHandler(factory, publisher, testLogger())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, result.Status())
		deliveryRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should complete delivery of an order still in Paid", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		riderID := kernel.NewUUID()
		cmd, err := commands.NewDeliverOrderCommand(deliveryID, riderID)
		require.NoError(t, err)

		deliveryRepo := new(MockDeliveryRepository)
		deliveryRepo.On("Get", mock.Anything, deliveryID).
			Return(restoredDelivery(t, deliveryID, orderID, riderID, delivery.PickedUp), nil).Once()
		deliveryRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(restoredOrder(t, orderID, order.Paid), nil).Once()
		orderRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Delivered
		})).Return(nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("DeliveryRepository").Return(deliveryRepo)
		uow.On("OrderRepository").Return(orderRepo)

		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow)

		publisher := new(MockEventPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

		h := commands.NewDeliverOrderCommandHandler(factory, publisher, testLogger())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, result.Status())
		orderRepo.AssertExpectations(t)
	})

	t.Run("should reject completion before pickup", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		riderID := kernel.NewUUID()
		cmd, err := commands.NewDeliverOrderCommand(deliveryID, riderID)
		require.NoError(t, err)

		deliveryRepo := new(MockDeliveryRepository)
		deliveryRepo.On("Get", mock.Anything, deliveryID).
			Return(restoredDelivery(t, deliveryID, kernel.NewUUID(), riderID, delivery.Assigned), nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("DeliveryRepository").Return(deliveryRepo)

		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow)

		h := commands.NewDeliverOrderCommandHandler(factory, new(MockEventPublisher), testLogger())
		result, err := h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}
