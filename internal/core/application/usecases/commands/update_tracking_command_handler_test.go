package commands_test

import (
	"testing"
	"time"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTrackingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	transporterID := kernel.NewUUID()
	aggregate := fixtureAcceptedOrder(t, kernel.NewUUID(), transporterID)
	require.NoError(t, aggregate.TransitionTo(order.StatusPickupScheduled, transporterID, "", nil, time.Now().UTC()))
	require.NoError(t, aggregate.TransitionTo(order.StatusEnRoutePickup, transporterID, "", nil, time.Now().UTC()))

	point, err := kernel.NewGeoPoint(40.7300, -73.9950)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateTrackingCommand(aggregate.ID(), transporterID, point, 15, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTrackingCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated.Tracking())
	assert.Equal(t, 15.0, updated.Tracking().AccuracyMeters)
	assert.Len(t, updated.Route(), 1)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateTrackingCommandHandler_Handle_NotAssignedTransporter(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureAcceptedOrder(t, kernel.NewUUID(), kernel.NewUUID())
	stranger := kernel.NewUUID()

	point, err := kernel.NewGeoPoint(40.7300, -73.9950)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateTrackingCommand(aggregate.ID(), stranger, point, 15, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTrackingCommandHandler(factory)
	_, handleErr := h.Handle(ctx, cmd)

	require.ErrorIs(t, handleErr, commands.ErrNotAuthorized)
	assert.Nil(t, aggregate.Tracking())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateTrackingCommandHandler_Handle_NotInTransit(t *testing.T) {
	ctx := t.Context()
	transporterID := kernel.NewUUID()
	delivered := fixtureDeliveredOrder(t, kernel.NewUUID(), transporterID)

	point, err := kernel.NewGeoPoint(40.7300, -73.9950)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateTrackingCommand(delivered.ID(), transporterID, point, 15, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, delivered.ID()).Return(delivered, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTrackingCommandHandler(factory)
	_, handleErr := h.Handle(ctx, cmd)

	require.ErrorIs(t, handleErr, order.ErrTrackingNotAllowed)
}
