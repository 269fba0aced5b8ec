package commands_test

import (
	"testing"
	"time"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_PendingByCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	pending := fixturePendingOrder(t, customerID)
	cmd, err := commands.NewCancelOrderCommand(pending.ID(), customerID, "changed_mind", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Notify", mock.Anything, ports.EventOrderCancelled, pending, mock.Anything).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(factory, dispatcher)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status())
	require.NotNil(t, cancelled.Cancellation())
	assert.Equal(t, "changed_mind", cancelled.Cancellation().Reason)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AcceptedReleasesTransporter(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	transporterID := kernel.NewUUID()
	accepted := fixtureAcceptedOrder(t, customerID, transporterID)
	transporter := fixtureTransporter(t, transporterID)
	require.NoError(t, transporter.IncrementActiveOrders(time.Now().UTC()))
	cmd, err := commands.NewCancelOrderCommand(accepted.ID(), transporterID, "vehicle_breakdown", "flat tire")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, accepted.ID()).Return(accepted, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("GetForUpdate", mock.Anything, transporterID).Return(transporter, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Update", mock.Anything, transporter).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, accepted).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Notify", mock.Anything, ports.EventOrderCancelled, accepted, mock.Anything).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(factory, dispatcher)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status())
	assert.Equal(t, 0, transporter.ActiveOrders())
	userRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_NotAParty(t *testing.T) {
	ctx := t.Context()
	pending := fixturePendingOrder(t, kernel.NewUUID())
	stranger := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(pending.ID(), stranger, "changed_mind", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(MockDispatcher))
	_, handleErr := h.Handle(ctx, cmd)

	require.ErrorIs(t, handleErr, commands.ErrNotAuthorized)
	assert.Equal(t, order.StatusPending, pending.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCancelOrderCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "", "details")

	require.Error(t, err)
}
