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

func TestBroadcastPendingOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewBroadcastPendingOrdersCommand(10*time.Minute, 50)
	require.NoError(t, err)

	stale := []*order.Order{
		fixturePendingOrder(t, kernel.NewUUID()),
		fixturePendingOrder(t, kernel.NewUUID()),
	}

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetPendingCreatedBefore", mock.Anything, mock.AnythingOfType("time.Time"), 50).
			Return(stale, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Notify", mock.Anything, ports.EventOrderBroadcast, stale[0], mock.Anything).Return(nil).Once()
	dispatcher.On("Notify", mock.Anything, ports.EventOrderBroadcast, stale[1], mock.Anything).Return(nil).Once()

	h := commands.NewBroadcastPendingOrdersCommandHandler(factory, dispatcher)
	count, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	orderRepo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestBroadcastPendingOrdersCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewBroadcastPendingOrdersCommand(10*time.Minute, 50)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetPendingCreatedBefore", mock.Anything, mock.AnythingOfType("time.Time"), 50).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	h := commands.NewBroadcastPendingOrdersCommandHandler(factory, dispatcher)
	count, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	dispatcher.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewBroadcastPendingOrdersCommand_Validation(t *testing.T) {
	_, err := commands.NewBroadcastPendingOrdersCommand(0, 50)
	require.Error(t, err)

	_, err = commands.NewBroadcastPendingOrdersCommand(time.Minute, 0)
	require.Error(t, err)
}
