package commands_test

import (
	"context"
	"testing"
	"time"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetPendingCreatedBefore(
	ctx context.Context, cutoff time.Time, limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Notify(
	ctx context.Context, kind ports.EventKind, aggregate *order.Order, recipients []kernel.UUID,
) error {
	args := m.Called(ctx, kind, aggregate, recipients)
	return args.Error(0)
}

// Domain fixtures shared by the handler tests.

func fixtureLocation(t *testing.T, address string, lat, lng float64) kernel.Location {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	location, err := kernel.NewLocation(address, point)
	require.NoError(t, err)
	return location
}

func fixturePackage(t *testing.T) order.Package {
	t.Helper()
	pkg, err := order.NewPackage(3, order.Dimensions{LengthCm: 40, WidthCm: 30, HeightCm: 20}, false, "books")
	require.NoError(t, err)
	return pkg
}

func fixturePendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		customerID,
		order.ServiceTypeStandard,
		order.PriorityNormal,
		fixtureLocation(t, "1 Pickup St", 40.7128, -74.0060),
		fixtureLocation(t, "2 Dropoff Ave", 40.7484, -73.9857),
		fixturePackage(t),
		order.PriceBreakdown{BaseFee: 10, Tax: 0.8, Total: 10.8, Currency: "USD"},
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

func fixtureAcceptedOrder(t *testing.T, customerID, transporterID kernel.UUID) *order.Order {
	t.Helper()
	aggregate := fixturePendingOrder(t, customerID)
	require.NoError(t, aggregate.Accept(transporterID, nil, time.Now().UTC()))
	return aggregate
}

func fixtureTransporter(t *testing.T, id kernel.UUID) *user.User {
	t.Helper()
	transporter, err := user.RestoreUser(id, "Carrier", user.UserTypeTransporter, true, true, 0,
		time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)
	return transporter
}

func fixtureCustomer(t *testing.T, id kernel.UUID) *user.User {
	t.Helper()
	customer, err := user.NewUser(id, "Shipper", user.UserTypeCustomer, time.Now().UTC())
	require.NoError(t, err)
	return customer
}
