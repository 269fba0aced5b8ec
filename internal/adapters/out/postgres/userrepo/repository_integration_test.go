package userrepo_test

import (
	"context"
	"testing"
	"time"

	"haulage/internal/adapters/out/postgres/userrepo"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *pgcontainer.PostgresContainer
	db         *gorm.DB
	repository *userrepo.GormUserRepository
	tracker    *MockAggregateTracker
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}))
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = userrepo.NewGormUserRepository(suite.db, suite.tracker)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	transporter, err := user.NewUser(kernel.NewUUID(), "Ada Carrier", user.UserTypeTransporter, now)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", transporter.ID(), transporter).Once()
	suite.Require().NoError(suite.repository.Add(ctx, transporter))

	restored, err := suite.repository.Get(ctx, transporter.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(transporter.ID()))
	suite.Equal("Ada Carrier", restored.Name())
	suite.Equal(user.UserTypeTransporter, restored.Type())
	suite.False(restored.IsVerified())
	suite.True(restored.IsAvailable())
	suite.Equal(0, restored.ActiveOrders())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_PersistsCounterAndFlags() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	transporter, err := user.NewUser(kernel.NewUUID(), "Ada Carrier", user.UserTypeTransporter, now)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", transporter.ID(), transporter).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, transporter))

	suite.Require().NoError(transporter.MarkVerified(now))
	suite.Require().NoError(transporter.IncrementActiveOrders(now))
	suite.Require().NoError(transporter.SetAvailability(false, now))
	suite.Require().NoError(suite.repository.Update(ctx, transporter))

	restored, err := suite.repository.Get(ctx, transporter.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsVerified())
	suite.False(restored.IsAvailable())
	suite.Equal(1, restored.ActiveOrders())
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	transporter, err := user.NewUser(kernel.NewUUID(), "Ada Carrier", user.UserTypeTransporter, now)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), transporter)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
