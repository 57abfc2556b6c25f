package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for
// DeliveryRepository, including the unique order constraint and the rider
// capacity count.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_SecondDeliveryForSameOrder_ViolatesUniqueIndex() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	first, err := delivery.NewDelivery(kernel.NewUUID(), orderID, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := delivery.NewDelivery(kernel.NewUUID(), orderID, kernel.NewUUID())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_RoundTripsTimestamps() {
	ctx := context.Background()

	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", d.ID(), d).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().NoError(d.Pickup(d.RiderID()))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.Equal(delivery.PickedUp, retrieved.Status())
	suite.NotNil(retrieved.PickedUpAt())
	suite.Nil(retrieved.DeliveredAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistentDelivery_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestExistsForOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	exists, err := suite.repository.ExistsForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.False(exists)

	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	exists, err = suite.repository.ExistsForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(exists)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestCountActiveByRider_CountsOnlyActiveStatuses() {
	ctx := context.Background()
	riderID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)

	suite.addDeliveryWithStatus(ctx, riderID, delivery.Assigned)
	suite.addDeliveryWithStatus(ctx, riderID, delivery.PickedUp)
	suite.addDeliveryWithStatus(ctx, riderID, delivery.Delivered)
	suite.addDeliveryWithStatus(ctx, kernel.NewUUID(), delivery.Assigned)

	count, err := suite.repository.CountActiveByRider(ctx, riderID)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	suite.tracker.AssertExpectations(suite.T())
}

// addDeliveryWithStatus persists a delivery restored into the given status.
func (suite *DeliveryRepositoryIntegrationTestSuite) addDeliveryWithStatus(
	ctx context.Context, riderID kernel.UUID, status delivery.Status,
) {
	now := time.Now().UTC()
	var pickedUpAt, deliveredAt *time.Time
	if status == delivery.PickedUp || status == delivery.Delivered {
		pickedUpAt = &now
	}
	if status == delivery.Delivered {
		deliveredAt = &now
	}

	d, err := delivery.RestoreDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		riderID,
		status,
		now,
		pickedUpAt,
		deliveredAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, d))
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
