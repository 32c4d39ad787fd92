package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ferremas/internal/adapters/out/postgres/orderrepo"
	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"
	"ferremas/internal/pkg/errs"

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

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_line_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(method order.PaymentMethod, proof string) *order.Order {
	price, err := kernel.NewMoneyFromInt(12990)
	suite.Require().NoError(err)
	itemA, err := order.NewLineItem(kernel.NewUUID(), 2, price)
	suite.Require().NoError(err)
	itemB, err := order.NewLineItem(kernel.NewUUID(), 1, price)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{itemA, itemB},
		order.Delivery, "Av. Providencia 1234, Santiago", "+56 9 1234 5678", "ring twice",
		method, proof,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.createTestOrder(order.BankTransfer, "TRX-1")

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(aggregate.ID()))
	suite.True(restored.CustomerID().IsEqual(aggregate.CustomerID()))
	suite.Equal(order.StatusPending, restored.Status())
	suite.Equal(order.Delivery, restored.DeliveryMethod())
	suite.Equal("Av. Providencia 1234, Santiago", restored.ShippingAddress())
	suite.Len(restored.LineItems(), 2)
	suite.True(restored.TotalAmount().IsEqual(aggregate.TotalAmount()))
	suite.Equal(order.BankTransfer, restored.Payment().Method())
	suite.Equal(order.PaymentAwaiting, restored.Payment().State())
	suite.Nil(restored.Fulfillment())
	suite.Nil(restored.SalesRepID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsWorkflowProgress() {
	ctx := context.Background()
	aggregate := suite.createTestOrder(order.CreditCard, "")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	salesRep := kernel.NewUUID()
	suite.Require().NoError(aggregate.Approve(salesRep))
	suite.Require().NoError(aggregate.SendToPreparation())

	carrier := "Chilexpress"
	locations := map[string]string{
		aggregate.LineItems()[0].ProductID().String(): "Pasillo A-3",
	}
	suite.Require().NoError(aggregate.MarkReady(&carrier, locations))

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusReady, restored.Status())
	suite.Require().NotNil(restored.SalesRepID())
	suite.True(restored.SalesRepID().IsEqual(salesRep))
	suite.Require().NotNil(restored.Fulfillment())
	suite.Equal(order.ReadyForHandoff, restored.Fulfillment().State())
	suite.Require().NotNil(restored.Fulfillment().Carrier())
	suite.Equal("Chilexpress", *restored.Fulfillment().Carrier())

	located := map[string]string{}
	for _, item := range restored.Fulfillment().Items() {
		if item.WarehouseLocation != "" {
			located[item.ProductID.String()] = item.WarehouseLocation
		}
	}
	suite.Equal(map[string]string{
		aggregate.LineItems()[0].ProductID().String(): "Pasillo A-3",
	}, located)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsPaymentResolution() {
	ctx := context.Background()
	aggregate := suite.createTestOrder(order.BankTransfer, "TRX-2")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	finance := kernel.NewUUID()
	suite.Require().NoError(aggregate.ConfirmPayment(finance, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.PaymentConfirmed, restored.Payment().State())
	suite.Require().NotNil(restored.Payment().ConfirmedBy())
	suite.True(restored.Payment().ConfirmedBy().IsEqual(finance))
	suite.NotNil(restored.Payment().ConfirmedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	pending := suite.createTestOrder(order.CreditCard, "")
	approved := suite.createTestOrder(order.CreditCard, "")
	suite.Require().NoError(approved.Approve(kernel.NewUUID()))

	suite.Require().NoError(suite.repository.Add(ctx, pending))
	suite.Require().NoError(suite.repository.Add(ctx, approved))

	pendingOrders, err := suite.repository.GetAllInStatus(ctx, order.StatusPending)
	suite.Require().NoError(err)
	suite.Len(pendingOrders, 1)
	suite.True(pendingOrders[0].ID().IsEqual(pending.ID()))

	approvedOrders, err := suite.repository.GetAllInStatus(ctx, order.StatusApproved)
	suite.Require().NoError(err)
	suite.Len(approvedOrders, 1)
	suite.True(approvedOrders[0].ID().IsEqual(approved.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
