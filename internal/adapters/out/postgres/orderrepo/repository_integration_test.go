package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"cleanmatex/internal/adapters/out/postgres/orderrepo"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/errs"

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

// OrderRepositoryIntegrationTestSuite provides integration tests for the
// order repository using PostgreSQL containers to verify database
// persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	tenantID   kernel.TenantID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PieceDTO{},
		&orderrepo.StepRecordDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_pieces, order_step_records").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.tenantID = kernel.NewTenantID()
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsFullAggregate() {
	ctx := context.Background()

	original := suite.createTestOrder(3)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, suite.tenantID, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.TenantID(), retrieved.TenantID())
	suite.Equal(original.Number(), retrieved.Number())
	suite.Equal(order.Intake, retrieved.Status())
	suite.Equal(order.StageProcessing, retrieved.Stage())
	suite.Equal(original.CustomerID(), retrieved.CustomerID())
	suite.InDelta(original.Total(), retrieved.Total(), 0.0001)

	suite.Require().Len(retrieved.Items(), 1)
	item := retrieved.Items()[0]
	suite.Equal(3, item.Quantity())
	suite.Equal(0, item.QuantityReady())

	pieces := item.LivePieces()
	suite.Require().Len(pieces, 3)
	for i, piece := range pieces {
		suite.Equal(i+1, piece.Sequence())
		suite.Equal(order.PieceIntake, piece.Status())
	}
	suite.Equal("BLUE", pieces[0].Attributes().Color)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OtherTenant_ReturnsNotFoundError() {
	ctx := context.Background()

	original := suite.createTestOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	_, err := suite.repository.Get(ctx, kernel.NewTenantID(), original.ID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_TombstonedOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	original := suite.createTestOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	original.Tombstone()
	suite.Require().NoError(suite.repository.Update(ctx, original))

	_, err := suite.repository.Get(ctx, suite.tenantID, original.ID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsPieceStateAndStepRecords() {
	ctx := context.Background()

	original := suite.createTestOrder(2)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	pieceID := original.Items()[0].LivePieces()[0].ID()
	ready := order.PieceReady
	_, err := original.UpdatePiece(pieceID, order.PiecePatch{Status: &ready})
	suite.Require().NoError(err)

	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	_, created, err := original.RecordStep(original.Items()[0].ID(), "WASH", "op-1", at)
	suite.Require().NoError(err)
	suite.True(created)

	suite.Require().NoError(suite.repository.Update(ctx, original))

	retrieved, err := suite.repository.Get(ctx, suite.tenantID, original.ID())
	suite.Require().NoError(err)

	suite.Equal(1, retrieved.Items()[0].QuantityReady())

	suite.Require().Len(retrieved.StepRecords(), 1)
	suite.Equal("WASH", retrieved.StepRecords()[0].StepCode())
	suite.Equal("op-1", retrieved.StepRecords()[0].Actor())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTombstonedPieces() {
	ctx := context.Background()

	original := suite.createTestOrder(3)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	pieceID := original.Items()[0].LivePieces()[1].ID()
	suite.Require().NoError(original.DeletePiece(pieceID))
	suite.Require().NoError(suite.repository.Update(ctx, original))

	retrieved, err := suite.repository.Get(ctx, suite.tenantID, original.ID())
	suite.Require().NoError(err)

	item := retrieved.Items()[0]
	suite.Len(item.Pieces(), 3)
	live := item.LivePieces()
	suite.Require().Len(live, 2)
	suite.Equal(1, live[0].Sequence())
	suite.Equal(2, live[1].Sequence())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestOrder(1))
	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByPiece_ResolvesOwningOrder() {
	ctx := context.Background()

	original := suite.createTestOrder(2)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	pieceID := original.Items()[0].LivePieces()[1].ID()

	retrieved, err := suite.repository.GetByPiece(ctx, suite.tenantID, pieceID)
	suite.Require().NoError(err)
	suite.Equal(original.ID(), retrieved.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByPiece_UnknownPiece_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.GetByPiece(ctx, suite.tenantID, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOverdue_FiltersByDeadlineStatusAndTenant() {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	overdue := suite.createTestOrderReadyBy(now.Add(-2 * time.Hour))
	onTime := suite.createTestOrderReadyBy(now.Add(2 * time.Hour))
	alreadyReady := suite.createTestOrderReadyBy(now.Add(-1 * time.Hour))
	suite.Require().NoError(alreadyReady.ApplyTransition(order.Ready))

	suite.Require().NoError(suite.repository.Add(ctx, overdue))
	suite.Require().NoError(suite.repository.Add(ctx, onTime))
	suite.Require().NoError(suite.repository.Add(ctx, alreadyReady))

	otherTenant := kernel.NewTenantID()
	otherOrder := suite.newOrder(otherTenant, 1, ptrTime(now.Add(-3*time.Hour)))
	suite.Require().NoError(suite.repository.Add(ctx, otherOrder))

	result, err := suite.repository.GetOverdue(ctx, suite.tenantID, now)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(overdue.ID(), result[0].ID())

	all, err := suite.repository.GetAllOverdue(ctx, now)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

// createTestOrder creates a processing order with one item of the given
// quantity for the suite tenant.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(quantity int) *order.Order {
	return suite.newOrder(suite.tenantID, quantity, nil)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderReadyBy(readyBy time.Time) *order.Order {
	return suite.newOrder(suite.tenantID, 1, &readyBy)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(
	tenantID kernel.TenantID, quantity int, readyBy *time.Time,
) *order.Order {
	testOrder, err := order.NewOrder(order.NewOrderParams{
		ID:         kernel.NewUUID(),
		TenantID:   tenantID,
		Number:     "2026-" + kernel.NewUUID().String()[:6],
		CustomerID: kernel.NewUUID(),
		BranchID:   kernel.NewUUID(),
		ReadyBy:    readyBy,
		Items: []order.ItemParams{{
			ProductID: kernel.NewUUID(),
			Category:  "WASH_AND_IRON",
			Quantity:  quantity,
			UnitPrice: 2.500,
			BaseAttrs: order.PieceAttributes{Color: "BLUE"},
		}},
	})
	suite.Require().NoError(err)
	return testOrder
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
