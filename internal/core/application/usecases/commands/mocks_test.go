package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cleanmatex/internal/core/application/usecases/commands"
	"cleanmatex/internal/core/domain/model/issue"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/model/tenant"
	"cleanmatex/internal/core/ports"

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

func (m *MockOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPiece(ctx context.Context, tenantID kernel.TenantID, pieceID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, pieceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOverdue(ctx context.Context, tenantID kernel.TenantID, asOf time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOverdue(ctx context.Context, asOf time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockIssueRepository struct{ mock.Mock }

func (m *MockIssueRepository) Add(ctx context.Context, aggregate *issue.Issue) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockIssueRepository) Update(ctx context.Context, aggregate *issue.Issue) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockIssueRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*issue.Issue, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issue.Issue), args.Error(1)
}

func (m *MockIssueRepository) GetOpenByOrder(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) ([]*issue.Issue, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*issue.Issue), args.Error(1)
}

type MockStockDeductor struct{ mock.Mock }

func (m *MockStockDeductor) Deduct(ctx context.Context, tenantID kernel.TenantID, productID kernel.UUID, quantity int) error {
	args := m.Called(ctx, tenantID, productID, quantity)
	return args.Error(0)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Record(ctx context.Context, entry ports.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockOrderNumberSequence struct{ mock.Mock }

func (m *MockOrderNumberSequence) Next(ctx context.Context, tenantID kernel.TenantID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

type MockTransitionValidator struct{ mock.Mock }

func (m *MockTransitionValidator) Execute(ctx context.Context, aggregate *order.Order, target order.Status, actor string) error {
	args := m.Called(ctx, aggregate, target, actor)
	return args.Error(0)
}

func (m *MockTransitionValidator) AllowedNext(ctx context.Context, aggregate *order.Order) ([]order.Status, error) {
	args := m.Called(ctx, aggregate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Status), args.Error(1)
}

type MockSettingsProvider struct{ mock.Mock }

func (m *MockSettingsProvider) Settings(ctx context.Context, tenantID kernel.TenantID) (tenant.Settings, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(tenant.Settings), args.Error(1)
}

type MockPricingProvider struct{ mock.Mock }

func (m *MockPricingProvider) Product(ctx context.Context, tenantID kernel.TenantID, productID kernel.UUID) (ports.ProductInfo, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).(ports.ProductInfo), args.Error(1)
}

type MockTaxProvider struct{ mock.Mock }

func (m *MockTaxProvider) Rate(ctx context.Context, tenantID kernel.TenantID) (float64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(float64), args.Error(1)
}

type MockTaxRateCache struct{ mock.Mock }

func (m *MockTaxRateCache) Get(ctx context.Context, tenantID kernel.TenantID) (float64, bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *MockTaxRateCache) Set(ctx context.Context, tenantID kernel.TenantID, rate float64) error {
	args := m.Called(ctx, tenantID, rate)
	return args.Error(0)
}

func (m *MockTaxRateCache) Invalidate(ctx context.Context, tenantID kernel.TenantID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

type MockAssemblyTasks struct{ mock.Mock }

func (m *MockAssemblyTasks) Exists(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssemblyTasks) CreateForOrder(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) error {
	args := m.Called(ctx, tenantID, orderID)
	return args.Error(0)
}

// MockUoW satisfies every narrow unit of work composition the handlers use.
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

func (m *MockUoW) IssueRepository() ports.IssueRepository {
	args := m.Called()
	return args.Get(0).(ports.IssueRepository)
}

func (m *MockUoW) StockDeductor() ports.StockDeductor {
	args := m.Called()
	return args.Get(0).(ports.StockDeductor)
}

func (m *MockUoW) AuditLog() ports.AuditLog {
	args := m.Called()
	return args.Get(0).(ports.AuditLog)
}

func (m *MockUoW) OrderNumberSequence() ports.OrderNumberSequence {
	args := m.Called()
	return args.Get(0).(ports.OrderNumberSequence)
}

func (m *MockUoW) TransitionValidator() ports.TransitionValidator {
	args := m.Called()
	return args.Get(0).(ports.TransitionValidator)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitionUoW)
}

type MockSplitUoWFactory struct{ mock.Mock }

func (m *MockSplitUoWFactory) Create() commands.SplitUoW {
	args := m.Called()
	return args.Get(0).(commands.SplitUoW)
}

type MockIssueUoWFactory struct{ mock.Mock }

func (m *MockIssueUoWFactory) Create() commands.IssueUoW {
	args := m.Called()
	return args.Get(0).(commands.IssueUoW)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTime() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func newProcessingOrder(t *testing.T, tenantID kernel.TenantID, quantity int) *order.Order {
	t.Helper()

	o, err := order.NewOrder(order.NewOrderParams{
		ID:         kernel.NewUUID(),
		TenantID:   tenantID,
		Number:     "2026-000100",
		CustomerID: kernel.NewUUID(),
		BranchID:   kernel.NewUUID(),
		Items: []order.ItemParams{{
			ProductID: kernel.NewUUID(),
			Category:  "WASH_AND_IRON",
			Quantity:  quantity,
			UnitPrice: 2.000,
		}},
	})
	require.NoError(t, err)
	return o
}
