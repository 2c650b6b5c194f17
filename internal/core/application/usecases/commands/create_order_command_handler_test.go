package commands_test

import (
	"errors"
	"testing"
	"time"

	"cleanmatex/internal/core/application/usecases/commands"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/model/tenant"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	tenantID kernel.TenantID
	cmd      commands.CreateOrderCommand
	product  kernel.UUID

	repo     *MockOrderRepository
	stock    *MockStockDeductor
	audit    *MockAuditLog
	sequence *MockOrderNumberSequence
	uow      *MockUoW
	factory  *MockCreateOrderUoWFactory
	settings *MockSettingsProvider
	pricing  *MockPricingProvider
	tax      *MockTaxProvider
	taxCache *MockTaxRateCache
}

func newCreateOrderFixture(t *testing.T, category string) *createOrderFixture {
	t.Helper()

	f := &createOrderFixture{
		tenantID: kernel.NewTenantID(),
		product:  kernel.NewUUID(),
		repo:     new(MockOrderRepository),
		stock:    new(MockStockDeductor),
		audit:    new(MockAuditLog),
		sequence: new(MockOrderNumberSequence),
		uow:      new(MockUoW),
		factory:  new(MockCreateOrderUoWFactory),
		settings: new(MockSettingsProvider),
		pricing:  new(MockPricingProvider),
		tax:      new(MockTaxProvider),
		taxCache: new(MockTaxRateCache),
	}

	cmd, err := commands.NewCreateOrderCommand(
		f.tenantID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		false, 0, false, nil, "op-1",
		[]commands.CreateOrderItem{{ProductID: f.product, Quantity: 2}},
	)
	require.NoError(t, err)
	f.cmd = cmd

	f.settings.On("Settings", mock.Anything, f.tenantID).
		Return(tenant.DefaultSettings(), nil).Maybe()
	f.pricing.On("Product", mock.Anything, f.tenantID, f.product).
		Return(ports.ProductInfo{UnitPrice: 3.500, Category: category}, nil).Maybe()
	f.taxCache.On("Get", mock.Anything, f.tenantID).Return(0.0, false, nil).Maybe()
	f.taxCache.On("Set", mock.Anything, f.tenantID, 0.05).Return(nil).Maybe()
	f.tax.On("Rate", mock.Anything, f.tenantID).Return(0.05, nil).Maybe()

	return f
}

func (f *createOrderFixture) handler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		f.factory, f.settings, f.pricing, f.tax, f.taxCache,
	)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, "WASH_AND_IRON")

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderNumberSequence").Return(f.sequence).Once(),
		f.sequence.On("Next", mock.Anything, f.tenantID).Return("2026-000200", nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.On("AuditLog").Return(f.audit).Once(),
		f.audit.On("Record", mock.Anything, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler()
	err := h.Handle(ctx, f.cmd)
	require.NoError(t, err)

	added := f.repo.Calls[0].Arguments.Get(1).(*order.Order)
	require.Equal(t, "2026-000200", added.Number())
	require.NotNil(t, added.ReadyBy())
	require.InDelta(t, 0.05, added.TaxRate(), 1e-9)

	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_SuppliedReadyByIsHonored(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, "WASH_AND_IRON")

	readyBy := testTime().Add(72 * time.Hour)
	cmd, err := commands.NewCreateOrderCommand(
		f.tenantID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		false, 0, false, &readyBy, "op-1",
		[]commands.CreateOrderItem{{ProductID: f.product, Quantity: 2}},
	)
	require.NoError(t, err)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderNumberSequence").Return(f.sequence).Once(),
		f.sequence.On("Next", mock.Anything, f.tenantID).Return("2026-000205", nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.On("AuditLog").Return(f.audit).Once(),
		f.audit.On("Record", mock.Anything, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler()
	require.NoError(t, h.Handle(ctx, cmd))

	// The caller's deadline overrides the turnaround calculation.
	added := f.repo.Calls[0].Arguments.Get(1).(*order.Order)
	require.NotNil(t, added.ReadyBy())
	require.True(t, added.ReadyBy().Equal(readyBy))
}

func TestCreateOrderCommandHandler_Handle_RetailDeductsStock(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, order.RetailCategory)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderNumberSequence").Return(f.sequence).Once(),
		f.sequence.On("Next", mock.Anything, f.tenantID).Return("2026-000201", nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.On("StockDeductor").Return(f.stock).Once(),
		f.stock.On("Deduct", mock.Anything, f.tenantID, f.product, 2).Return(nil).Once(),
		f.uow.On("AuditLog").Return(f.audit).Once(),
		f.audit.On("Record", mock.Anything, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler()
	err := h.Handle(ctx, f.cmd)
	require.NoError(t, err)

	// Retail-only orders close immediately, bypassing the workflow.
	added := f.repo.Calls[0].Arguments.Get(1).(*order.Order)
	require.Equal(t, order.Closed, added.Status())

	f.stock.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_StockFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, order.RetailCategory)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderNumberSequence").Return(f.sequence).Once(),
		f.sequence.On("Next", mock.Anything, f.tenantID).Return("2026-000202", nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.On("StockDeductor").Return(f.stock).Once(),
		f.stock.On("Deduct", mock.Anything, f.tenantID, f.product, 2).
			Return(errors.New("insufficient stock")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler()
	err := h.Handle(ctx, f.cmd)
	require.Error(t, err)
	f.uow.AssertNotCalled(t, "Commit", ctx)
	f.uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_TaxCacheHitSkipsProvider(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, "WASH_AND_IRON")
	f.taxCache.ExpectedCalls = nil
	f.taxCache.On("Get", mock.Anything, f.tenantID).Return(0.10, true, nil).Once()

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderNumberSequence").Return(f.sequence).Once(),
		f.sequence.On("Next", mock.Anything, f.tenantID).Return("2026-000203", nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.On("AuditLog").Return(f.audit).Once(),
		f.audit.On("Record", mock.Anything, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler()
	err := h.Handle(ctx, f.cmd)
	require.NoError(t, err)

	added := f.repo.Calls[0].Arguments.Get(1).(*order.Order)
	require.InDelta(t, 0.10, added.TaxRate(), 1e-9)
	f.tax.AssertNotCalled(t, "Rate", mock.Anything, f.tenantID)
}

func TestCreateOrderCommandHandler_Handle_PricingFailureFailsClosed(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, "WASH_AND_IRON")
	f.pricing.ExpectedCalls = nil
	f.pricing.On("Product", mock.Anything, f.tenantID, f.product).
		Return(ports.ProductInfo{}, errors.New("catalog down")).Once()

	h := f.handler()
	err := h.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, errs.ErrDependencyFailed)
	f.factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, "WASH_AND_IRON")

	h := f.handler()
	err := h.Handle(ctx, commands.CreateOrderCommand{})
	require.Error(t, err)
}

func TestCreateOrderCommand_Validation(t *testing.T) {
	tenantID := kernel.NewTenantID()

	t.Run("requires items unless quick drop", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			tenantID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			false, 0, false, nil, "op-1", nil,
		)
		require.ErrorIs(t, err, commands.ErrOrderItemsAreRequired)
	})

	t.Run("quick drop allows empty items", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			tenantID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			true, 5, false, nil, "op-1", nil,
		)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, 5, cmd.QuickDropQuantity())
	})

	t.Run("requires actor", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			tenantID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			true, 5, false, nil, "", nil,
		)
		require.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("rejects unconstructed tenant id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.TenantID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			true, 5, false, nil, "op-1", nil,
		)
		require.Error(t, err)
	})
}
