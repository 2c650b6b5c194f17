package commands_test

import (
	"testing"

	"cleanmatex/internal/core/application/usecases/commands"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/model/tenant"
	"cleanmatex/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func trackingSettings(tenantID kernel.TenantID) *MockSettingsProvider {
	settings := new(MockSettingsProvider)
	settings.On("Settings", mock.Anything, tenantID).Return(tenant.DefaultSettings(), nil).Maybe()
	return settings
}

func TestUpdatePieceCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	aggregate := newProcessingOrder(t, tenantID, 3)
	item := aggregate.LiveItems()[0]
	piece := item.LivePieces()[0]

	ready := order.PieceReady
	cmd, err := commands.NewUpdatePieceCommand(
		tenantID, piece.ID(), order.PiecePatch{Status: &ready}, "op-3",
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	audit := new(MockAuditLog)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByPiece", mock.Anything, tenantID, piece.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("AuditLog").Return(audit).Once(),
		audit.On("Record", mock.Anything, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewUpdatePieceCommandHandler(factory, trackingSettings(tenantID))
	require.NoError(t, h.Handle(ctx, cmd))

	// Status patches re-sync the owning item's ready count in the same write.
	require.Equal(t, 1, item.QuantityReady())
	uow.AssertExpectations(t)
}

func TestUpdatePieceCommandHandler_Handle_UnknownPiece(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	pieceID := kernel.NewUUID()

	scanned := true
	cmd, err := commands.NewUpdatePieceCommand(
		tenantID, pieceID, order.PiecePatch{Scanned: &scanned}, "op-3",
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByPiece", mock.Anything, tenantID, pieceID).
			Return(nil, errs.NewObjectNotFoundError("piece_id", pieceID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewUpdatePieceCommandHandler(factory, trackingSettings(tenantID))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdatePieceCommandHandler_Handle_TrackingDisabled(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()

	scanned := true
	cmd, err := commands.NewUpdatePieceCommand(
		tenantID, kernel.NewUUID(), order.PiecePatch{Scanned: &scanned}, "op-3",
	)
	require.NoError(t, err)

	settings := new(MockSettingsProvider)
	settings.On("Settings", mock.Anything, tenantID).
		Return(tenant.Settings{TrackByPiece: false}, nil).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewUpdatePieceCommandHandler(factory, settings)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdatePieceCommand_RejectsEmptyPatch(t *testing.T) {
	_, err := commands.NewUpdatePieceCommand(
		kernel.NewTenantID(), kernel.NewUUID(), order.PiecePatch{}, "op-3",
	)
	require.ErrorIs(t, err, commands.ErrPiecePatchIsEmpty)
}
