package commands_test

import (
	"testing"

	"cleanmatex/internal/core/application/usecases/commands"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBulkChangeStatusCommandHandler_Handle_FailOpen(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewTenantID()
	first := newProcessingOrder(t, tenantID, 1)
	second := newProcessingOrder(t, tenantID, 1)
	missing := kernel.NewUUID()

	repo := new(MockOrderRepository)
	audit := new(MockAuditLog)
	validator := new(MockTransitionValidator)
	uow := new(MockUoW)
	factory := new(MockTransitionUoWFactory)

	// Each member runs in its own transaction.
	factory.On("Create").Return(uow)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("TransitionValidator").Return(validator)
	uow.On("AuditLog").Return(audit)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil)
	validator.On("Execute", mock.Anything, mock.Anything, order.Preparation, "op-10").Return(nil)
	repo.On("Get", mock.Anything, tenantID, first.ID()).Return(first, nil)
	repo.On("Get", mock.Anything, tenantID, missing).
		Return(nil, errs.NewObjectNotFoundError("order_id", missing.String()))
	repo.On("Get", mock.Anything, tenantID, second.ID()).Return(second, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	cmd, err := commands.NewBulkChangeStatusCommand(
		tenantID,
		[]kernel.UUID{first.ID(), missing, second.ID()},
		order.Preparation,
		"op-10",
	)
	require.NoError(t, err)

	single := commands.NewChangeStatusCommandHandler(factory, new(MockSettingsProvider), new(MockAssemblyTasks), nil)
	h := commands.NewBulkChangeStatusCommandHandler(single)
	result, err := h.Handle(ctx, cmd)

	// The failing member is itemized; the rest still went through.
	require.ErrorIs(t, err, errs.ErrPartialBatch)
	require.Len(t, result.Succeeded, 2)
	require.Len(t, result.Failures, 1)
	require.Equal(t, missing.String(), result.Failures[0].Ref)
	require.Equal(t, order.Preparation, first.Status())
	require.Equal(t, order.Preparation, second.Status())
}

func TestBulkChangeStatusCommand_RequiresOrderIDs(t *testing.T) {
	_, err := commands.NewBulkChangeStatusCommand(
		kernel.NewTenantID(), nil, order.Preparation, "op-10",
	)
	require.ErrorIs(t, err, commands.ErrOrderIDsAreRequired)
}
