package commands

import (
	"context"
	"time"

	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"
)

// DeletePieceCommandHandler tombstones a piece within its order aggregate.
type DeletePieceCommandHandler struct {
	uowFactory OrderUoWFactory
	settings   ports.TenantSettingsProvider
	now        func() time.Time
}

// NewDeletePieceCommandHandler creates a handler for piece removal.
func NewDeletePieceCommandHandler(
	uowFactory OrderUoWFactory,
	settings ports.TenantSettingsProvider,
) DeletePieceCommandHandler {
	return DeletePieceCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		now:        time.Now,
	}
}

// Handle processes the removal command.
func (h *DeletePieceCommandHandler) Handle(ctx context.Context, cmd DeletePieceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cfg, err := h.settings.Settings(ctx, cmd.TenantID())
	if err != nil {
		return errs.NewDependencyFailureError("tenant_settings", err)
	}
	if !cfg.TrackByPiece {
		return ErrPieceTrackingDisabled
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByPiece(ctx, cmd.TenantID(), cmd.PieceID())
	if err != nil {
		return err
	}

	if err = aggregate.DeletePiece(cmd.PieceID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  aggregate.ID(),
		Actor:    cmd.Actor(),
		Action:   "piece.deleted",
		Detail:   cmd.PieceID().String(),
		At:       h.now(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
