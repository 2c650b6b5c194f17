package commands

import (
	"context"
	"errors"
	"time"

	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"
)

// ErrPieceTrackingDisabled rejects piece-level commands for tenants that do
// not track individual pieces.
var ErrPieceTrackingDisabled = errs.NewValueIsInvalidErrorWithCause(
	"piece_id", errors.New("piece tracking is disabled for this tenant"))

// UpdatePieceCommandHandler applies a patch to one piece within its order
// aggregate. The piece write and the derived ready-count update commit
// together.
type UpdatePieceCommandHandler struct {
	uowFactory OrderUoWFactory
	settings   ports.TenantSettingsProvider
	now        func() time.Time
}

// NewUpdatePieceCommandHandler creates a handler for piece patches.
func NewUpdatePieceCommandHandler(
	uowFactory OrderUoWFactory,
	settings ports.TenantSettingsProvider,
) UpdatePieceCommandHandler {
	return UpdatePieceCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		now:        time.Now,
	}
}

// Handle processes the patch command.
func (h *UpdatePieceCommandHandler) Handle(ctx context.Context, cmd UpdatePieceCommand) error {
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

	if _, err = aggregate.UpdatePiece(cmd.PieceID(), cmd.Patch()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  aggregate.ID(),
		Actor:    cmd.Actor(),
		Action:   "piece.updated",
		Detail:   cmd.PieceID().String(),
		At:       h.now(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
