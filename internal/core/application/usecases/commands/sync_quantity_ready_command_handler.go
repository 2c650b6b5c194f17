package commands

import (
	"context"
)

// SyncQuantityReadyCommandHandler recomputes one item's ready count from its
// current piece state and persists the result.
type SyncQuantityReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSyncQuantityReadyCommandHandler creates a handler for ready-count
// backfills.
func NewSyncQuantityReadyCommandHandler(uowFactory OrderUoWFactory) SyncQuantityReadyCommandHandler {
	return SyncQuantityReadyCommandHandler{uowFactory: uowFactory}
}

// Handle processes the re-sync command.
func (h *SyncQuantityReadyCommandHandler) Handle(ctx context.Context, cmd SyncQuantityReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	item, err := aggregate.Item(cmd.ItemID())
	if err != nil {
		return err
	}
	item.SyncQuantityReady()

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
