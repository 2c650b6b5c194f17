package commands

import (
	"context"
	"time"

	"cleanmatex/internal/core/domain/services"
	"cleanmatex/internal/core/ports"
)

// SplitOrderItemsCommandHandler moves whole items from a parent order to a
// new child order in one transaction.
type SplitOrderItemsCommandHandler struct {
	uowFactory SplitUoWFactory
	splitter   services.OrderSplitter
	now        func() time.Time
}

// NewSplitOrderItemsCommandHandler creates a handler for item-level splits.
func NewSplitOrderItemsCommandHandler(uowFactory SplitUoWFactory) SplitOrderItemsCommandHandler {
	return SplitOrderItemsCommandHandler{
		uowFactory: uowFactory,
		splitter:   services.NewOrderSplitter(),
		now:        time.Now,
	}
}

// Handle processes the split command.
func (h *SplitOrderItemsCommandHandler) Handle(
	ctx context.Context, cmd SplitOrderItemsCommand,
) (SplitReport, error) {
	if err := cmd.Validate(); err != nil {
		return SplitReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SplitReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parent, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return SplitReport{}, err
	}

	childNumber, err := uow.OrderNumberSequence().Next(ctx, cmd.TenantID())
	if err != nil {
		return SplitReport{}, err
	}

	result, err := h.splitter.SplitItems(parent, cmd.ChildID(), childNumber, cmd.ItemIDs())
	if err != nil {
		return SplitReport{}, err
	}

	if err = uow.OrderRepository().Update(ctx, parent); err != nil {
		return SplitReport{}, err
	}
	if err = uow.OrderRepository().Add(ctx, result.Child); err != nil {
		return SplitReport{}, err
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  parent.ID(),
		Actor:    cmd.Actor(),
		Action:   "order.split",
		Detail:   splitAuditDetail(cmd.Reason(), childNumber, "items", result.MovedItemIDs),
		At:       h.now(),
	}); err != nil {
		return SplitReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SplitReport{}, err
	}

	return SplitReport{ChildNumber: childNumber, Warnings: result.Warnings}, nil
}
