package commands

import (
	"context"
	"errors"
	"time"

	"cleanmatex/internal/core/application/events"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"
)

// MarkItemCompleteCommandHandler marks an item processed and re-evaluates
// its siblings: when every item is ready and a rack location is already set,
// the order moves to READY in the same transaction without a separate call.
// The automatic move runs the same ready gate as an explicit transition.
type MarkItemCompleteCommandHandler struct {
	uowFactory TransitionUoWFactory
	gate       readyGate
	dispatcher *events.Dispatcher
	now        func() time.Time
}

// NewMarkItemCompleteCommandHandler creates a handler for item completion.
func NewMarkItemCompleteCommandHandler(
	uowFactory TransitionUoWFactory,
	settings ports.TenantSettingsProvider,
	tasks ports.AssemblyTaskService,
	dispatcher *events.Dispatcher,
) MarkItemCompleteCommandHandler {
	return MarkItemCompleteCommandHandler{
		uowFactory: uowFactory,
		gate:       newReadyGate(settings, tasks),
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Handle processes the completion command.
func (h *MarkItemCompleteCommandHandler) Handle(ctx context.Context, cmd MarkItemCompleteCommand) error {
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
	previous := aggregate.Status()

	if err = aggregate.MarkItemComplete(cmd.ItemID(), cmd.Actor(), h.now()); err != nil {
		return err
	}

	if err = h.autoTransition(ctx, uow, aggregate, cmd.Actor()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  aggregate.ID(),
		Actor:    cmd.Actor(),
		Action:   "order.item_completed",
		Detail:   cmd.ItemID().String(),
		At:       h.now(),
	}); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if aggregate.Status() != previous {
		h.dispatcher.OrderChanged(ctx, aggregate, previous)
	}
	return nil
}

// autoTransition moves the order to READY when every item is ready and a
// rack location is set. A blocked ready gate or a validator rejection leaves
// the order where it is without failing the completion.
func (h *MarkItemCompleteCommandHandler) autoTransition(
	ctx context.Context,
	uow TransitionUoW,
	aggregate *order.Order,
	actor string,
) error {
	if !aggregate.AllItemsReady() || aggregate.RackLocation().IsEmpty() {
		return nil
	}

	err := h.gate.check(ctx, uow, aggregate, aggregate.Status())
	if errors.Is(err, errs.ErrStateConflict) {
		return nil
	}
	if err != nil {
		return err
	}

	err = uow.TransitionValidator().Execute(ctx, aggregate, order.Ready, actor)
	if errors.Is(err, errs.ErrStateConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	return aggregate.ApplyTransition(order.Ready)
}
