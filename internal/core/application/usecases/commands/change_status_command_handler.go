package commands

import (
	"context"
	"time"

	"cleanmatex/internal/core/application/events"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/ports"
)

// ChangeStatusCommandHandler orchestrates a workflow transition: ready-gate
// evaluation, validation through the transition validator, the status write,
// and the audit entry run in one transaction. Post-commit hooks fire after
// the commit and never fail the command.
type ChangeStatusCommandHandler struct {
	uowFactory TransitionUoWFactory
	gate       readyGate
	dispatcher *events.Dispatcher
	now        func() time.Time
}

// NewChangeStatusCommandHandler creates a handler for workflow transitions.
func NewChangeStatusCommandHandler(
	uowFactory TransitionUoWFactory,
	settings ports.TenantSettingsProvider,
	tasks ports.AssemblyTaskService,
	dispatcher *events.Dispatcher,
) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		gate:       newReadyGate(settings, tasks),
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Handle processes the transition command. A rejected transition performs no
// mutation and surfaces a state conflict carrying every blocker at once.
func (h *ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) error {
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

	if cmd.Target() == order.Ready {
		if err = h.gate.check(ctx, uow, aggregate, previous); err != nil {
			return err
		}
	}

	if err = uow.TransitionValidator().Execute(ctx, aggregate, cmd.Target(), cmd.Actor()); err != nil {
		return err
	}

	if err = aggregate.ApplyTransition(cmd.Target()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  aggregate.ID(),
		Actor:    cmd.Actor(),
		Action:   "order.status_changed",
		Detail:   previous.String() + " -> " + cmd.Target().String(),
		At:       h.now(),
	}); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.OrderChanged(ctx, aggregate, previous)
	return nil
}
