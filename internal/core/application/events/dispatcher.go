// Package events runs the post-commit side effects of order changes.
// Hooks fire after the owning transaction committed; a hook failure is
// logged and swallowed, never propagated to the caller, and never rolls
// back the committed change.
package events

import (
	"context"
	"log/slog"

	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/ports"
)

// Hook reacts to a committed order change.
type Hook interface {
	Name() string
	OnOrderChanged(ctx context.Context, aggregate *order.Order, previous order.Status) error
}

// Dispatcher fans a committed order change out to all registered hooks.
// Hooks run sequentially and independently; one failing hook does not stop
// the others.
type Dispatcher struct {
	logger *slog.Logger
	hooks  []Hook
}

// NewDispatcher creates a dispatcher over the given hooks.
func NewDispatcher(logger *slog.Logger, hooks ...Hook) *Dispatcher {
	return &Dispatcher{logger: logger, hooks: hooks}
}

// OrderChanged notifies every hook about a committed change. Failures are
// logged with the hook name and swallowed.
func (d *Dispatcher) OrderChanged(ctx context.Context, aggregate *order.Order, previous order.Status) {
	if d == nil {
		return
	}
	for _, hook := range d.hooks {
		if err := hook.OnOrderChanged(ctx, aggregate, previous); err != nil {
			d.logger.Warn("post-commit hook failed",
				"hook", hook.Name(),
				"order_id", aggregate.ID().String(),
				"status", aggregate.Status().String(),
				"error", err,
			)
		}
	}
}

// AssemblyTaskHook creates the assembly scan task when an order enters the
// assembly status. The ready gate later requires this task to exist.
type AssemblyTaskHook struct {
	tasks ports.AssemblyTaskService
}

// NewAssemblyTaskHook creates the hook over the task service.
func NewAssemblyTaskHook(tasks ports.AssemblyTaskService) *AssemblyTaskHook {
	return &AssemblyTaskHook{tasks: tasks}
}

func (h *AssemblyTaskHook) Name() string { return "assembly_task" }

func (h *AssemblyTaskHook) OnOrderChanged(ctx context.Context, aggregate *order.Order, previous order.Status) error {
	if aggregate.Status() != order.Assembly || previous == order.Assembly {
		return nil
	}
	return h.tasks.CreateForOrder(ctx, aggregate.TenantID(), aggregate.ID())
}

// PublishHook announces every committed change on the order event stream.
type PublishHook struct {
	publisher ports.OrderEventPublisher
}

// NewPublishHook creates the hook over the event publisher.
func NewPublishHook(publisher ports.OrderEventPublisher) *PublishHook {
	return &PublishHook{publisher: publisher}
}

func (h *PublishHook) Name() string { return "order_changed_publish" }

func (h *PublishHook) OnOrderChanged(ctx context.Context, aggregate *order.Order, previous order.Status) error {
	return h.publisher.OrderChanged(ctx, aggregate, previous)
}
