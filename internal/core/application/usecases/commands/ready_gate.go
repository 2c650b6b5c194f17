package commands

import (
	"context"

	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/services"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"
)

// readyGate runs the readiness rules shared by every path into READY, whether
// the transition is requested explicitly or triggered by item completion.
type readyGate struct {
	settings ports.TenantSettingsProvider
	tasks    ports.AssemblyTaskService
	checker  services.ReadyGateChecker
}

func newReadyGate(settings ports.TenantSettingsProvider, tasks ports.AssemblyTaskService) readyGate {
	return readyGate{
		settings: settings,
		tasks:    tasks,
		checker:  services.NewReadyGateChecker(),
	}
}

// check evaluates every readiness rule and rejects the transition with the
// full blocker list when any rule fails.
func (g readyGate) check(
	ctx context.Context,
	uow TransitionUoW,
	aggregate *order.Order,
	previous order.Status,
) error {
	cfg, err := g.settings.Settings(ctx, aggregate.TenantID())
	if err != nil {
		return errs.NewDependencyFailureError("tenant_settings", err)
	}

	openIssues, err := uow.IssueRepository().GetOpenByOrder(ctx, aggregate.TenantID(), aggregate.ID())
	if err != nil {
		return err
	}

	hasTask, err := g.tasks.Exists(ctx, aggregate.TenantID(), aggregate.ID())
	if err != nil {
		return errs.NewDependencyFailureError("assembly_tasks", err)
	}

	blockers, err := g.checker.Check(aggregate, openIssues, hasTask, cfg)
	if err != nil {
		return err
	}
	if len(blockers) > 0 {
		return errs.NewStateConflictError(previous.String(), order.Ready.String(), blockers)
	}
	return nil
}
