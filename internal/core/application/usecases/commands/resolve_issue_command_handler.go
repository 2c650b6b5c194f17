package commands

import (
	"context"
	"time"

	"cleanmatex/internal/core/ports"
)

// ResolveIssueCommandHandler resolves an open issue and clears the order's
// issue flag once no open issues remain.
type ResolveIssueCommandHandler struct {
	uowFactory IssueUoWFactory
	now        func() time.Time
}

// NewResolveIssueCommandHandler creates a handler for resolving issues.
func NewResolveIssueCommandHandler(uowFactory IssueUoWFactory) ResolveIssueCommandHandler {
	return ResolveIssueCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the resolution command.
func (h *ResolveIssueCommandHandler) Handle(ctx context.Context, cmd ResolveIssueCommand) error {
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

	resolved, err := uow.IssueRepository().Get(ctx, cmd.TenantID(), cmd.IssueID())
	if err != nil {
		return err
	}

	if err = resolved.Resolve(cmd.Notes(), cmd.Actor(), h.now()); err != nil {
		return err
	}

	if err = uow.IssueRepository().Update(ctx, resolved); err != nil {
		return err
	}

	remaining, err := uow.IssueRepository().GetOpenByOrder(ctx, cmd.TenantID(), resolved.OrderID())
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		aggregate, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), resolved.OrderID())
		if err != nil {
			return err
		}
		aggregate.ClearIssueFlag()
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  resolved.OrderID(),
		Actor:    cmd.Actor(),
		Action:   "issue.resolved",
		Detail:   resolved.Code(),
		At:       h.now(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
