package commands

import (
	"context"
	"time"

	"cleanmatex/internal/core/domain/model/issue"
	"cleanmatex/internal/core/ports"
)

// CreateIssueCommandHandler raises a quality issue. The issue row, the
// order's issue flag, the item rejection for item-scoped issues, and the
// audit entry commit together.
type CreateIssueCommandHandler struct {
	uowFactory IssueUoWFactory
	now        func() time.Time
}

// NewCreateIssueCommandHandler creates a handler for raising issues.
func NewCreateIssueCommandHandler(uowFactory IssueUoWFactory) CreateIssueCommandHandler {
	return CreateIssueCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the issue creation command.
func (h *CreateIssueCommandHandler) Handle(ctx context.Context, cmd CreateIssueCommand) error {
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

	raised, err := issue.NewIssue(
		cmd.IssueID(), cmd.TenantID(), cmd.OrderID(), cmd.ItemID(),
		cmd.Code(), cmd.Text(), cmd.Actor(), h.now(),
	)
	if err != nil {
		return err
	}

	if err = uow.IssueRepository().Add(ctx, raised); err != nil {
		return err
	}

	aggregate.FlagIssue()
	if cmd.ItemID() != nil {
		item, err := aggregate.Item(*cmd.ItemID())
		if err != nil {
			return err
		}
		item.MarkRejected()
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  cmd.OrderID(),
		Actor:    cmd.Actor(),
		Action:   "issue.created",
		Detail:   cmd.Code(),
		At:       h.now(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
