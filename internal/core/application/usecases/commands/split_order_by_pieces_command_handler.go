package commands

import (
	"context"
	"strings"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/services"
	"cleanmatex/internal/core/ports"
)

// SplitReport is the outcome of a split: the child order's number and any
// per-item warnings for selection entries that could not be honored.
type SplitReport struct {
	ChildNumber string
	Warnings    []string
}

// SplitOrderByPiecesCommandHandler carves pieces out of a parent order into
// a new child. Parent shrink, child insert, the child's drawn number, and
// the audit entries commit as one transaction.
type SplitOrderByPiecesCommandHandler struct {
	uowFactory SplitUoWFactory
	splitter   services.OrderSplitter
	now        func() time.Time
}

// NewSplitOrderByPiecesCommandHandler creates a handler for piece-level
// splits.
func NewSplitOrderByPiecesCommandHandler(uowFactory SplitUoWFactory) SplitOrderByPiecesCommandHandler {
	return SplitOrderByPiecesCommandHandler{
		uowFactory: uowFactory,
		splitter:   services.NewOrderSplitter(),
		now:        time.Now,
	}
}

// Handle processes the split command.
func (h *SplitOrderByPiecesCommandHandler) Handle(
	ctx context.Context, cmd SplitOrderByPiecesCommand,
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

	result, err := h.splitter.SplitByPieces(parent, cmd.ChildID(), childNumber, cmd.Selection())
	if err != nil {
		return SplitReport{}, err
	}

	if err = uow.OrderRepository().Update(ctx, parent); err != nil {
		return SplitReport{}, err
	}
	if err = uow.OrderRepository().Add(ctx, result.Child); err != nil {
		return SplitReport{}, err
	}

	detail := splitAuditDetail(cmd.Reason(), childNumber, "pieces", result.MovedPieceIDs)
	if err = h.recordSplitAudit(ctx, uow, cmd.TenantID(), cmd.Actor(), detail, parent.ID(), result.Child.ID()); err != nil {
		return SplitReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SplitReport{}, err
	}

	return SplitReport{ChildNumber: childNumber, Warnings: result.Warnings}, nil
}

func (h *SplitOrderByPiecesCommandHandler) recordSplitAudit(
	ctx context.Context,
	uow SplitUoW,
	tenantID kernel.TenantID,
	actor, detail string,
	parentID, childID kernel.UUID,
) error {
	if err := uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: tenantID,
		OrderID:  parentID,
		Actor:    actor,
		Action:   "order.split",
		Detail:   detail,
		At:       h.now(),
	}); err != nil {
		return err
	}
	return uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: tenantID,
		OrderID:  childID,
		Actor:    actor,
		Action:   "order.split_child_created",
		Detail:   detail,
		At:       h.now(),
	})
}

// splitAuditDetail renders the audit trail line for a split: the operator's
// reason, the child order number, and the identifiers that moved.
func splitAuditDetail(reason, childNumber, label string, ids []kernel.UUID) string {
	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = id.String()
	}
	detail := "child " + childNumber + "; " + label + " " + strings.Join(refs, ",")
	if reason != "" {
		detail = reason + "; " + detail
	}
	return detail
}
