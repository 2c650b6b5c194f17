package commands

import (
	"context"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"
)

// BulkChangeStatusResult is the per-order outcome of a batch transition.
type BulkChangeStatusResult struct {
	Succeeded []kernel.UUID
	Failures  []errs.BatchMemberFailure
}

// BulkChangeStatusCommandHandler applies a status change to each order of a
// batch sequentially, each in its own transaction. One failing order never
// blocks the rest; the result itemizes every outcome.
type BulkChangeStatusCommandHandler struct {
	transitions ChangeStatusCommandHandler
}

// NewBulkChangeStatusCommandHandler creates a handler for batch transitions
// on top of the single-order transition handler.
func NewBulkChangeStatusCommandHandler(transitions ChangeStatusCommandHandler) BulkChangeStatusCommandHandler {
	return BulkChangeStatusCommandHandler{transitions: transitions}
}

// Handle processes the batch. The returned error is a partial batch error
// when at least one member failed; the result is populated either way.
func (h *BulkChangeStatusCommandHandler) Handle(
	ctx context.Context, cmd BulkChangeStatusCommand,
) (BulkChangeStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkChangeStatusResult{}, err
	}

	result := BulkChangeStatusResult{}
	for _, orderID := range cmd.OrderIDs() {
		single, err := NewChangeStatusCommand(
			cmd.TenantID(), orderID, cmd.Target(), cmd.Actor(), "",
		)
		if err == nil {
			err = h.transitions.Handle(ctx, single)
		}
		if err != nil {
			result.Failures = append(result.Failures, errs.BatchMemberFailure{
				Ref: orderID.String(),
				Err: err,
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, orderID)
	}

	if len(result.Failures) > 0 {
		return result, errs.NewPartialBatchError(len(result.Succeeded), result.Failures)
	}
	return result, nil
}
