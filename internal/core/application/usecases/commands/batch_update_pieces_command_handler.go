package commands

import (
	"context"

	"cleanmatex/internal/pkg/errs"
)

// BatchUpdatePiecesResult is the itemized outcome of a batch piece update.
type BatchUpdatePiecesResult struct {
	UpdatedCount int
	Failures     []errs.BatchMemberFailure
}

// BatchUpdatePiecesCommandHandler applies piece patches strictly
// sequentially, each in its own transaction, so every ready-count
// recomputation observes a fully applied prior step. One failing member
// never blocks the rest.
type BatchUpdatePiecesCommandHandler struct {
	pieces UpdatePieceCommandHandler
}

// NewBatchUpdatePiecesCommandHandler creates a handler for batch piece
// patches on top of the single-piece handler.
func NewBatchUpdatePiecesCommandHandler(pieces UpdatePieceCommandHandler) BatchUpdatePiecesCommandHandler {
	return BatchUpdatePiecesCommandHandler{pieces: pieces}
}

// Handle processes the batch. The returned error is a partial batch error
// when at least one member failed; the result is populated either way.
func (h *BatchUpdatePiecesCommandHandler) Handle(
	ctx context.Context, cmd BatchUpdatePiecesCommand,
) (BatchUpdatePiecesResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchUpdatePiecesResult{}, err
	}

	result := BatchUpdatePiecesResult{}
	for _, update := range cmd.Updates() {
		single, err := NewUpdatePieceCommand(
			cmd.TenantID(), update.PieceID, update.Patch, cmd.Actor(),
		)
		if err == nil {
			err = h.pieces.Handle(ctx, single)
		}
		if err != nil {
			result.Failures = append(result.Failures, errs.BatchMemberFailure{
				Ref: update.PieceID.String(),
				Err: err,
			})
			continue
		}
		result.UpdatedCount++
	}

	if len(result.Failures) > 0 {
		return result, errs.NewPartialBatchError(result.UpdatedCount, result.Failures)
	}
	return result, nil
}
