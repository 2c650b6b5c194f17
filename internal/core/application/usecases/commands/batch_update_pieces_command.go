package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrBatchUpdatePiecesCommandIsNotConstructed = errors.New(
		"BatchUpdatePiecesCommand must be created via NewBatchUpdatePiecesCommand constructor",
	)
	ErrPieceUpdatesAreRequired = errors.New("at least one piece update is required")
)

// PieceUpdate is one member of a batch piece update.
type PieceUpdate struct {
	PieceID kernel.UUID
	Patch   order.PiecePatch
}

// BatchUpdatePiecesCommand represents a request to patch several pieces in
// one call, for example scanning a whole rack at assembly.
type BatchUpdatePiecesCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	updates  []PieceUpdate
	actor    string

	guard guard.ConstructorGuard
}

// NewBatchUpdatePiecesCommand creates a command for a batch of piece
// patches. Member patches are validated individually during handling, not
// here, so one malformed member cannot reject the whole batch.
func NewBatchUpdatePiecesCommand(
	tenantID kernel.TenantID,
	updates []PieceUpdate,
	actor string,
) (BatchUpdatePiecesCommand, error) {
	cmd := BatchUpdatePiecesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setUpdates(updates),
		cmd.setActor(actor),
	); err != nil {
		return BatchUpdatePiecesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BatchUpdatePiecesCommand) Validate() error {
	return c.guard.Validate(ErrBatchUpdatePiecesCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c BatchUpdatePiecesCommand) TenantID() kernel.TenantID { return c.tenantID }

// Updates returns the member updates in request order.
func (c BatchUpdatePiecesCommand) Updates() []PieceUpdate { return c.updates }

// Actor returns who requested the batch.
func (c BatchUpdatePiecesCommand) Actor() string { return c.actor }

func (c *BatchUpdatePiecesCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *BatchUpdatePiecesCommand) setUpdates(updates []PieceUpdate) error {
	if len(updates) == 0 {
		return ErrPieceUpdatesAreRequired
	}
	c.updates = updates
	return nil
}

func (c *BatchUpdatePiecesCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
