package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrDeletePieceCommandIsNotConstructed = errors.New(
		"DeletePieceCommand must be created via NewDeletePieceCommand constructor",
	)
)

// DeletePieceCommand represents a request to tombstone one piece. The owning
// item shrinks, its remaining pieces resequence densely, and its ready count
// re-syncs in the same transaction.
type DeletePieceCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	pieceID  kernel.UUID
	actor    string

	guard guard.ConstructorGuard
}

// NewDeletePieceCommand creates a command to tombstone a piece.
func NewDeletePieceCommand(
	tenantID kernel.TenantID,
	pieceID kernel.UUID,
	actor string,
) (DeletePieceCommand, error) {
	cmd := DeletePieceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setPieceID(pieceID),
		cmd.setActor(actor),
	); err != nil {
		return DeletePieceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePieceCommand) Validate() error {
	return c.guard.Validate(ErrDeletePieceCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c DeletePieceCommand) TenantID() kernel.TenantID { return c.tenantID }

// PieceID returns the piece to tombstone.
func (c DeletePieceCommand) PieceID() kernel.UUID { return c.pieceID }

// Actor returns who removed the piece.
func (c DeletePieceCommand) Actor() string { return c.actor }

func (c *DeletePieceCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *DeletePieceCommand) setPieceID(pieceID kernel.UUID) error {
	if err := pieceID.Validate(); err != nil {
		return err
	}
	c.pieceID = pieceID
	return nil
}

func (c *DeletePieceCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
