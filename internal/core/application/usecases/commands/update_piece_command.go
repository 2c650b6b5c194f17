package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrUpdatePieceCommandIsNotConstructed = errors.New(
		"UpdatePieceCommand must be created via NewUpdatePieceCommand constructor",
	)
	ErrPiecePatchIsEmpty = errors.New("piece patch must change at least one field")
)

// UpdatePieceCommand represents a request to patch one tracked piece. Any
// patch touching status or rejection re-syncs the owning item's ready count
// within the same transaction.
type UpdatePieceCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	pieceID  kernel.UUID
	patch    order.PiecePatch
	actor    string

	guard guard.ConstructorGuard
}

// NewUpdatePieceCommand creates a command to patch a piece. The patch must
// set at least one field.
func NewUpdatePieceCommand(
	tenantID kernel.TenantID,
	pieceID kernel.UUID,
	patch order.PiecePatch,
	actor string,
) (UpdatePieceCommand, error) {
	cmd := UpdatePieceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setPieceID(pieceID),
		cmd.setPatch(patch),
		cmd.setActor(actor),
	); err != nil {
		return UpdatePieceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePieceCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePieceCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c UpdatePieceCommand) TenantID() kernel.TenantID { return c.tenantID }

// PieceID returns the piece to patch.
func (c UpdatePieceCommand) PieceID() kernel.UUID { return c.pieceID }

// Patch returns the requested field changes.
func (c UpdatePieceCommand) Patch() order.PiecePatch { return c.patch }

// Actor returns who patched the piece.
func (c UpdatePieceCommand) Actor() string { return c.actor }

func (c *UpdatePieceCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *UpdatePieceCommand) setPieceID(pieceID kernel.UUID) error {
	if err := pieceID.Validate(); err != nil {
		return err
	}
	c.pieceID = pieceID
	return nil
}

func (c *UpdatePieceCommand) setPatch(patch order.PiecePatch) error {
	if patch.IsEmpty() {
		return ErrPiecePatchIsEmpty
	}
	c.patch = patch
	return nil
}

func (c *UpdatePieceCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
