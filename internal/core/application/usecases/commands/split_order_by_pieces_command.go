package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/services"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrSplitOrderByPiecesCommandIsNotConstructed = errors.New(
		"SplitOrderByPiecesCommand must be created via NewSplitOrderByPiecesCommand constructor",
	)
	ErrPieceSelectionIsRequired = errors.New("at least one item with piece sequences is required")
)

// SplitOrderByPiecesCommand represents a request to carve selected pieces
// out of an order into a new child order.
type SplitOrderByPiecesCommand struct { //nolint:recvcheck //using for validation
	tenantID  kernel.TenantID
	orderID   kernel.UUID
	childID   kernel.UUID
	selection services.PieceSelection
	reason    string
	actor     string

	guard guard.ConstructorGuard
}

// NewSplitOrderByPiecesCommand creates a command to split an order at piece
// level. The caller supplies the child order's identifier so the result is
// addressable without a return channel.
func NewSplitOrderByPiecesCommand(
	tenantID kernel.TenantID,
	orderID, childID kernel.UUID,
	selection services.PieceSelection,
	reason, actor string,
) (SplitOrderByPiecesCommand, error) {
	cmd := SplitOrderByPiecesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setChildID(childID),
		cmd.setSelection(selection),
		cmd.setActor(actor),
	); err != nil {
		return SplitOrderByPiecesCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitOrderByPiecesCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderByPiecesCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c SplitOrderByPiecesCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the parent order.
func (c SplitOrderByPiecesCommand) OrderID() kernel.UUID { return c.orderID }

// ChildID returns the identifier for the child order.
func (c SplitOrderByPiecesCommand) ChildID() kernel.UUID { return c.childID }

// Selection returns the per-item piece sequences to move.
func (c SplitOrderByPiecesCommand) Selection() services.PieceSelection { return c.selection }

// Reason returns the operator-supplied split reason.
func (c SplitOrderByPiecesCommand) Reason() string { return c.reason }

// Actor returns who requested the split.
func (c SplitOrderByPiecesCommand) Actor() string { return c.actor }

func (c *SplitOrderByPiecesCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *SplitOrderByPiecesCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SplitOrderByPiecesCommand) setChildID(childID kernel.UUID) error {
	if err := childID.Validate(); err != nil {
		return err
	}
	c.childID = childID
	return nil
}

func (c *SplitOrderByPiecesCommand) setSelection(selection services.PieceSelection) error {
	if len(selection) == 0 {
		return ErrPieceSelectionIsRequired
	}
	c.selection = selection
	return nil
}

func (c *SplitOrderByPiecesCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
