package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrSyncQuantityReadyCommandIsNotConstructed = errors.New(
		"SyncQuantityReadyCommand must be created via NewSyncQuantityReadyCommand constructor",
	)
)

// SyncQuantityReadyCommand represents a request to recompute an item's ready
// count purely from current piece state. Mutating piece operations re-sync
// automatically; this command exists for bulk backfills after out-of-band
// data changes.
type SyncQuantityReadyCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	orderID  kernel.UUID
	itemID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncQuantityReadyCommand creates a command to re-sync one item.
func NewSyncQuantityReadyCommand(
	tenantID kernel.TenantID,
	orderID, itemID kernel.UUID,
) (SyncQuantityReadyCommand, error) {
	cmd := SyncQuantityReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return SyncQuantityReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncQuantityReadyCommand) Validate() error {
	return c.guard.Validate(ErrSyncQuantityReadyCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c SyncQuantityReadyCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the owning order.
func (c SyncQuantityReadyCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item to re-sync.
func (c SyncQuantityReadyCommand) ItemID() kernel.UUID { return c.itemID }

func (c *SyncQuantityReadyCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *SyncQuantityReadyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SyncQuantityReadyCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}
