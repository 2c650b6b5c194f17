package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrMarkItemCompleteCommandIsNotConstructed = errors.New(
		"MarkItemCompleteCommand must be created via NewMarkItemCompleteCommand constructor",
	)
)

// MarkItemCompleteCommand represents a request to mark one order item as
// fully processed.
type MarkItemCompleteCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	orderID  kernel.UUID
	itemID   kernel.UUID
	actor    string

	guard guard.ConstructorGuard
}

// NewMarkItemCompleteCommand creates a command to complete an item.
func NewMarkItemCompleteCommand(
	tenantID kernel.TenantID,
	orderID, itemID kernel.UUID,
	actor string,
) (MarkItemCompleteCommand, error) {
	cmd := MarkItemCompleteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setActor(actor),
	); err != nil {
		return MarkItemCompleteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkItemCompleteCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemCompleteCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c MarkItemCompleteCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the owning order.
func (c MarkItemCompleteCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item to complete.
func (c MarkItemCompleteCommand) ItemID() kernel.UUID { return c.itemID }

// Actor returns who completed the item.
func (c MarkItemCompleteCommand) Actor() string { return c.actor }

func (c *MarkItemCompleteCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *MarkItemCompleteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkItemCompleteCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *MarkItemCompleteCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
