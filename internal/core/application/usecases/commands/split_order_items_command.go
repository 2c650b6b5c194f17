package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrSplitOrderItemsCommandIsNotConstructed = errors.New(
		"SplitOrderItemsCommand must be created via NewSplitOrderItemsCommand constructor",
	)
	ErrItemIDsAreRequired = errors.New("at least one item id is required")
)

// SplitOrderItemsCommand represents a request to move whole items from an
// order into a new child order.
type SplitOrderItemsCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	orderID  kernel.UUID
	childID  kernel.UUID
	itemIDs  []kernel.UUID
	reason   string
	actor    string

	guard guard.ConstructorGuard
}

// NewSplitOrderItemsCommand creates a command to split an order at item
// level.
func NewSplitOrderItemsCommand(
	tenantID kernel.TenantID,
	orderID, childID kernel.UUID,
	itemIDs []kernel.UUID,
	reason, actor string,
) (SplitOrderItemsCommand, error) {
	cmd := SplitOrderItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setChildID(childID),
		cmd.setItemIDs(itemIDs),
		cmd.setActor(actor),
	); err != nil {
		return SplitOrderItemsCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderItemsCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c SplitOrderItemsCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the parent order.
func (c SplitOrderItemsCommand) OrderID() kernel.UUID { return c.orderID }

// ChildID returns the identifier for the child order.
func (c SplitOrderItemsCommand) ChildID() kernel.UUID { return c.childID }

// ItemIDs returns the items to move.
func (c SplitOrderItemsCommand) ItemIDs() []kernel.UUID { return c.itemIDs }

// Reason returns the operator-supplied split reason.
func (c SplitOrderItemsCommand) Reason() string { return c.reason }

// Actor returns who requested the split.
func (c SplitOrderItemsCommand) Actor() string { return c.actor }

func (c *SplitOrderItemsCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *SplitOrderItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SplitOrderItemsCommand) setChildID(childID kernel.UUID) error {
	if err := childID.Validate(); err != nil {
		return err
	}
	c.childID = childID
	return nil
}

func (c *SplitOrderItemsCommand) setItemIDs(itemIDs []kernel.UUID) error {
	if len(itemIDs) == 0 {
		return ErrItemIDsAreRequired
	}
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.itemIDs = itemIDs
	return nil
}

func (c *SplitOrderItemsCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
