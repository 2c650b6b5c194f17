package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrChangeStatusCommandIsNotConstructed = errors.New(
		"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
	)
)

// ChangeStatusCommand represents a request to move an order to another
// workflow status.
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	orderID  kernel.UUID
	target   order.Status
	actor    string
	notes    string

	guard guard.ConstructorGuard
}

// NewChangeStatusCommand creates a command to move an order to target.
// Validates identifiers, the target status, and the acting user.
func NewChangeStatusCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	target order.Status,
	actor, notes string,
) (ChangeStatusCommand, error) {
	cmd := ChangeStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return ChangeStatusCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c ChangeStatusCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the order to transition.
func (c ChangeStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested destination status.
func (c ChangeStatusCommand) Target() order.Status { return c.target }

// Actor returns who requested the transition.
func (c ChangeStatusCommand) Actor() string { return c.actor }

// Notes returns the free-text note attached to the transition.
func (c ChangeStatusCommand) Notes() string { return c.notes }

func (c *ChangeStatusCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *ChangeStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ChangeStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
