package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrBulkChangeStatusCommandIsNotConstructed = errors.New(
		"BulkChangeStatusCommand must be created via NewBulkChangeStatusCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// BulkChangeStatusCommand represents a request to move several orders to the
// same status in one call.
type BulkChangeStatusCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	orderIDs []kernel.UUID
	target   order.Status
	actor    string

	guard guard.ConstructorGuard
}

// NewBulkChangeStatusCommand creates a command to transition a batch of
// orders. Requires at least one order id.
func NewBulkChangeStatusCommand(
	tenantID kernel.TenantID,
	orderIDs []kernel.UUID,
	target order.Status,
	actor string,
) (BulkChangeStatusCommand, error) {
	cmd := BulkChangeStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderIDs(orderIDs),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return BulkChangeStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkChangeStatusCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c BulkChangeStatusCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderIDs returns the orders to transition, in request order.
func (c BulkChangeStatusCommand) OrderIDs() []kernel.UUID { return c.orderIDs }

// Target returns the requested destination status.
func (c BulkChangeStatusCommand) Target() order.Status { return c.target }

// Actor returns who requested the batch.
func (c BulkChangeStatusCommand) Actor() string { return c.actor }

func (c *BulkChangeStatusCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *BulkChangeStatusCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = orderIDs
	return nil
}

func (c *BulkChangeStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *BulkChangeStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
