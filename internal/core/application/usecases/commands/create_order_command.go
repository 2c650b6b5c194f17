package commands

import (
	"errors"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemsAreRequired = errors.New("at least one item is required unless the order is a quick drop")
	ErrActorIsRequired       = errors.New("actor is required")
)

// CreateOrderItem describes one requested order line. Pricing and category
// are resolved from the catalog during handling, not supplied by the caller.
type CreateOrderItem struct {
	ProductID     kernel.UUID
	Quantity      int
	BaseAttrs     order.PieceAttributes
	PerPieceAttrs []order.PieceAttributes
}

// CreateOrderCommand represents a request to accept a new order with its
// items and pieces as one unit.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID          kernel.TenantID
	orderID           kernel.UUID
	customerID        kernel.UUID
	branchID          kernel.UUID
	quickDrop         bool
	quickDropQuantity int
	express           bool
	readyBy           *time.Time
	actor             string
	items             []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to accept a new order. Validates
// identifiers and requires at least one item unless the quick-drop flag is
// set. A nil readyBy lets the handler compute the deadline from the tenant's
// turnaround settings.
func NewCreateOrderCommand(
	tenantID kernel.TenantID,
	orderID, customerID, branchID kernel.UUID,
	quickDrop bool,
	quickDropQuantity int,
	express bool,
	readyBy *time.Time,
	actor string,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setBranchID(branchID),
		cmd.setActor(actor),
		cmd.setItems(quickDrop, items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.quickDrop = quickDrop
	cmd.quickDropQuantity = quickDropQuantity
	cmd.express = express
	cmd.readyBy = readyBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c CreateOrderCommand) TenantID() kernel.TenantID { return c.tenantID }

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// BranchID returns the accepting branch.
func (c CreateOrderCommand) BranchID() kernel.UUID { return c.branchID }

// IsQuickDrop reports whether the order is accepted as an uncounted bag.
func (c CreateOrderCommand) IsQuickDrop() bool { return c.quickDrop }

// QuickDropQuantity returns the declared garment count for quick drops.
func (c CreateOrderCommand) QuickDropQuantity() int { return c.quickDropQuantity }

// IsExpress reports whether the express turnaround applies.
func (c CreateOrderCommand) IsExpress() bool { return c.express }

// ReadyBy returns the caller-supplied deadline, or nil when the handler
// should compute one.
func (c CreateOrderCommand) ReadyBy() *time.Time { return c.readyBy }

// Actor returns who accepted the order.
func (c CreateOrderCommand) Actor() string { return c.actor }

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem { return c.items }

func (c *CreateOrderCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	c.branchID = branchID
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setItems(quickDrop bool, items []CreateOrderItem) error {
	if len(items) == 0 && !quickDrop {
		return ErrOrderItemsAreRequired
	}
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
