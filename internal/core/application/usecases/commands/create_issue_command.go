package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrCreateIssueCommandIsNotConstructed = errors.New(
		"CreateIssueCommand must be created via NewCreateIssueCommand constructor",
	)
	ErrIssueCodeIsRequired = errors.New("issue code is required")
)

// CreateIssueCommand represents a request to raise a quality issue against
// an order, optionally scoped to one item.
type CreateIssueCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	issueID  kernel.UUID
	orderID  kernel.UUID
	itemID   *kernel.UUID
	code     string
	text     string
	actor    string

	guard guard.ConstructorGuard
}

// NewCreateIssueCommand creates a command to raise an issue. itemID is nil
// for order-scoped issues.
func NewCreateIssueCommand(
	tenantID kernel.TenantID,
	issueID, orderID kernel.UUID,
	itemID *kernel.UUID,
	code, text, actor string,
) (CreateIssueCommand, error) {
	cmd := CreateIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setIssueID(issueID),
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setCode(code),
		cmd.setActor(actor),
	); err != nil {
		return CreateIssueCommand{}, err
	}

	cmd.text = text
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateIssueCommand) Validate() error {
	return c.guard.Validate(ErrCreateIssueCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c CreateIssueCommand) TenantID() kernel.TenantID { return c.tenantID }

// IssueID returns the identifier for the new issue.
func (c CreateIssueCommand) IssueID() kernel.UUID { return c.issueID }

// OrderID returns the order the issue is raised against.
func (c CreateIssueCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the targeted item, nil for order-scoped issues.
func (c CreateIssueCommand) ItemID() *kernel.UUID { return c.itemID }

// Code returns the issue classification code.
func (c CreateIssueCommand) Code() string { return c.code }

// Text returns the free-text description.
func (c CreateIssueCommand) Text() string { return c.text }

// Actor returns who raised the issue.
func (c CreateIssueCommand) Actor() string { return c.actor }

func (c *CreateIssueCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateIssueCommand) setIssueID(issueID kernel.UUID) error {
	if err := issueID.Validate(); err != nil {
		return err
	}
	c.issueID = issueID
	return nil
}

func (c *CreateIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateIssueCommand) setItemID(itemID *kernel.UUID) error {
	if itemID == nil {
		return nil
	}
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *CreateIssueCommand) setCode(code string) error {
	if code == "" {
		return ErrIssueCodeIsRequired
	}
	c.code = code
	return nil
}

func (c *CreateIssueCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
