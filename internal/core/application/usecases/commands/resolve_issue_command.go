package commands

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrResolveIssueCommandIsNotConstructed = errors.New(
		"ResolveIssueCommand must be created via NewResolveIssueCommand constructor",
	)
)

// ResolveIssueCommand represents a request to resolve an open quality issue.
type ResolveIssueCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	issueID  kernel.UUID
	notes    string
	actor    string

	guard guard.ConstructorGuard
}

// NewResolveIssueCommand creates a command to resolve an issue.
func NewResolveIssueCommand(
	tenantID kernel.TenantID,
	issueID kernel.UUID,
	notes, actor string,
) (ResolveIssueCommand, error) {
	cmd := ResolveIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setIssueID(issueID),
		cmd.setActor(actor),
	); err != nil {
		return ResolveIssueCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveIssueCommand) Validate() error {
	return c.guard.Validate(ErrResolveIssueCommandIsNotConstructed)
}

// TenantID returns the owning tenant.
func (c ResolveIssueCommand) TenantID() kernel.TenantID { return c.tenantID }

// IssueID returns the issue to resolve.
func (c ResolveIssueCommand) IssueID() kernel.UUID { return c.issueID }

// Notes returns the resolution notes.
func (c ResolveIssueCommand) Notes() string { return c.notes }

// Actor returns who resolved the issue.
func (c ResolveIssueCommand) Actor() string { return c.actor }

func (c *ResolveIssueCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *ResolveIssueCommand) setIssueID(issueID kernel.UUID) error {
	if err := issueID.Validate(); err != nil {
		return err
	}
	c.issueID = issueID
	return nil
}

func (c *ResolveIssueCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
