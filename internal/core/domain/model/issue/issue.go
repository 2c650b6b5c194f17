package issue

import (
	"errors"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"
)

var (
	// ErrIssueIsNotConstructed is returned when an Issue instance was not
	// created through NewIssue or RestoreIssue.
	ErrIssueIsNotConstructed = errors.New("Issue must be created via NewIssue or RestoreIssue")

	// ErrIssueAlreadyResolved is returned when resolving an issue twice.
	ErrIssueAlreadyResolved = errors.New("issue is already resolved")
)

// Issue is a quality problem attached to an order, optionally scoped to a
// single item (stain, damage, missing piece). An issue stays open until
// resolved and blocks the order's ready transition while open.
type Issue struct {
	id       kernel.UUID
	tenantID kernel.TenantID
	orderID  kernel.UUID
	itemID   *kernel.UUID

	code string
	text string

	raisedBy   string
	resolvedBy string
	notes      string

	createdAt  time.Time
	resolvedAt *time.Time

	isConstructed bool
}

// NewIssue opens a quality issue against an order. itemID is nil for
// order-scoped issues.
func NewIssue(
	id kernel.UUID,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	itemID *kernel.UUID,
	code, text, raisedBy string,
	at time.Time,
) (*Issue, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("issue code")
	}
	if itemID != nil {
		if err := itemID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Issue{
		id:            id,
		tenantID:      tenantID,
		orderID:       orderID,
		itemID:        itemID,
		code:          code,
		text:          text,
		raisedBy:      raisedBy,
		createdAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreIssue reconstructs an issue from persistence.
func RestoreIssue(
	id kernel.UUID,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	itemID *kernel.UUID,
	code, text, raisedBy, resolvedBy, notes string,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*Issue, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Issue{
		id:            id,
		tenantID:      tenantID,
		orderID:       orderID,
		itemID:        itemID,
		code:          code,
		text:          text,
		raisedBy:      raisedBy,
		resolvedBy:    resolvedBy,
		notes:         notes,
		createdAt:     createdAt,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Issue was constructed through NewIssue or RestoreIssue.
func (i *Issue) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIssueIsNotConstructed
	}
	return nil
}

// ID returns the issue identifier.
func (i *Issue) ID() kernel.UUID { return i.id }

// TenantID returns the owning tenant.
func (i *Issue) TenantID() kernel.TenantID { return i.tenantID }

// OrderID returns the order the issue is attached to.
func (i *Issue) OrderID() kernel.UUID { return i.orderID }

// ItemID returns the item scope, nil for order-scoped issues.
func (i *Issue) ItemID() *kernel.UUID { return i.itemID }

// Code returns the issue classification code (e.g. "STAIN", "DAMAGE").
func (i *Issue) Code() string { return i.code }

// Text returns the free-form description.
func (i *Issue) Text() string { return i.text }

// RaisedBy returns who opened the issue.
func (i *Issue) RaisedBy() string { return i.raisedBy }

// ResolvedBy returns who resolved the issue, empty while open.
func (i *Issue) ResolvedBy() string { return i.resolvedBy }

// Notes returns the resolution notes.
func (i *Issue) Notes() string { return i.notes }

// CreatedAt returns when the issue was opened.
func (i *Issue) CreatedAt() time.Time { return i.createdAt }

// ResolvedAt returns when the issue was resolved, nil while open.
func (i *Issue) ResolvedAt() *time.Time { return i.resolvedAt }

// IsOpen reports whether the issue still blocks the ready transition.
func (i *Issue) IsOpen() bool { return i.resolvedAt == nil }

// IsItemScoped reports whether the issue targets a single item.
func (i *Issue) IsItemScoped() bool { return i.itemID != nil }

// Resolve stamps the resolution. Resolving twice is an error.
func (i *Issue) Resolve(notes, actor string, at time.Time) error {
	if !i.IsOpen() {
		return ErrIssueAlreadyResolved
	}

	i.notes = notes
	i.resolvedBy = actor
	i.resolvedAt = &at
	return nil
}
