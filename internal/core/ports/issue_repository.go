package ports

import (
	"context"

	"cleanmatex/internal/core/domain/model/issue"
	"cleanmatex/internal/core/domain/model/kernel"
)

// IssueRepository defines the persistence contract for quality issues.
type IssueRepository interface {
	// Add persists a new issue.
	Add(ctx context.Context, aggregate *issue.Issue) error

	// Update persists changes to an existing issue, including resolution.
	Update(ctx context.Context, aggregate *issue.Issue) error

	// Get retrieves an issue by tenant and identifier.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*issue.Issue, error)

	// GetOpenByOrder retrieves the unresolved issues attached to an order.
	// The ready gate blocks on a non-empty result when the tenant enables
	// the issue gate.
	GetOpenByOrder(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) ([]*issue.Issue, error)
}
