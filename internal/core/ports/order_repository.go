// Package ports defines repository and collaborator interfaces for the order
// lifecycle domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
//
// Every repository method is tenant scoped: lookups take the tenant id
// alongside the entity id and must never return another tenant's data.
package ports

import (
	"context"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is stored and loaded as one unit together with its items, pieces,
// and step records.
type OrderRepository interface {
	// Add persists a new order aggregate with all its items and pieces.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// tombstoned items and pieces.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by tenant and identifier.
	// Tombstoned orders and orders of other tenants are not found.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error)

	// GetByPiece resolves the order owning a piece, scoped to the tenant.
	// Piece-level scan commands address pieces directly.
	GetByPiece(ctx context.Context, tenantID kernel.TenantID, pieceID kernel.UUID) (*order.Order, error)

	// GetOverdue retrieves the tenant's orders whose promised ready-by time
	// lies before asOf and that have not reached the ready stage.
	GetOverdue(ctx context.Context, tenantID kernel.TenantID, asOf time.Time) ([]*order.Order, error)

	// GetAllOverdue retrieves overdue orders across every tenant. Used by
	// background jobs only; request paths stay tenant scoped.
	GetAllOverdue(ctx context.Context, asOf time.Time) ([]*order.Order, error)
}
