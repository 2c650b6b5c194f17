package ports

import (
	"context"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/model/tenant"
)

// ProductInfo is the catalog data resolved for one product when an order is
// built: the unit price charged, the service category the product belongs
// to, and the category's turnaround window (zero when unknown).
type ProductInfo struct {
	UnitPrice  float64
	Category   string
	Turnaround time.Duration
}

// PricingProvider resolves catalog data for order items. Failures during
// order creation abort the command; prices are never guessed.
type PricingProvider interface {
	Product(ctx context.Context, tenantID kernel.TenantID, productID kernel.UUID) (ProductInfo, error)
}

// TaxProvider resolves the tenant's current tax rate as a fraction
// (0.05 for five percent).
type TaxProvider interface {
	Rate(ctx context.Context, tenantID kernel.TenantID) (float64, error)
}

// TaxRateCache is a read-through cache in front of TaxProvider. Get reports
// a miss with found=false rather than an error; cache failures must never
// fail an order.
type TaxRateCache interface {
	Get(ctx context.Context, tenantID kernel.TenantID) (rate float64, found bool, err error)
	Set(ctx context.Context, tenantID kernel.TenantID, rate float64) error
	Invalidate(ctx context.Context, tenantID kernel.TenantID) error
}

// StockDeductor atomically decrements retail stock inside the calling
// transaction. Insufficient stock is an error so that a failed deduction
// rolls back the whole composite write.
type StockDeductor interface {
	Deduct(ctx context.Context, tenantID kernel.TenantID, productID kernel.UUID, quantity int) error
}

// TransitionValidator decides and records workflow transitions. Execute is
// called inside the command's transaction; a rejection carries the full
// blocker list.
type TransitionValidator interface {
	// Execute validates the transition of aggregate to target and records
	// it. The aggregate's status is not modified; the caller applies the
	// transition after Execute succeeds.
	Execute(ctx context.Context, aggregate *order.Order, target order.Status, actor string) error

	// AllowedNext returns the statuses the aggregate may move to from its
	// current position.
	AllowedNext(ctx context.Context, aggregate *order.Order) ([]order.Status, error)
}

// OrderNumberSequence issues gapless per-tenant order numbers.
type OrderNumberSequence interface {
	Next(ctx context.Context, tenantID kernel.TenantID) (string, error)
}

// AuditEntry is one line of the order audit trail.
type AuditEntry struct {
	TenantID kernel.TenantID
	OrderID  kernel.UUID
	Actor    string
	Action   string
	Detail   string
	At       time.Time
}

// AuditLog records audit entries within the calling transaction so the trail
// commits or rolls back together with the change it describes.
type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AssemblyTaskService manages the assembly scan tasks the ready gate depends
// on. CreateForOrder is invoked as a post-commit hook when an order enters
// the assembly status.
type AssemblyTaskService interface {
	Exists(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) (bool, error)
	CreateForOrder(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) error
}

// TenantSettingsProvider resolves the tenant's feature toggles. Tenants
// without an explicit configuration row get tenant.DefaultSettings.
type TenantSettingsProvider interface {
	Settings(ctx context.Context, tenantID kernel.TenantID) (tenant.Settings, error)
}

// OrderEventPublisher announces committed order changes to downstream
// consumers. Publishing runs post-commit; failures are logged and swallowed,
// never surfaced to the caller.
type OrderEventPublisher interface {
	OrderChanged(ctx context.Context, aggregate *order.Order, previous order.Status) error
}
