package queries

import (
	"errors"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
		"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
	)
)

// GetOverdueOrdersQuery retrieves the tenant's orders whose promised
// ready-by time has passed without the order reaching the ready stage.
type GetOverdueOrdersQuery struct {
	tenantID kernel.TenantID
	asOf     time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOrdersQuery creates a query for overdue orders as of the
// given instant.
func NewGetOverdueOrdersQuery(tenantID kernel.TenantID, asOf time.Time) (GetOverdueOrdersQuery, error) {
	q := GetOverdueOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := tenantID.Validate(); err != nil {
		return GetOverdueOrdersQuery{}, err
	}

	q.tenantID = tenantID
	q.asOf = asOf
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

// TenantID returns the owning tenant.
func (q GetOverdueOrdersQuery) TenantID() kernel.TenantID { return q.tenantID }

// AsOf returns the instant overdueness is judged against.
func (q GetOverdueOrdersQuery) AsOf() time.Time { return q.asOf }

// GetOverdueOrdersQueryResponse is one overdue order.
type GetOverdueOrdersQueryResponse struct {
	OrderID kernel.UUID
	Number  string
	Status  order.Status
	ReadyBy time.Time
}
