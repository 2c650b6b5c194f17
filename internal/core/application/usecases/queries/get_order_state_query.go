// Package queries contains read-only operations in the CQRS architecture.
// Queries never modify state; list-shaped reads go straight to the database
// while aggregate-shaped reads load through the repositories.
package queries

import (
	"errors"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/guard"
)

var (
	ErrGetOrderStateQueryIsNotConstructed = errors.New(
		"GetOrderStateQuery must be created via NewGetOrderStateQuery constructor",
	)
)

// GetOrderStateQuery retrieves one order's workflow position: its current
// status, the transitions allowed from it, and the blockers currently
// holding back the ready transition.
type GetOrderStateQuery struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStateQuery creates a query for one order's workflow state.
func NewGetOrderStateQuery(tenantID kernel.TenantID, orderID kernel.UUID) (GetOrderStateQuery, error) {
	q := GetOrderStateQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return GetOrderStateQuery{}, err
	}

	q.tenantID = tenantID
	q.orderID = orderID
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStateQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStateQueryIsNotConstructed)
}

// TenantID returns the owning tenant.
func (q GetOrderStateQuery) TenantID() kernel.TenantID { return q.tenantID }

// OrderID returns the order to inspect.
func (q GetOrderStateQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderStateQueryResponse is one order's workflow position. Blockers is
// empty when the order could move to READY right now.
type GetOrderStateQueryResponse struct {
	OrderID     kernel.UUID
	Number      string
	Status      order.Status
	Stage       order.Stage
	AllowedNext []order.Status
	Blockers    []string
	HasIssue    bool
}
