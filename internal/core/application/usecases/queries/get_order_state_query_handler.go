package queries

import (
	"context"

	"cleanmatex/internal/core/domain/services"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"
)

// GetOrderStateQueryHandler assembles one order's workflow position from the
// aggregate, the transition validator, and the ready gate. Reads run outside
// any transaction.
type GetOrderStateQueryHandler struct {
	orders    ports.OrderRepository
	issues    ports.IssueRepository
	validator ports.TransitionValidator
	settings  ports.TenantSettingsProvider
	tasks     ports.AssemblyTaskService
	gate      services.ReadyGateChecker
}

// NewGetOrderStateQueryHandler creates a handler for workflow state queries.
func NewGetOrderStateQueryHandler(
	orders ports.OrderRepository,
	issues ports.IssueRepository,
	validator ports.TransitionValidator,
	settings ports.TenantSettingsProvider,
	tasks ports.AssemblyTaskService,
) GetOrderStateQueryHandler {
	return GetOrderStateQueryHandler{
		orders:    orders,
		issues:    issues,
		validator: validator,
		settings:  settings,
		tasks:     tasks,
		gate:      services.NewReadyGateChecker(),
	}
}

// Handle executes the query.
func (h GetOrderStateQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStateQuery,
) (GetOrderStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.TenantID(), query.OrderID())
	if err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	allowed, err := h.validator.AllowedNext(ctx, aggregate)
	if err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	cfg, err := h.settings.Settings(ctx, query.TenantID())
	if err != nil {
		return GetOrderStateQueryResponse{}, errs.NewDependencyFailureError("tenant_settings", err)
	}

	openIssues, err := h.issues.GetOpenByOrder(ctx, query.TenantID(), query.OrderID())
	if err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	hasTask, err := h.tasks.Exists(ctx, query.TenantID(), query.OrderID())
	if err != nil {
		return GetOrderStateQueryResponse{}, errs.NewDependencyFailureError("assembly_tasks", err)
	}

	blockers, err := h.gate.Check(aggregate, openIssues, hasTask, cfg)
	if err != nil {
		return GetOrderStateQueryResponse{}, err
	}

	return GetOrderStateQueryResponse{
		OrderID:     aggregate.ID(),
		Number:      aggregate.Number(),
		Status:      aggregate.Status(),
		Stage:       aggregate.Stage(),
		AllowedNext: allowed,
		Blockers:    blockers,
		HasIssue:    aggregate.HasIssue(),
	}, nil
}
