package commands

import (
	"context"
	"time"

	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/services"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order acceptance. It resolves catalog
// prices and the tenant tax rate, derives the promised ready-by time, draws
// the order number, and persists the order with its items and pieces as one
// transaction. Retail stock is deducted in the same transaction so a failed
// deduction rolls the whole order back.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	settings   ports.TenantSettingsProvider
	pricing    ports.PricingProvider
	tax        ports.TaxProvider
	taxCache   ports.TaxRateCache
	deadlines  services.DeadlineCalculator
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order acceptance.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	settings ports.TenantSettingsProvider,
	pricing ports.PricingProvider,
	tax ports.TaxProvider,
	taxCache ports.TaxRateCache,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		pricing:    pricing,
		tax:        tax,
		taxCache:   taxCache,
		deadlines:  services.NewDeadlineCalculator(),
		now:        time.Now,
	}
}

// Handle processes the order creation command. Any failure before commit
// rolls the whole unit back so a partially created order is never observable.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cfg, err := h.settings.Settings(ctx, cmd.TenantID())
	if err != nil {
		return errs.NewDependencyFailureError("tenant_settings", err)
	}

	itemParams := make([]order.ItemParams, 0, len(cmd.Items()))
	turnarounds := make([]time.Duration, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		info, err := h.pricing.Product(ctx, cmd.TenantID(), line.ProductID)
		if err != nil {
			return errs.NewDependencyFailureError("pricing", err)
		}
		itemParams = append(itemParams, order.ItemParams{
			ProductID:     line.ProductID,
			Category:      info.Category,
			Quantity:      line.Quantity,
			UnitPrice:     info.UnitPrice,
			BaseAttrs:     line.BaseAttrs,
			PerPieceAttrs: line.PerPieceAttrs,
		})
		turnarounds = append(turnarounds, info.Turnaround)
	}

	taxRate, err := h.resolveTaxRate(ctx, cmd)
	if err != nil {
		return err
	}

	readyBy := cmd.ReadyBy()
	if readyBy == nil {
		computed := h.deadlines.ReadyBy(h.now(), cmd.IsExpress(), turnarounds, cfg)
		readyBy = &computed
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	number, err := uow.OrderNumberSequence().Next(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:                cmd.OrderID(),
		TenantID:          cmd.TenantID(),
		Number:            number,
		CustomerID:        cmd.CustomerID(),
		BranchID:          cmd.BranchID(),
		QuickDrop:         cmd.IsQuickDrop(),
		QuickDropQuantity: cmd.QuickDropQuantity(),
		Express:           cmd.IsExpress(),
		TaxRate:           taxRate,
		ReadyBy:           readyBy,
		Items:             itemParams,
	})
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	for _, item := range aggregate.LiveItems() {
		if item.Category() != order.RetailCategory {
			continue
		}
		if err = uow.StockDeductor().Deduct(
			ctx, cmd.TenantID(), item.ProductID(), item.Quantity(),
		); err != nil {
			return err
		}
	}

	if err = uow.AuditLog().Record(ctx, ports.AuditEntry{
		TenantID: cmd.TenantID(),
		OrderID:  aggregate.ID(),
		Actor:    cmd.Actor(),
		Action:   "order.created",
		Detail:   aggregate.Status().String(),
		At:       h.now(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveTaxRate reads through the cache. Cache failures fall back to the
// provider; provider failures abort the command.
func (h *CreateOrderCommandHandler) resolveTaxRate(ctx context.Context, cmd CreateOrderCommand) (float64, error) {
	if rate, found, err := h.taxCache.Get(ctx, cmd.TenantID()); err == nil && found {
		return rate, nil
	}

	rate, err := h.tax.Rate(ctx, cmd.TenantID())
	if err != nil {
		return 0, errs.NewDependencyFailureError("tax_provider", err)
	}

	_ = h.taxCache.Set(ctx, cmd.TenantID(), rate)
	return rate, nil
}
