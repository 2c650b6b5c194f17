package jobs

import (
	"context"
	"log/slog"
	"time"

	"cleanmatex/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// overdueOrderSource is the read surface the sweep needs. Background jobs
// read across all tenants; request paths stay tenant scoped.
type overdueOrderSource interface {
	GetAllOverdue(ctx context.Context, asOf time.Time) ([]*order.Order, error)
}

// OverdueOrdersJob periodically sweeps for orders whose promised ready-by
// time has passed while the order is still being processed. Each overdue
// order is reported through the log; the sweep never mutates order state.
type OverdueOrdersJob struct {
	source overdueOrderSource
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOverdueOrdersJob creates the overdue sweep running once per minute.
func NewOverdueOrdersJob(source overdueOrderSource, logger *slog.Logger) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		source: source,
		cron:   cron.New(),
		logger: logger.With("component", "overdue_orders_job"),
	}
}

// Start begins the overdue sweep on its minute schedule.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started (running every minute)")
	return nil
}

// Stop stops the overdue sweep.
func (j *OverdueOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}

func (j *OverdueOrdersJob) sweep() {
	ctx := context.Background()
	now := time.Now().UTC()

	overdue, err := j.source.GetAllOverdue(ctx, now)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue orders sweep failed", "error", err)
		return
	}
	if len(overdue) == 0 {
		return
	}

	for _, aggregate := range overdue {
		j.logger.WarnContext(ctx, "Order is past its ready-by deadline",
			"tenant_id", aggregate.TenantID().String(),
			"order_id", aggregate.ID().String(),
			"number", aggregate.Number(),
			"status", aggregate.Status().String(),
			"ready_by", aggregate.ReadyBy(),
		)
	}
	j.logger.InfoContext(ctx, "Overdue orders sweep completed", "overdue_count", len(overdue))
}
