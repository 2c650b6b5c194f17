package services

import (
	"time"

	"cleanmatex/internal/core/domain/model/tenant"
)

// DeadlineCalculator is a domain service that derives the promised ready-by
// time for a new order.
//
// The window is the maximum turnaround across the order's service categories,
// halved for express orders. When no turnaround is known (category lookup
// failed or returned nothing) the tenant's fixed default window applies
// instead.
type DeadlineCalculator struct{}

// NewDeadlineCalculator creates a new DeadlineCalculator instance.
func NewDeadlineCalculator() DeadlineCalculator {
	return DeadlineCalculator{}
}

// ReadyBy returns the promised completion time for an order accepted at now.
// turnarounds holds the per-category turnaround windows resolved by the
// caller; zero and negative entries are ignored.
func (c DeadlineCalculator) ReadyBy(
	now time.Time,
	express bool,
	turnarounds []time.Duration,
	cfg tenant.Settings,
) time.Time {
	var window time.Duration
	for _, t := range turnarounds {
		if t > window {
			window = t
		}
	}

	if window <= 0 {
		if express {
			return now.Add(c.fallback(cfg.ExpressTurnaround, tenant.ExpressTurnaround))
		}
		return now.Add(c.fallback(cfg.DefaultTurnaround, tenant.DefaultTurnaround))
	}

	if express {
		window /= 2
	}
	return now.Add(window)
}

func (c DeadlineCalculator) fallback(configured, standard time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	return standard
}
