package services_test

import (
	"testing"
	"time"

	"cleanmatex/internal/core/domain/model/tenant"
	"cleanmatex/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineCalculator(t *testing.T) {
	calc := services.NewDeadlineCalculator()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	cfg := tenant.DefaultSettings()

	t.Run("uses the longest category turnaround", func(t *testing.T) {
		turnarounds := []time.Duration{8 * time.Hour, 48 * time.Hour, 24 * time.Hour}

		readyBy := calc.ReadyBy(now, false, turnarounds, cfg)

		assert.Equal(t, now.Add(48*time.Hour), readyBy)
	})

	t.Run("express halves the window", func(t *testing.T) {
		readyBy := calc.ReadyBy(now, true, []time.Duration{48 * time.Hour}, cfg)

		assert.Equal(t, now.Add(24*time.Hour), readyBy)
	})

	t.Run("falls back to the tenant default when lookup yields nothing", func(t *testing.T) {
		readyBy := calc.ReadyBy(now, false, nil, cfg)

		assert.Equal(t, now.Add(24*time.Hour), readyBy)
	})

	t.Run("express fallback is not halved again", func(t *testing.T) {
		readyBy := calc.ReadyBy(now, true, nil, cfg)

		assert.Equal(t, now.Add(12*time.Hour), readyBy)
	})

	t.Run("ignores zero and negative turnarounds", func(t *testing.T) {
		turnarounds := []time.Duration{0, -time.Hour}

		readyBy := calc.ReadyBy(now, false, turnarounds, cfg)

		assert.Equal(t, now.Add(24*time.Hour), readyBy)
	})

	t.Run("zero-valued settings still produce a window", func(t *testing.T) {
		readyBy := calc.ReadyBy(now, false, nil, tenant.Settings{})

		assert.Equal(t, now.Add(tenant.DefaultTurnaround), readyBy)
	})
}
