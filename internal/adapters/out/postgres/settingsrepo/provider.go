// Package settingsrepo resolves per-tenant feature toggles. Tenants without
// an explicit configuration row get the defaults, with every workflow gate
// enabled.
package settingsrepo

import (
	"context"
	"errors"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantSettingsDTO represents the configuration row of one tenant.
// Turnarounds are stored in minutes.
type TenantSettingsDTO struct {
	TenantID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackByPiece             bool
	RequireAssemblyScan      bool
	RequireQAPass            bool `gorm:"column:require_qa_pass"`
	BlockOnOpenIssues        bool
	DefaultTurnaroundMinutes int
	ExpressTurnaroundMinutes int
}

// TableName specifies the database table name for tenant settings.
func (TenantSettingsDTO) TableName() string {
	return "tenant_settings"
}

// GormTenantSettingsProvider implements TenantSettingsProvider using GORM.
type GormTenantSettingsProvider struct {
	db *gorm.DB
}

// NewGormTenantSettingsProvider creates a new GORM settings provider.
func NewGormTenantSettingsProvider(db *gorm.DB) *GormTenantSettingsProvider {
	return &GormTenantSettingsProvider{db: db}
}

// Settings resolves the tenant's toggles, falling back to the defaults when
// no row exists. A stored zero turnaround also falls back to the default.
func (p *GormTenantSettingsProvider) Settings(ctx context.Context, tenantID kernel.TenantID) (tenant.Settings, error) {
	if err := tenantID.Validate(); err != nil {
		return tenant.Settings{}, err
	}

	var dto TenantSettingsDTO
	err := p.db.WithContext(ctx).
		First(&dto, "tenant_id = ?", tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tenant.DefaultSettings(), nil
		}
		return tenant.Settings{}, err
	}

	settings := tenant.Settings{
		TrackByPiece:        dto.TrackByPiece,
		RequireAssemblyScan: dto.RequireAssemblyScan,
		RequireQAPass:       dto.RequireQAPass,
		BlockOnOpenIssues:   dto.BlockOnOpenIssues,
		DefaultTurnaround:   time.Duration(dto.DefaultTurnaroundMinutes) * time.Minute,
		ExpressTurnaround:   time.Duration(dto.ExpressTurnaroundMinutes) * time.Minute,
	}
	if settings.DefaultTurnaround <= 0 {
		settings.DefaultTurnaround = tenant.DefaultTurnaround
	}
	if settings.ExpressTurnaround <= 0 {
		settings.ExpressTurnaround = tenant.ExpressTurnaround
	}

	return settings, nil
}
