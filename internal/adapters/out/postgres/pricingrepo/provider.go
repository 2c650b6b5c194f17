// Package pricingrepo resolves catalog prices and tenant tax rates.
// Order creation never guesses a price: a missing product aborts the
// command.
package pricingrepo

import (
	"context"
	"errors"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/ports"
	"cleanmatex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDTO represents one catalog product row.
type ProductDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;index"`
	Category          string
	UnitPrice         float64
	TurnaroundMinutes int
	IsActive          bool
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// TaxRateDTO represents the tenant's configured tax rate as a fraction.
type TaxRateDTO struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Rate     float64
}

// TableName specifies the database table name for tax rates.
func (TaxRateDTO) TableName() string {
	return "tenant_tax_rates"
}

var _ ports.PricingProvider = (*GormPricingProvider)(nil)

// GormPricingProvider implements PricingProvider using GORM.
type GormPricingProvider struct {
	db *gorm.DB
}

// NewGormPricingProvider creates a new GORM pricing provider.
func NewGormPricingProvider(db *gorm.DB) *GormPricingProvider {
	return &GormPricingProvider{db: db}
}

// Product resolves the catalog data for one product. An unknown or inactive
// product is a lookup miss.
func (p *GormPricingProvider) Product(ctx context.Context, tenantID kernel.TenantID, productID kernel.UUID) (ports.ProductInfo, error) {
	if err := tenantID.Validate(); err != nil {
		return ports.ProductInfo{}, err
	}
	if err := productID.Validate(); err != nil {
		return ports.ProductInfo{}, err
	}

	var dto ProductDTO
	err := p.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ? AND is_active = TRUE",
			productID.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductInfo{}, errs.NewObjectNotFoundError("product", productID.String())
		}
		return ports.ProductInfo{}, errs.NewDependencyFailureError("catalog", err)
	}

	return ports.ProductInfo{
		UnitPrice:  dto.UnitPrice,
		Category:   dto.Category,
		Turnaround: time.Duration(dto.TurnaroundMinutes) * time.Minute,
	}, nil
}

var _ ports.TaxProvider = (*GormTaxProvider)(nil)

// GormTaxProvider implements TaxProvider using GORM. Tenants without a
// configured rate are taxed at zero.
type GormTaxProvider struct {
	db *gorm.DB
}

// NewGormTaxProvider creates a new GORM tax provider.
func NewGormTaxProvider(db *gorm.DB) *GormTaxProvider {
	return &GormTaxProvider{db: db}
}

// Rate resolves the tenant's current tax rate as a fraction.
func (p *GormTaxProvider) Rate(ctx context.Context, tenantID kernel.TenantID) (float64, error) {
	if err := tenantID.Validate(); err != nil {
		return 0, err
	}

	var dto TaxRateDTO
	err := p.db.WithContext(ctx).
		First(&dto, "tenant_id = ?", tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, errs.NewDependencyFailureError("tax_rate", err)
	}
	return dto.Rate, nil
}
