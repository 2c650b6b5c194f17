// Package stockrepo provides the transactional stock decrement for retail
// items sold with an order.
package stockrepo

import (
	"context"
	"errors"
	"fmt"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLevelDTO represents the on-hand quantity of one retail product.
type StockLevelDTO struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
}

// TableName specifies the database table name for stock levels.
func (StockLevelDTO) TableName() string {
	return "stock_levels"
}

// GormStockDeductor implements StockDeductor using GORM. The decrement is a
// single conditional UPDATE so concurrent deductions can never drive the
// quantity below zero.
type GormStockDeductor struct {
	db *gorm.DB
}

// NewGormStockDeductor creates a new GORM stock deductor.
func NewGormStockDeductor(db *gorm.DB) *GormStockDeductor {
	return &GormStockDeductor{db: db}
}

// Deduct atomically decrements the product's stock. A missing row or an
// insufficient quantity both fail the deduction, which rolls back the
// calling transaction.
func (d *GormStockDeductor) Deduct(ctx context.Context, tenantID kernel.TenantID, productID kernel.UUID, quantity int) error {
	if err := errors.Join(tenantID.Validate(), productID.Validate()); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	result := d.db.WithContext(ctx).
		Model(&StockLevelDTO{}).
		Where("tenant_id = ? AND product_id = ? AND quantity >= ?",
			tenantID.Bytes(), productID.Bytes(), quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewDependencyFailureError("stock",
			fmt.Errorf("insufficient stock for product %s", productID))
	}

	return nil
}
