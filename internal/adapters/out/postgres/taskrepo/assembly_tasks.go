// Package taskrepo manages the assembly scan tasks the ready gate depends
// on. One task exists per order at most; creation is idempotent because the
// post-commit hook that creates tasks may fire more than once for the same
// order.
package taskrepo

import (
	"context"
	"errors"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssemblyTaskDTO represents the database row for an assembly scan task.
type AssemblyTaskDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_assembly_tasks_order,priority:1"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_assembly_tasks_order,priority:2"`
	CreatedAt time.Time
}

// TableName specifies the database table name for assembly tasks.
func (AssemblyTaskDTO) TableName() string {
	return "assembly_tasks"
}

// GormAssemblyTaskService implements AssemblyTaskService using GORM.
type GormAssemblyTaskService struct {
	db *gorm.DB
}

// NewGormAssemblyTaskService creates a new GORM assembly task service.
func NewGormAssemblyTaskService(db *gorm.DB) *GormAssemblyTaskService {
	return &GormAssemblyTaskService{db: db}
}

// Exists reports whether an assembly task exists for the order.
func (s *GormAssemblyTaskService) Exists(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) (bool, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&AssemblyTaskDTO{}).
		Where("tenant_id = ? AND order_id = ?", tenantID.Bytes(), orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateForOrder creates the order's assembly task. Creating an already
// existing task is a no-op.
func (s *GormAssemblyTaskService) CreateForOrder(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return err
	}

	dto := AssemblyTaskDTO{
		ID:        uuid.New(),
		TenantID:  tenantID.Bytes(),
		OrderID:   orderID.Bytes(),
		CreatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
