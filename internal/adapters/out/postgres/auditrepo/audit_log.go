// Package auditrepo persists the append-only order audit trail.
package auditrepo

import (
	"context"
	"time"

	"cleanmatex/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEntryDTO represents one row of the audit trail. Rows are insert-only.
type AuditEntryDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	Actor    string
	Action   string
	Detail   string
	At       time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

// GormAuditLog implements AuditLog using GORM. Entries are written inside the
// calling transaction so the trail commits or rolls back with the change it
// describes.
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GORM audit log.
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Record appends one audit entry.
func (l *GormAuditLog) Record(ctx context.Context, entry ports.AuditEntry) error {
	dto := AuditEntryDTO{
		ID:       uuid.New(),
		TenantID: entry.TenantID.Bytes(),
		OrderID:  entry.OrderID.Bytes(),
		Actor:    entry.Actor,
		Action:   entry.Action,
		Detail:   entry.Detail,
		At:       entry.At,
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}
