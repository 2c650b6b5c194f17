// Package numbering issues gapless per-tenant order numbers of the form
// YYYY-NNNNNN. The counter row is advanced with a single upsert inside the
// calling transaction, so the drawn number commits or rolls back together
// with the order it was drawn for.
package numbering

import (
	"context"
	"fmt"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CounterDTO represents the per-tenant, per-year number counter.
type CounterDTO struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year     int       `gorm:"primaryKey"`
	Counter  int64
}

// TableName specifies the database table name for number counters.
func (CounterDTO) TableName() string {
	return "order_number_counters"
}

// GormOrderNumberSequence implements OrderNumberSequence using GORM.
type GormOrderNumberSequence struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderNumberSequence creates a sequence over the given connection.
func NewGormOrderNumberSequence(db *gorm.DB) *GormOrderNumberSequence {
	return &GormOrderNumberSequence{db: db, now: time.Now}
}

// NewGormOrderNumberSequenceAt creates a sequence with an injected clock.
func NewGormOrderNumberSequenceAt(db *gorm.DB, now func() time.Time) *GormOrderNumberSequence {
	return &GormOrderNumberSequence{db: db, now: now}
}

// Next draws the tenant's next order number. The row-level lock taken by the
// upsert serializes concurrent draws, which keeps the sequence gapless as
// long as the calling transaction commits.
func (s *GormOrderNumberSequence) Next(ctx context.Context, tenantID kernel.TenantID) (string, error) {
	if err := tenantID.Validate(); err != nil {
		return "", err
	}

	year := s.now().UTC().Year()

	var counter int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO order_number_counters (tenant_id, year, counter)
		VALUES (?, ?, 1)
		ON CONFLICT (tenant_id, year)
		DO UPDATE SET counter = order_number_counters.counter + 1
		RETURNING counter
	`, tenantID.Bytes(), year).Scan(&counter).Error
	if err != nil {
		return "", errs.NewDependencyFailureError("order_numbering", err)
	}

	return fmt.Sprintf("%d-%06d", year, counter), nil
}
