// Package workflowrepo owns the authoritative workflow transition decision.
// The default lifecycle is the linear status chain; a tenant may disable
// statuses, in which case the chain skips over them. Every accepted
// transition is recorded in the transition log inside the calling
// transaction.
package workflowrepo

import (
	"context"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkflowStatusDTO marks one status as enabled for a tenant. Tenants
// without any rows run the full default chain.
type WorkflowStatusDTO struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status   string    `gorm:"primaryKey"`
}

// TableName specifies the database table name for tenant workflow statuses.
func (WorkflowStatusDTO) TableName() string {
	return "tenant_workflow_statuses"
}

// TransitionLogDTO represents one accepted transition. Rows are insert-only.
type TransitionLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string
	ToStatus   string
	Actor      string
	At         time.Time
}

// TableName specifies the database table name for the transition log.
func (TransitionLogDTO) TableName() string {
	return "order_transitions"
}

// GormTransitionValidator implements TransitionValidator using GORM.
type GormTransitionValidator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormTransitionValidator creates a new GORM transition validator.
func NewGormTransitionValidator(db *gorm.DB) *GormTransitionValidator {
	return &GormTransitionValidator{db: db, now: time.Now}
}

// NewGormTransitionValidatorAt creates a validator with an injected clock.
func NewGormTransitionValidatorAt(db *gorm.DB, now func() time.Time) *GormTransitionValidator {
	return &GormTransitionValidator{db: db, now: now}
}

// Execute validates the transition of aggregate to target and records it in
// the transition log. The aggregate's status is not modified; the caller
// applies the transition after Execute succeeds.
func (v *GormTransitionValidator) Execute(ctx context.Context, aggregate *order.Order, target order.Status, actor string) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	allowed, err := v.AllowedNext(ctx, aggregate)
	if err != nil {
		return err
	}

	from := aggregate.Status()
	if !containsStatus(allowed, target) {
		return errs.NewStateConflictError(from.String(), target.String(), nil)
	}

	dto := TransitionLogDTO{
		ID:         uuid.New(),
		TenantID:   aggregate.TenantID().Bytes(),
		OrderID:    aggregate.ID().Bytes(),
		FromStatus: from.String(),
		ToStatus:   target.String(),
		Actor:      actor,
		At:         v.now().UTC(),
	}
	return v.db.WithContext(ctx).Create(&dto).Error
}

// AllowedNext returns the statuses the aggregate may move to from its
// current position: the next enabled status in the chain, or nothing from a
// terminal status.
func (v *GormTransitionValidator) AllowedNext(ctx context.Context, aggregate *order.Order) ([]order.Status, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	enabled, err := v.enabledStatuses(ctx, aggregate.TenantID())
	if err != nil {
		return nil, err
	}

	current := aggregate.Status()
	for {
		next, ok := current.DefaultNext()
		if !ok {
			return []order.Status{}, nil
		}
		if enabled == nil || enabled[next] {
			return []order.Status{next}, nil
		}
		current = next
	}
}

// enabledStatuses loads the tenant's workflow subset. A nil map means the
// tenant runs the full default chain.
func (v *GormTransitionValidator) enabledStatuses(ctx context.Context, tenantID kernel.TenantID) (map[order.Status]bool, error) {
	var dtos []WorkflowStatusDTO
	err := v.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID.Bytes()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	enabled := make(map[order.Status]bool, len(dtos))
	for _, dto := range dtos {
		status, parseErr := order.StatusFromString(dto.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		enabled[status] = true
	}
	return enabled, nil
}

func containsStatus(statuses []order.Status, target order.Status) bool {
	for _, status := range statuses {
		if status == target {
			return true
		}
	}
	return false
}
