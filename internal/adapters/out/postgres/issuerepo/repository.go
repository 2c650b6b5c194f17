package issuerepo

import (
	"context"
	"errors"

	"cleanmatex/internal/core/domain/model/issue"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormIssueRepository implements IssueRepository using GORM.
type GormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository creates a new GORM issue repository.
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

// Add saves a new issue to the database.
func (r *GormIssueRepository) Add(ctx context.Context, aggregate *issue.Issue) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing issue to the database.
func (r *GormIssueRepository) Update(ctx context.Context, aggregate *issue.Issue) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&IssueDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves an issue by tenant and identifier.
func (r *GormIssueRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*issue.Issue, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto IssueDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("issue", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByOrder retrieves the unresolved issues attached to an order.
func (r *GormIssueRepository) GetOpenByOrder(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) ([]*issue.Issue, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []IssueDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ? AND resolved_at IS NULL", tenantID.Bytes(), orderID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	issues := make([]*issue.Issue, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		issues = append(issues, aggregate)
	}

	return issues, nil
}
