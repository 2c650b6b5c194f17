// Package issuerepo provides persistence for quality issues raised against
// orders and individual items.
package issuerepo

import (
	"time"

	"cleanmatex/internal/core/domain/model/issue"
	"cleanmatex/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// IssueDTO represents the database row for a quality issue. An open issue
// has a NULL resolved_at; the ready gate query filters on it.
type IssueDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID  `gorm:"type:uuid;index"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	ItemID     *uuid.UUID `gorm:"type:uuid"`
	Code       string
	Text       string
	RaisedBy   string
	ResolvedBy string
	Notes      string
	CreatedAt  time.Time
	ResolvedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for issues.
func (IssueDTO) TableName() string {
	return "issues"
}

func fromDomain(aggregate *issue.Issue) IssueDTO {
	var itemID *uuid.UUID
	if id := aggregate.ItemID(); id != nil {
		raw := id.Bytes()
		itemID = &raw
	}

	return IssueDTO{
		ID:         aggregate.ID().Bytes(),
		TenantID:   aggregate.TenantID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		ItemID:     itemID,
		Code:       aggregate.Code(),
		Text:       aggregate.Text(),
		RaisedBy:   aggregate.RaisedBy(),
		ResolvedBy: aggregate.ResolvedBy(),
		Notes:      aggregate.Notes(),
		CreatedAt:  aggregate.CreatedAt(),
		ResolvedAt: aggregate.ResolvedAt(),
	}
}

func toDomain(dto IssueDTO) (*issue.Issue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.TenantIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var itemID *kernel.UUID
	if dto.ItemID != nil {
		iID, itemErr := kernel.UUIDFromBytes((*dto.ItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		itemID = &iID
	}

	return issue.RestoreIssue(
		id, tenantID, orderID, itemID,
		dto.Code, dto.Text, dto.RaisedBy, dto.ResolvedBy, dto.Notes,
		dto.CreatedAt, dto.ResolvedAt,
	)
}
