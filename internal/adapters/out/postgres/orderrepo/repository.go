package orderrepo

import (
	"context"
	"errors"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// readyAndBeyondStatuses lists the statuses an order can no longer be
// overdue in. Once the order reaches the ready stage the promise to the
// customer is kept.
func readyAndBeyondStatuses() []string {
	return []string{
		order.Ready.String(),
		order.OutForDelivery.String(),
		order.Delivered.String(),
		order.Closed.String(),
	}
}

// GormOrderRepository implements OrderRepository using GORM. The aggregate
// spans four tables; writes upsert every row of the graph so tombstoned
// items and pieces persist alongside live ones.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with all its items, pieces, and step
// records. Items carved out of another order by a split may already have
// rows; those are re-pointed rather than duplicated.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := r.persist(ctx, fromDomain(aggregate), true); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order aggregate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := r.persist(ctx, fromDomain(aggregate), false); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// persist writes the aggregate graph. The header is created or updated;
// items and pieces are upserted so moves between orders and tombstones both
// land; step records are insert-only.
func (r *GormOrderRepository) persist(ctx context.Context, dto OrderDTO, create bool) (persistErr error) {
	items := dto.Items
	steps := dto.Steps
	dto.Items = nil
	dto.Steps = nil

	db := r.db.WithContext(ctx)

	if create {
		if err := db.Create(&dto).Error; err != nil {
			return err
		}
		// When running outside a transaction a partial graph write cannot be
		// rolled back, so compensate by deleting what was already created.
		defer func() {
			if persistErr != nil {
				r.compensateCreate(ctx, dto.ID)
			}
		}()
	} else {
		result := db.Model(&OrderDTO{}).
			Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
			Select("*").Omit("id").
			Updates(dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	for i := range items {
		pieces := items[i].Pieces
		items[i].Pieces = nil

		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&items[i]).Error; err != nil {
			return err
		}
		for j := range pieces {
			if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&pieces[j]).Error; err != nil {
				return err
			}
		}
	}

	for i := range steps {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&steps[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// compensateCreate removes the partially written aggregate graph. Inside a
// transaction the rollback makes this a no-op; errors are ignored because
// the original failure is what the caller needs to see.
func (r *GormOrderRepository) compensateCreate(ctx context.Context, orderID uuid.UUID) {
	db := r.db.WithContext(ctx)
	db.Where("order_id = ?", orderID).Delete(&StepRecordDTO{})
	db.Where("order_id = ?", orderID).Delete(&PieceDTO{})
	db.Where("order_id = ?", orderID).Delete(&ItemDTO{})
	db.Where("id = ?", orderID).Delete(&OrderDTO{})
}

// Get retrieves an order aggregate by tenant and identifier. Tombstoned
// orders are not found.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ? AND is_deleted = FALSE", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByPiece resolves the order owning a piece, scoped to the tenant.
func (r *GormOrderRepository) GetByPiece(ctx context.Context, tenantID kernel.TenantID, pieceID kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), pieceID.Validate()); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto OrderDTO
	err := db.
		Where("tenant_id = ? AND is_deleted = FALSE", tenantID.Bytes()).
		Where("id = (?)", db.Model(&PieceDTO{}).Select("order_id").Where("id = ?", pieceID.Bytes())).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("piece", pieceID.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetOverdue retrieves the tenant's orders whose ready-by time lies before
// asOf and that have not reached the ready stage.
func (r *GormOrderRepository) GetOverdue(ctx context.Context, tenantID kernel.TenantID, asOf time.Time) ([]*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	return r.findOverdue(ctx, &tenantID, asOf)
}

// GetAllOverdue retrieves overdue orders across every tenant.
func (r *GormOrderRepository) GetAllOverdue(ctx context.Context, asOf time.Time) ([]*order.Order, error) {
	return r.findOverdue(ctx, nil, asOf)
}

func (r *GormOrderRepository) findOverdue(ctx context.Context, tenantID *kernel.TenantID, asOf time.Time) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Where("ready_by IS NOT NULL AND ready_by < ?", asOf).
		Where("status NOT IN ?", readyAndBeyondStatuses()).
		Where("is_deleted = FALSE").
		Order("ready_by")
	if tenantID != nil {
		query = query.Where("tenant_id = ?", tenantID.Bytes())
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// load hydrates the aggregate's items, pieces, and step records under the
// already fetched header row.
func (r *GormOrderRepository) load(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	db := r.db.WithContext(ctx)

	var items []ItemDTO
	if err := db.Where("order_id = ?", dto.ID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	var pieces []PieceDTO
	if err := db.Where("order_id = ?", dto.ID).Order("item_id, sequence").Find(&pieces).Error; err != nil {
		return nil, err
	}

	byItem := make(map[uuid.UUID][]PieceDTO, len(items))
	for _, piece := range pieces {
		byItem[piece.ItemID] = append(byItem[piece.ItemID], piece)
	}
	for i := range items {
		items[i].Pieces = byItem[items[i].ID]
	}

	var steps []StepRecordDTO
	if err := db.Where("order_id = ?", dto.ID).Order("at").Find(&steps).Error; err != nil {
		return nil, err
	}

	dto.Items = items
	dto.Steps = steps
	return toDomain(dto)
}
