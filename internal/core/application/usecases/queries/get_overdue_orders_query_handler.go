package queries

import (
	"context"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueOrdersQueryHandler retrieves overdue orders straight from the
// database. Orders already racked as ready or beyond do not count as
// overdue, nor do tombstoned ones.
type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrdersQueryHandler creates a handler for overdue order
// queries.
func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by ready-by, most overdue
// first.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]GetOverdueOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	overdue := make([]GetOverdueOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			ready_by
		FROM orders
		WHERE tenant_id = ?
		  AND ready_by IS NOT NULL
		  AND ready_by < ?
		  AND status NOT IN (?, ?, ?, ?)
		  AND is_deleted = FALSE
		ORDER BY ready_by
	`,
		query.TenantID().String(),
		query.AsOf(),
		order.Ready.String(),
		order.OutForDelivery.String(),
		order.Delivered.String(),
		order.Closed.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var number, status string
		var readyBy time.Time

		if err = rows.Scan(&id, &number, &status, &readyBy); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		parsedStatus, stErr := order.StatusFromString(status)
		if stErr != nil {
			return nil, stErr
		}

		overdue = append(overdue, GetOverdueOrdersQueryResponse{
			OrderID: orderID,
			Number:  number,
			Status:  parsedStatus,
			ReadyBy: readyBy,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
