// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate is stored across four tables
// (orders, order_items, order_pieces, order_step_records) and is always
// loaded and saved as one unit.
package orderrepo

import (
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database row for an order header. Items, pieces,
// and step records live in their own tables keyed by order id.
type OrderDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_orders_tenant_number,priority:1"`
	Number   string    `gorm:"uniqueIndex:idx_orders_tenant_number,priority:2"`

	Status string `gorm:"index"`
	Stage  string

	CustomerID uuid.UUID `gorm:"type:uuid"`
	BranchID   uuid.UUID `gorm:"type:uuid"`

	QuickDrop         bool
	QuickDropQuantity int
	Express           bool
	RetailOnly        bool

	HasSplit bool
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Subtype  string

	HasIssue bool
	Rejected bool

	TaxRate   float64
	Subtotal  float64
	TaxAmount float64
	Total     float64

	ReadyBy      *time.Time `gorm:"index"`
	RackLocation string
	QAStatus     string `gorm:"column:qa_status"`

	IsDeleted bool

	Items []ItemDTO       `gorm:"foreignKey:OrderID;references:ID"`
	Steps []StepRecordDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order headers.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database row for an order item.
type ItemDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	ProductID     uuid.UUID `gorm:"type:uuid"`
	Category      string
	Quantity      int
	QuantityReady int
	UnitPrice     float64
	Status        int
	LastStep      string
	Rejected      bool
	IsDeleted     bool

	Pieces []PieceDTO `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PieceDTO represents the database row for an individually tracked piece.
type PieceDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID       uuid.UUID `gorm:"type:uuid;index"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	Sequence     int
	Status       int
	Scanned      bool
	Rejected     bool
	RackLocation string
	Color        string
	Brand        string
	Note         string
	LastStep     string
	IsDeleted    bool
}

// TableName specifies the database table name for pieces.
func (PieceDTO) TableName() string {
	return "order_pieces"
}

// StepRecordDTO represents the database row for a processing step record.
// Rows are insert-only; a unique index on (item_id, step_code) backs the
// at-most-one-record-per-step rule at the storage level too.
type StepRecordDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_step_records_item_code,priority:1"`
	StepCode string    `gorm:"uniqueIndex:idx_step_records_item_code,priority:2"`
	Actor    string
	At       time.Time
}

// TableName specifies the database table name for step records.
func (StepRecordDTO) TableName() string {
	return "order_step_records"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var parentID *uuid.UUID
	if id := aggregate.ParentID(); id != nil {
		raw := id.Bytes()
		parentID = &raw
	}

	dto := OrderDTO{
		ID:                aggregate.ID().Bytes(),
		TenantID:          aggregate.TenantID().Bytes(),
		Number:            aggregate.Number(),
		Status:            aggregate.Status().String(),
		Stage:             aggregate.Stage().String(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		BranchID:          aggregate.BranchID().Bytes(),
		QuickDrop:         aggregate.IsQuickDrop(),
		QuickDropQuantity: aggregate.QuickDropQuantity(),
		Express:           aggregate.IsExpress(),
		RetailOnly:        aggregate.IsRetailOnly(),
		HasSplit:          aggregate.HasSplit(),
		ParentID:          parentID,
		Subtype:           aggregate.Subtype(),
		HasIssue:          aggregate.HasIssue(),
		Rejected:          aggregate.IsRejected(),
		TaxRate:           aggregate.TaxRate(),
		Subtotal:          aggregate.Subtotal(),
		TaxAmount:         aggregate.TaxAmount(),
		Total:             aggregate.Total(),
		ReadyBy:           aggregate.ReadyBy(),
		RackLocation:      aggregate.RackLocation().String(),
		QAStatus:          aggregate.QAStatus().String(),
		IsDeleted:         aggregate.IsDeleted(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, itemFromDomain(item))
	}
	for _, record := range aggregate.StepRecords() {
		dto.Steps = append(dto.Steps, stepFromDomain(record))
	}

	return dto
}

func itemFromDomain(item *order.Item) ItemDTO {
	dto := ItemDTO{
		ID:            item.ID().Bytes(),
		OrderID:       item.OrderID().Bytes(),
		ProductID:     item.ProductID().Bytes(),
		Category:      item.Category(),
		Quantity:      item.Quantity(),
		QuantityReady: item.QuantityReady(),
		UnitPrice:     item.UnitPrice(),
		Status:        int(item.Status()),
		LastStep:      item.LastStep(),
		Rejected:      item.IsRejected(),
		IsDeleted:     item.IsDeleted(),
	}

	for _, piece := range item.Pieces() {
		dto.Pieces = append(dto.Pieces, pieceFromDomain(piece))
	}

	return dto
}

func pieceFromDomain(piece *order.Piece) PieceDTO {
	attrs := piece.Attributes()
	return PieceDTO{
		ID:           piece.ID().Bytes(),
		ItemID:       piece.ItemID().Bytes(),
		OrderID:      piece.OrderID().Bytes(),
		Sequence:     piece.Sequence(),
		Status:       int(piece.Status()),
		Scanned:      piece.IsScanned(),
		Rejected:     piece.IsRejected(),
		RackLocation: piece.RackLocation().String(),
		Color:        attrs.Color,
		Brand:        attrs.Brand,
		Note:         attrs.Note,
		LastStep:     piece.LastStep(),
		IsDeleted:    piece.IsDeleted(),
	}
}

func stepFromDomain(record *order.StepRecord) StepRecordDTO {
	return StepRecordDTO{
		ID:       record.ID().Bytes(),
		OrderID:  record.OrderID().Bytes(),
		ItemID:   record.ItemID().Bytes(),
		StepCode: record.StepCode(),
		Actor:    record.Actor(),
		At:       record.At(),
	}
}

// toDomain reconstructs the aggregate from its rows. Pieces arrive grouped
// under their items; items and step records attach to the restored header.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.TenantIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	stage, err := order.StageFromString(dto.Stage)
	if err != nil {
		return nil, err
	}
	qaStatus, err := order.QAStatusFromString(dto.QAStatus)
	if err != nil {
		return nil, err
	}

	rack, err := rackLocationFromColumn(dto.RackLocation)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.RestoreOrder(
		id, tenantID, dto.Number, status, stage,
		customerID, branchID,
		dto.QuickDrop, dto.QuickDropQuantity,
		dto.Express, dto.RetailOnly, dto.HasSplit,
		parentID, dto.Subtype,
		dto.HasIssue, dto.Rejected,
		dto.TaxRate, dto.Subtotal, dto.TaxAmount, dto.Total,
		dto.ReadyBy, rack, qaStatus, dto.IsDeleted,
	)
	if err != nil {
		return nil, err
	}

	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		aggregate.AttachItem(item)
	}

	for _, stepDTO := range dto.Steps {
		record, stepErr := stepToDomain(stepDTO)
		if stepErr != nil {
			return nil, stepErr
		}
		aggregate.AttachStepRecord(record)
	}

	return aggregate, nil
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	item, err := order.RestoreItem(
		id, orderID, productID,
		dto.Category, dto.Quantity, dto.QuantityReady, dto.UnitPrice,
		order.ItemStatus(dto.Status), dto.LastStep,
		dto.Rejected, dto.IsDeleted,
	)
	if err != nil {
		return nil, err
	}

	for _, pieceDTO := range dto.Pieces {
		piece, pieceErr := pieceToDomain(pieceDTO)
		if pieceErr != nil {
			return nil, pieceErr
		}
		item.AttachPiece(piece)
	}

	return item, nil
}

func pieceToDomain(dto PieceDTO) (*order.Piece, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	rack, err := rackLocationFromColumn(dto.RackLocation)
	if err != nil {
		return nil, err
	}

	return order.RestorePiece(
		id, itemID, orderID,
		dto.Sequence, order.PieceStatus(dto.Status),
		dto.Scanned, dto.Rejected, rack,
		order.PieceAttributes{Color: dto.Color, Brand: dto.Brand, Note: dto.Note},
		dto.LastStep, dto.IsDeleted,
	)
}

func stepToDomain(dto StepRecordDTO) (*order.StepRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreStepRecord(id, orderID, itemID, dto.StepCode, dto.Actor, dto.At), nil
}

// rackLocationFromColumn maps the stored rack code back to the value object.
// The empty string round-trips to the unset value.
func rackLocationFromColumn(code string) (kernel.RackLocation, error) {
	if code == "" {
		return kernel.RackLocation{}, nil
	}
	return kernel.NewRackLocation(code)
}
