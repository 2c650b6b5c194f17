package order

import (
	"errors"
	"fmt"
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is returned when a non-quick-drop order is created
	// without any items.
	ErrOrderHasNoItems = errors.New("order requires at least one item")
)

// SubtypeSplit marks a child order carved out of a parent by a split.
const SubtypeSplit = "split"

// StepItemCompleted is the processing step code stamped when an item is
// marked complete.
const StepItemCompleted = "ITEM_COMPLETED"

// Order is the aggregate root of the order lifecycle. It owns its items,
// their pieces, and the immutable processing step records, and it is the only
// entry point for mutating them, so the derived aggregates (quantity_ready,
// "all items ready") can never drift from piece state.
//
// Invariants:
//   - every entity in the aggregate carries the owning tenant id
//   - live piece sequences per item form the dense range [1..n]
//   - quantity_ready always equals the count of ready, non-rejected pieces
//   - deletion is a tombstone, never physical removal
type Order struct {
	id       kernel.UUID
	tenantID kernel.TenantID
	number   string

	status Status
	stage  Stage

	customerID kernel.UUID
	branchID   kernel.UUID

	quickDrop         bool
	quickDropQuantity int
	express           bool
	retailOnly        bool

	hasSplit bool
	parentID *kernel.UUID
	subtype  string

	hasIssue bool
	rejected bool

	taxRate   float64
	subtotal  float64
	taxAmount float64
	total     float64

	readyBy      *time.Time
	rackLocation kernel.RackLocation
	qaStatus     QAStatus

	deleted bool

	items []*Item
	steps []*StepRecord

	isConstructed bool
}

// NewOrderParams carries everything needed to assemble a new order with its
// items and pieces as one unit.
type NewOrderParams struct {
	ID         kernel.UUID
	TenantID   kernel.TenantID
	Number     string
	CustomerID kernel.UUID
	BranchID   kernel.UUID

	QuickDrop         bool
	QuickDropQuantity int
	Express           bool

	TaxRate float64
	ReadyBy *time.Time

	// ParentID and Subtype are set when the order is carved out of another
	// order by a split.
	ParentID *kernel.UUID
	Subtype  string

	Items []ItemParams
}

// NewOrder assembles an order header, its items, and exactly quantity pieces
// per item as one unit, and decides the initial workflow position:
//
//   - retail-only orders (every item in a no-processing category) are created
//     directly in the terminal Closed status, bypassing the workflow
//   - quick-drop orders whose supplied items fall short of the declared
//     quantity start at Intake in the preparing stage
//   - all other orders start at Intake in the processing stage
func NewOrder(params NewOrderParams) (*Order, error) {
	o := &Order{
		isConstructed: true,
		qaStatus:      QAPending,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setTenantID(params.TenantID),
		o.setNumber(params.Number),
		o.setCustomerID(params.CustomerID),
		o.setBranchID(params.BranchID),
		o.setQuickDrop(params.QuickDrop, params.QuickDropQuantity),
		o.setTaxRate(params.TaxRate),
	); err != nil {
		return nil, err
	}

	// Split children start empty and receive their items from the parent
	// afterwards, so the no-items rule does not apply to them.
	if len(params.Items) == 0 && !params.QuickDrop && params.Subtype != SubtypeSplit {
		return nil, ErrOrderHasNoItems
	}

	o.express = params.Express
	o.readyBy = params.ReadyBy
	o.parentID = params.ParentID
	o.subtype = params.Subtype

	for _, itemParams := range params.Items {
		item, err := newItem(o.id, itemParams)
		if err != nil {
			return nil, err
		}
		o.items = append(o.items, item)
	}

	o.retailOnly = o.computeRetailOnly()
	o.applyInitialStatus()
	o.recalcTotals()

	return o, nil
}

// RestoreOrder reconstructs the order header from persistence. Items, pieces,
// and step records are attached afterwards via AttachItem and AttachStepRecord.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	number string,
	status Status,
	stage Stage,
	customerID, branchID kernel.UUID,
	quickDrop bool,
	quickDropQuantity int,
	express, retailOnly, hasSplit bool,
	parentID *kernel.UUID,
	subtype string,
	hasIssue, rejected bool,
	taxRate, subtotal, taxAmount, total float64,
	readyBy *time.Time,
	rackLocation kernel.RackLocation,
	qaStatus QAStatus,
	deleted bool,
) (*Order, error) {
	o := &Order{
		id:                id,
		tenantID:          tenantID,
		number:            number,
		status:            status,
		stage:             stage,
		customerID:        customerID,
		branchID:          branchID,
		quickDrop:         quickDrop,
		quickDropQuantity: quickDropQuantity,
		express:           express,
		retailOnly:        retailOnly,
		hasSplit:          hasSplit,
		parentID:          parentID,
		subtype:           subtype,
		hasIssue:          hasIssue,
		rejected:          rejected,
		taxRate:           taxRate,
		subtotal:          subtotal,
		taxAmount:         taxAmount,
		total:             total,
		readyBy:           readyBy,
		rackLocation:      rackLocation,
		qaStatus:          qaStatus,
		deleted:           deleted,
		isConstructed:     true,
	}

	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.TenantID { return o.tenantID }

// Number returns the tenant-and-year scoped order number.
func (o *Order) Number() string { return o.number }

// Status returns the current workflow status.
func (o *Order) Status() Status { return o.status }

// Stage returns the coarse lifecycle phase.
func (o *Order) Stage() Stage { return o.stage }

// CustomerID returns the customer reference.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// BranchID returns the branch reference.
func (o *Order) BranchID() kernel.UUID { return o.branchID }

// IsQuickDrop reports whether the order was created before its full item
// contents were known.
func (o *Order) IsQuickDrop() bool { return o.quickDrop }

// QuickDropQuantity returns the declared piece count of a quick-drop order.
func (o *Order) QuickDropQuantity() int { return o.quickDropQuantity }

// IsExpress reports whether the express turnaround applies.
func (o *Order) IsExpress() bool { return o.express }

// IsRetailOnly reports whether every item belongs to a no-processing category.
func (o *Order) IsRetailOnly() bool { return o.retailOnly }

// HasSplit reports whether child orders were carved out of this order.
func (o *Order) HasSplit() bool { return o.hasSplit }

// ParentID returns the parent order id for split children, nil otherwise.
func (o *Order) ParentID() *kernel.UUID { return o.parentID }

// Subtype returns the order subtype ("split" for split children).
func (o *Order) Subtype() string { return o.subtype }

// HasIssue reports whether any open quality issue is attached.
func (o *Order) HasIssue() bool { return o.hasIssue }

// IsRejected reports whether the order carries a rejection flag.
func (o *Order) IsRejected() bool { return o.rejected }

// TaxRate returns the tenant tax rate applied to the order.
func (o *Order) TaxRate() float64 { return o.taxRate }

// Subtotal returns the sum of live item line totals.
func (o *Order) Subtotal() float64 { return o.subtotal }

// TaxAmount returns the tax applied on top of the subtotal.
func (o *Order) TaxAmount() float64 { return o.taxAmount }

// Total returns subtotal plus tax.
func (o *Order) Total() float64 { return o.total }

// ReadyBy returns the promised completion deadline, nil when not yet derived.
func (o *Order) ReadyBy() *time.Time { return o.readyBy }

// RackLocation returns the rack slot, empty while the order is unracked.
func (o *Order) RackLocation() kernel.RackLocation { return o.rackLocation }

// QAStatus returns the quality-assurance verdict.
func (o *Order) QAStatus() QAStatus { return o.qaStatus }

// IsDeleted reports whether the order is tombstoned.
func (o *Order) IsDeleted() bool { return o.deleted }

// Items returns all items, including tombstoned ones.
func (o *Order) Items() []*Item { return o.items }

// LiveItems returns the non-tombstoned items.
func (o *Order) LiveItems() []*Item {
	live := make([]*Item, 0, len(o.items))
	for _, item := range o.items {
		if !item.IsDeleted() {
			live = append(live, item)
		}
	}
	return live
}

// Item returns the live item with the given id.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) && !item.IsDeleted() {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", itemID.String())
}

// StepRecords returns the immutable processing step history.
func (o *Order) StepRecords() []*StepRecord { return o.steps }

// AttachItem binds a restored item during rehydration.
func (o *Order) AttachItem(item *Item) {
	o.items = append(o.items, item)
}

// AttachStepRecord binds a restored step record during rehydration.
func (o *Order) AttachStepRecord(record *StepRecord) {
	o.steps = append(o.steps, record)
}

// SetReadyBy sets the promised completion deadline.
func (o *Order) SetReadyBy(readyBy time.Time) {
	o.readyBy = &readyBy
}

// SetRackLocation racks the order at the given slot.
func (o *Order) SetRackLocation(location kernel.RackLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.rackLocation = location
	return nil
}

// SetQAStatus records the quality-assurance verdict.
func (o *Order) SetQAStatus(status QAStatus) {
	o.qaStatus = status
}

// ApplyTransition records a status change decided by the transition
// validator. The aggregate only refuses transitions out of a terminal state;
// the allowed/blocked decision itself is owned by the validator.
func (o *Order) ApplyTransition(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewStateConflictError(o.status.String(), to.String(), nil)
	}

	o.status = to
	o.stage = StageFor(to)
	return nil
}

// FindPiece locates a live piece and its owning item anywhere in the order.
func (o *Order) FindPiece(pieceID kernel.UUID) (*Item, *Piece, error) {
	for _, item := range o.items {
		if item.IsDeleted() {
			continue
		}
		if piece, err := item.Piece(pieceID); err == nil {
			return item, piece, nil
		}
	}
	return nil, nil, errs.NewObjectNotFoundError("piece", pieceID.String())
}

// UpdatePiece applies a partial update to one piece. The owning item's
// quantity_ready is recomputed synchronously when the patch touches status
// or rejection.
func (o *Order) UpdatePiece(pieceID kernel.UUID, patch PiecePatch) (*Piece, error) {
	item, _, err := o.FindPiece(pieceID)
	if err != nil {
		return nil, err
	}
	return item.UpdatePiece(pieceID, patch)
}

// DeletePiece tombstones one piece, re-syncs the owning item and recomputes
// the order totals.
func (o *Order) DeletePiece(pieceID kernel.UUID) error {
	item, _, err := o.FindPiece(pieceID)
	if err != nil {
		return err
	}
	if err := item.DeletePiece(pieceID); err != nil {
		return err
	}
	o.recalcTotals()
	return nil
}

// RecordStep stamps a processing step record for an item. At most one record
// exists per (item, step code); a repeat is a no-op and returns the existing
// record with created=false. The item's last-step pointer always advances.
func (o *Order) RecordStep(itemID kernel.UUID, stepCode, actor string, at time.Time) (*StepRecord, bool, error) {
	item, err := o.Item(itemID)
	if err != nil {
		return nil, false, err
	}

	for _, record := range o.steps {
		if record.ItemID().IsEqual(itemID) && record.StepCode() == stepCode {
			item.lastStep = stepCode
			return record, false, nil
		}
	}

	record := newStepRecord(o.id, itemID, stepCode, actor, at)
	o.steps = append(o.steps, record)
	item.lastStep = stepCode
	return record, true, nil
}

// MarkItemComplete sets the item ready and stamps the completion step.
func (o *Order) MarkItemComplete(itemID kernel.UUID, actor string, at time.Time) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	item.MarkComplete(StepItemCompleted)
	_, _, err = o.RecordStep(itemID, StepItemCompleted, actor, at)
	return err
}

// AllItemsReady reports whether every live item counts as ready for the
// order-level aggregation. An item in the untouched pending state counts as
// ready here, matching the aggregation behavior the workflow has always had;
// see DESIGN.md for the recorded ambiguity.
func (o *Order) AllItemsReady() bool {
	live := o.LiveItems()
	if len(live) == 0 {
		return false
	}
	for _, item := range live {
		if item.Status() != ItemReady && item.Status() != ItemPending {
			return false
		}
	}
	return true
}

// FlagIssue marks the order as carrying at least one open quality issue.
func (o *Order) FlagIssue() {
	o.hasIssue = true
}

// ClearIssueFlag removes the open-issue marker once the last issue resolves.
func (o *Order) ClearIssueFlag() {
	o.hasIssue = false
}

// MarkSplit records that a child order was carved out of this order.
func (o *Order) MarkSplit() {
	o.hasSplit = true
}

// Tombstone marks the order deleted. Physical removal never happens.
func (o *Order) Tombstone() {
	o.deleted = true
}

// PieceCount returns the number of live pieces across all live items.
func (o *Order) PieceCount() int {
	count := 0
	for _, item := range o.LiveItems() {
		count += len(item.LivePieces())
	}
	return count
}

// ExtractPiecesForSplit tombstones the selected pieces on one item and
// returns their attributes and identifiers for re-creation on a split child.
// Sequences that do not resolve to a live piece are reported as missing so a
// partially satisfiable selection still migrates what it can.
func (o *Order) ExtractPiecesForSplit(
	itemID kernel.UUID, sequences []int,
) (moved []PieceAttributes, movedIDs []kernel.UUID, missing []int, err error) {
	item, err := o.Item(itemID)
	if err != nil {
		return nil, nil, nil, err
	}

	moved, movedIDs, missing = item.extractPieces(sequences)
	o.recalcTotals()
	return moved, movedIDs, missing, nil
}

// AdoptItem repoints a whole item from another order onto this one.
func (o *Order) AdoptItem(item *Item) error {
	if err := item.reassignTo(o.id); err != nil {
		return err
	}
	o.items = append(o.items, item)
	o.recalcTotals()
	return nil
}

// DetachItem removes a whole item from the order for migration to a split
// child. The item is handed over live, not tombstoned.
func (o *Order) DetachItem(itemID kernel.UUID) (*Item, error) {
	for idx, item := range o.items {
		if item.ID().IsEqual(itemID) && !item.IsDeleted() {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.recalcTotals()
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", itemID.String())
}

// AddItem appends a new item with its pieces to the order. Used when a
// quick-drop order is completed during the preparation stage.
func (o *Order) AddItem(params ItemParams) (*Item, error) {
	item, err := newItem(o.id, params)
	if err != nil {
		return nil, err
	}
	o.items = append(o.items, item)
	o.retailOnly = o.computeRetailOnly()
	o.recalcTotals()
	return item, nil
}

// recalcTotals recomputes subtotal, tax, and total from the live items.
func (o *Order) recalcTotals() {
	subtotal := 0.0
	for _, item := range o.LiveItems() {
		subtotal += item.LineTotal()
	}
	o.subtotal = subtotal
	o.taxAmount = subtotal * o.taxRate
	o.total = o.subtotal + o.taxAmount
}

// computeRetailOnly reports whether the order consists solely of items that
// need no processing. Empty orders (quick drop) never count as retail-only.
func (o *Order) computeRetailOnly() bool {
	live := o.LiveItems()
	if len(live) == 0 {
		return false
	}
	for _, item := range live {
		if item.RequiresProcessing() {
			return false
		}
	}
	return true
}

// applyInitialStatus positions a freshly assembled order in the workflow.
func (o *Order) applyInitialStatus() {
	switch {
	case o.retailOnly:
		o.status = Closed
		o.stage = StageFinished
	case o.quickDrop && o.suppliedQuantity() < o.quickDropQuantity:
		o.status = Intake
		o.stage = StagePreparing
	default:
		o.status = Intake
		o.stage = StageProcessing
	}
}

// suppliedQuantity sums the quantities of the live items.
func (o *Order) suppliedQuantity() int {
	total := 0
	for _, item := range o.LiveItems() {
		total += item.Quantity()
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch id", err)
	}
	o.branchID = branchID
	return nil
}

func (o *Order) setQuickDrop(quickDrop bool, declaredQuantity int) error {
	if quickDrop && declaredQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quick drop quantity",
			fmt.Errorf("%d is not greater than 0", declaredQuantity))
	}
	o.quickDrop = quickDrop
	if quickDrop {
		o.quickDropQuantity = declaredQuantity
	}
	return nil
}

func (o *Order) setTaxRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return errs.NewValueIsOutOfRangeError("tax rate", rate, 0, 1)
	}
	o.taxRate = rate
	return nil
}
