package order

import (
	"fmt"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"
)

// RetailCategory is the service category for items that need no processing.
// An order whose items all belong to it bypasses the workflow entirely.
const RetailCategory = "RETAIL_ITEMS"

// ItemStatus is the aggregate processing state of an order item.
type ItemStatus int

const (
	ItemStatusUnknown ItemStatus = iota
	ItemPending
	ItemInProgress
	ItemReady
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown: "UNKNOWN",
		ItemPending:       "PENDING",
		ItemInProgress:    "IN_PROGRESS",
		ItemReady:         "READY",
	}
}

// String returns the item status code.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the ItemStatus is one of the defined states.
func (s ItemStatus) Validate() error {
	if s <= ItemStatusUnknown || s > ItemReady {
		return errs.NewValueIsInvalidErrorWithCause("item status",
			fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// Item is a product line of an order. It owns exactly quantity pieces (one
// per unit) and a derived quantity_ready aggregate that is recomputed from
// scratch after every piece mutation, never incrementally patched.
type Item struct {
	id            kernel.UUID
	orderID       kernel.UUID
	productID     kernel.UUID
	category      string
	quantity      int
	quantityReady int
	unitPrice     float64
	status        ItemStatus
	lastStep      string
	rejected      bool
	deleted       bool
	pieces        []*Piece
}

// ItemParams carries the input for creating one item with its pieces.
// PerPieceAttrs overrides BaseAttrs by sequence match (index 0 -> sequence 1);
// missing entries fall back to BaseAttrs.
type ItemParams struct {
	ProductID     kernel.UUID
	Category      string
	Quantity      int
	UnitPrice     float64
	BaseAttrs     PieceAttributes
	PerPieceAttrs []PieceAttributes
}

// newItem creates an item and its full piece set. Items only come into
// existence inside an order aggregate.
func newItem(orderID kernel.UUID, params ItemParams) (*Item, error) {
	if err := params.ProductID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("item product id", err)
	}
	if params.Quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", params.Quantity))
	}
	if params.UnitPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%v is negative", params.UnitPrice))
	}

	item := &Item{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		productID: params.ProductID,
		category:  params.Category,
		quantity:  params.Quantity,
		unitPrice: params.UnitPrice,
		status:    ItemPending,
	}
	item.createPieces(params.BaseAttrs, params.PerPieceAttrs)

	return item, nil
}

// RestoreItem reconstructs an item from persistence. Pieces are attached
// separately via AttachPiece to keep repository mapping flat.
func RestoreItem(
	id, orderID, productID kernel.UUID,
	category string,
	quantity, quantityReady int,
	unitPrice float64,
	status ItemStatus,
	lastStep string,
	rejected, deleted bool,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Item{
		id:            id,
		orderID:       orderID,
		productID:     productID,
		category:      category,
		quantity:      quantity,
		quantityReady: quantityReady,
		unitPrice:     unitPrice,
		status:        status,
		lastStep:      lastStep,
		rejected:      rejected,
		deleted:       deleted,
	}, nil
}

// createPieces creates exactly quantity sequenced pieces. Per-piece attribute
// overrides match by sequence.
func (i *Item) createPieces(base PieceAttributes, perPiece []PieceAttributes) {
	i.pieces = make([]*Piece, 0, i.quantity)
	for seq := 1; seq <= i.quantity; seq++ {
		attrs := base
		if seq-1 < len(perPiece) {
			attrs = perPiece[seq-1]
		}
		i.pieces = append(i.pieces, newPiece(i.id, i.orderID, seq, attrs))
	}
}

// AttachPiece binds a restored piece to the item during rehydration.
func (i *Item) AttachPiece(piece *Piece) {
	i.pieces = append(i.pieces, piece)
}

// ID returns the item identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// OrderID returns the owning order identifier.
func (i *Item) OrderID() kernel.UUID { return i.orderID }

// ProductID returns the product reference.
func (i *Item) ProductID() kernel.UUID { return i.productID }

// Category returns the service category code.
func (i *Item) Category() string { return i.category }

// Quantity returns the ordered unit count.
func (i *Item) Quantity() int { return i.quantity }

// QuantityReady returns the derived count of ready, non-rejected pieces.
func (i *Item) QuantityReady() int { return i.quantityReady }

// UnitPrice returns the price per unit.
func (i *Item) UnitPrice() float64 { return i.unitPrice }

// LineTotal returns unit price times quantity.
func (i *Item) LineTotal() float64 { return i.unitPrice * float64(i.quantity) }

// Status returns the aggregate item state.
func (i *Item) Status() ItemStatus { return i.status }

// LastStep returns the code of the last processing step recorded for the item.
func (i *Item) LastStep() string { return i.lastStep }

// IsRejected reports whether the item carries a rejection flag.
func (i *Item) IsRejected() bool { return i.rejected }

// IsDeleted reports whether the item is tombstoned.
func (i *Item) IsDeleted() bool { return i.deleted }

// RequiresProcessing reports whether the item goes through the workflow.
func (i *Item) RequiresProcessing() bool { return i.category != RetailCategory }

// Pieces returns all pieces including tombstoned ones.
func (i *Item) Pieces() []*Piece { return i.pieces }

// LivePieces returns the non-tombstoned pieces in sequence order.
func (i *Item) LivePieces() []*Piece {
	live := make([]*Piece, 0, len(i.pieces))
	for _, p := range i.pieces {
		if !p.IsDeleted() {
			live = append(live, p)
		}
	}
	return live
}

// Piece returns the live piece with the given id.
func (i *Item) Piece(pieceID kernel.UUID) (*Piece, error) {
	for _, p := range i.pieces {
		if p.ID().IsEqual(pieceID) && !p.IsDeleted() {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("piece", pieceID.String())
}

// PieceBySequence returns the live piece with the given sequence number.
func (i *Item) PieceBySequence(sequence int) (*Piece, error) {
	for _, p := range i.pieces {
		if p.Sequence() == sequence && !p.IsDeleted() {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("piece sequence", sequence)
}

// SyncQuantityReady recomputes quantity_ready purely from current piece
// state. Runs after every mutating piece operation and is also exposed for
// bulk backfills. The item status follows the aggregate: all pieces ready
// promotes the item, any progress marks it in progress.
func (i *Item) SyncQuantityReady() {
	ready := 0
	for _, p := range i.pieces {
		if p.CountsAsReady() {
			ready++
		}
	}
	i.quantityReady = ready

	switch {
	case i.status == ItemReady:
		// Completion is explicit; piece churn does not demote a completed item.
	case ready == i.quantity && i.quantity > 0:
		i.status = ItemReady
	case ready > 0:
		i.status = ItemInProgress
	}
}

// UpdatePiece applies a partial update to one piece. Patches touching status
// or rejection trigger a synchronous quantity_ready recompute.
func (i *Item) UpdatePiece(pieceID kernel.UUID, patch PiecePatch) (*Piece, error) {
	piece, err := i.Piece(pieceID)
	if err != nil {
		return nil, err
	}

	if err = piece.apply(patch); err != nil {
		return nil, err
	}

	if patch.TouchesAggregate() {
		i.SyncQuantityReady()
	}

	return piece, nil
}

// DeletePiece tombstones a piece, resequences the survivors to keep the
// dense [1..n] range, reduces the item quantity, and re-syncs quantity_ready.
func (i *Item) DeletePiece(pieceID kernel.UUID) error {
	piece, err := i.Piece(pieceID)
	if err != nil {
		return err
	}

	piece.tombstone()
	i.quantity--
	i.resequencePieces()
	i.SyncQuantityReady()
	return nil
}

// resequencePieces renumbers live pieces into the dense range [1..n],
// preserving their relative order.
func (i *Item) resequencePieces() {
	seq := 0
	for _, p := range i.pieces {
		if p.IsDeleted() {
			continue
		}
		seq++
		p.sequence = seq
	}
}

// MarkComplete sets the item ready and stamps the step code.
func (i *Item) MarkComplete(stepCode string) {
	i.status = ItemReady
	i.lastStep = stepCode
}

// MarkRejected flags the item as rejected, typically when an item-scoped
// quality issue is raised.
func (i *Item) MarkRejected() {
	i.rejected = true
}

// AllPiecesScanned reports whether every live piece was scanned at assembly.
func (i *Item) AllPiecesScanned() bool {
	for _, p := range i.pieces {
		if !p.IsDeleted() && !p.IsScanned() {
			return false
		}
	}
	return true
}

// extractPieces tombstones the pieces with the given sequence numbers and
// returns their attributes for re-creation on a split child. The item shrinks
// by the number of pieces actually extracted, floored at zero quantity.
// Sequences that do not resolve to a live piece are reported back so the
// caller can surface a partial migration.
func (i *Item) extractPieces(sequences []int) (moved []PieceAttributes, movedIDs []kernel.UUID, missing []int) {
	for _, seq := range sequences {
		piece, err := i.PieceBySequence(seq)
		if err != nil {
			missing = append(missing, seq)
			continue
		}
		moved = append(moved, piece.Attributes())
		movedIDs = append(movedIDs, piece.ID())
		piece.tombstone()
		if i.quantity > 0 {
			i.quantity--
		}
	}

	if len(moved) > 0 {
		i.resequencePieces()
		i.SyncQuantityReady()
	}
	return moved, movedIDs, missing
}

// reassignTo repoints the item and its pieces to another order. Used by the
// whole-item split variant.
func (i *Item) reassignTo(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	for _, p := range i.pieces {
		p.orderID = orderID
	}
	return nil
}
