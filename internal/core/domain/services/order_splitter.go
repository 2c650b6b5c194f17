package services

import (
	"errors"
	"fmt"
	"sort"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
)

// ErrNothingToSplit is returned when a split request resolves to zero moved
// pieces or items, leaving nothing to build a child order from.
var ErrNothingToSplit = errors.New("split selection moved no pieces or items")

// PieceSelection maps item ids to the piece sequence numbers to carve out of
// that item.
type PieceSelection map[kernel.UUID][]int

// SplitResult describes the outcome of a split. Warnings carry per-item
// problems (unknown items, missing sequences) that did not abort the split;
// each selected item migrates independently.
type SplitResult struct {
	Child         *order.Order
	MovedPieceIDs []kernel.UUID
	MovedItemIDs  []kernel.UUID
	Warnings      []string
}

// OrderSplitter is a domain service that carves a child order out of a parent.
//
// Two granularities are supported: moving selected pieces (the parent items
// shrink and the child gets fresh items holding the moved pieces) and moving
// whole items (the items are re-pointed to the child unchanged).
//
// Business rules:
//   - the child references the parent and carries the split subtype
//   - the child starts at Intake like any new order
//   - piece counts are conserved: nothing is duplicated or lost
//   - per-item migrations are independent; one bad selection entry does not
//     abort the others
type OrderSplitter struct{}

// NewOrderSplitter creates a new OrderSplitter instance.
func NewOrderSplitter() OrderSplitter {
	return OrderSplitter{}
}

// SplitByPieces moves the selected pieces out of parent into a new child
// order. The moved pieces are tombstoned on the parent side and recreated
// under fresh items on the child, carrying their attributes over; the parent
// items shrink and resequence to stay dense.
func (s OrderSplitter) SplitByPieces(
	parent *order.Order,
	childID kernel.UUID,
	childNumber string,
	selection PieceSelection,
) (*SplitResult, error) {
	if err := parent.Validate(); err != nil {
		return nil, err
	}
	if parent.IsDeleted() {
		return nil, order.ErrOrderIsNotConstructed
	}

	result := &SplitResult{}
	var childItems []order.ItemParams

	for _, itemID := range sortedSelectionIDs(selection) {
		item, err := parent.Item(itemID)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %s: not found on parent", itemID))
			continue
		}

		moved, movedIDs, missing, err := parent.ExtractPiecesForSplit(itemID, selection[itemID])
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %s: %s", itemID, err))
			continue
		}
		if len(missing) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %s: sequences %v not found", itemID, missing))
		}
		if len(moved) == 0 {
			continue
		}

		result.MovedPieceIDs = append(result.MovedPieceIDs, movedIDs...)
		childItems = append(childItems, order.ItemParams{
			ProductID:     item.ProductID(),
			Category:      item.Category(),
			Quantity:      len(moved),
			UnitPrice:     item.UnitPrice(),
			PerPieceAttrs: moved,
		})
	}

	if len(childItems) == 0 {
		return nil, ErrNothingToSplit
	}

	child, err := s.newChild(parent, childID, childNumber, childItems)
	if err != nil {
		return nil, err
	}

	parent.MarkSplit()
	result.Child = child
	return result, nil
}

// SplitItems moves whole items from parent to a new child order. The items
// keep their identity, pieces, and processing state; only their order
// reference changes.
func (s OrderSplitter) SplitItems(
	parent *order.Order,
	childID kernel.UUID,
	childNumber string,
	itemIDs []kernel.UUID,
) (*SplitResult, error) {
	if err := parent.Validate(); err != nil {
		return nil, err
	}

	child, err := s.newChild(parent, childID, childNumber, nil)
	if err != nil {
		return nil, err
	}

	result := &SplitResult{}

	for _, itemID := range itemIDs {
		item, err := parent.DetachItem(itemID)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %s: not found on parent", itemID))
			continue
		}
		if err := child.AdoptItem(item); err != nil {
			return nil, err
		}
		result.MovedItemIDs = append(result.MovedItemIDs, itemID)
	}

	if len(result.MovedItemIDs) == 0 {
		return nil, ErrNothingToSplit
	}

	parent.MarkSplit()
	result.Child = child
	return result, nil
}

func (s OrderSplitter) newChild(
	parent *order.Order,
	childID kernel.UUID,
	childNumber string,
	items []order.ItemParams,
) (*order.Order, error) {
	parentID := parent.ID()
	return order.NewOrder(order.NewOrderParams{
		ID:         childID,
		TenantID:   parent.TenantID(),
		Number:     childNumber,
		CustomerID: parent.CustomerID(),
		BranchID:   parent.BranchID(),
		Express:    parent.IsExpress(),
		TaxRate:    parent.TaxRate(),
		ReadyBy:    parent.ReadyBy(),
		ParentID:   &parentID,
		Subtype:    order.SubtypeSplit,
		Items:      items,
	})
}

func sortedSelectionIDs(selection PieceSelection) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(selection))
	for id := range selection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
