package order

import (
	"fmt"

	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/pkg/errs"
)

// PieceStatus is the processing state of an individually trackable piece.
type PieceStatus int

const (
	PieceStatusUnknown PieceStatus = iota
	PieceIntake
	PieceProcessing
	PieceQA
	PieceReady
)

func getPieceStatusStrings() map[PieceStatus]string {
	return map[PieceStatus]string{
		PieceStatusUnknown: "UNKNOWN",
		PieceIntake:        "INTAKE",
		PieceProcessing:    "PROCESSING",
		PieceQA:            "QA",
		PieceReady:         "READY",
	}
}

// String returns the piece status code.
func (s PieceStatus) String() string {
	if str, ok := getPieceStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// PieceStatusFromString parses a piece status code.
func PieceStatusFromString(code string) (PieceStatus, error) {
	for status, str := range getPieceStatusStrings() {
		if status == PieceStatusUnknown {
			continue
		}
		if str == code {
			return status, nil
		}
	}
	return PieceStatusUnknown, errs.NewValueIsInvalidErrorWithCause("piece status",
		fmt.Errorf("%q is not a valid piece status", code))
}

// Validate checks that the PieceStatus is one of the defined states.
func (s PieceStatus) Validate() error {
	if s <= PieceStatusUnknown || s > PieceReady {
		return errs.NewValueIsInvalidErrorWithCause("piece status",
			fmt.Errorf("%d is not a valid piece status", s))
	}
	return nil
}

// PieceAttributes are the descriptive properties of a piece. They default to
// the item-level values and can be overridden per piece by sequence match.
type PieceAttributes struct {
	Color string
	Brand string
	Note  string
}

// Piece is the smallest trackable unit within an order item, one per unit of
// quantity. Each piece carries independent processing state; the owning
// item's quantity_ready is always recomputed from current piece state.
//
// Sequence numbers of the live pieces of an item always form the dense range
// [1..n]; removing a piece triggers resequencing.
type Piece struct {
	id           kernel.UUID
	itemID       kernel.UUID
	orderID      kernel.UUID
	sequence     int
	status       PieceStatus
	scanned      bool
	rejected     bool
	rackLocation kernel.RackLocation
	attrs        PieceAttributes
	lastStep     string
	deleted      bool
}

// newPiece creates a piece during item construction. Pieces are never created
// directly by callers; they come into existence with their item.
func newPiece(itemID, orderID kernel.UUID, sequence int, attrs PieceAttributes) *Piece {
	return &Piece{
		id:       kernel.NewUUID(),
		itemID:   itemID,
		orderID:  orderID,
		sequence: sequence,
		status:   PieceIntake,
		attrs:    attrs,
	}
}

// RestorePiece reconstructs a piece from persistence without running the
// creation defaults.
func RestorePiece(
	id, itemID, orderID kernel.UUID,
	sequence int,
	status PieceStatus,
	scanned, rejected bool,
	rackLocation kernel.RackLocation,
	attrs PieceAttributes,
	lastStep string,
	deleted bool,
) (*Piece, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if sequence < 1 {
		return nil, errs.NewValueIsOutOfRangeError("piece sequence", sequence, 1, sequence)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Piece{
		id:           id,
		itemID:       itemID,
		orderID:      orderID,
		sequence:     sequence,
		status:       status,
		scanned:      scanned,
		rejected:     rejected,
		rackLocation: rackLocation,
		attrs:        attrs,
		lastStep:     lastStep,
		deleted:      deleted,
	}, nil
}

// ID returns the piece identifier.
func (p *Piece) ID() kernel.UUID { return p.id }

// ItemID returns the owning item identifier.
func (p *Piece) ItemID() kernel.UUID { return p.itemID }

// OrderID returns the owning order identifier.
func (p *Piece) OrderID() kernel.UUID { return p.orderID }

// Sequence returns the dense sequence number within the item.
func (p *Piece) Sequence() int { return p.sequence }

// Status returns the processing state of the piece.
func (p *Piece) Status() PieceStatus { return p.status }

// IsScanned reports whether the piece has been scanned at assembly.
func (p *Piece) IsScanned() bool { return p.scanned }

// IsRejected reports whether the piece carries a rejection flag.
func (p *Piece) IsRejected() bool { return p.rejected }

// RackLocation returns the piece-level rack slot, if racked individually.
func (p *Piece) RackLocation() kernel.RackLocation { return p.rackLocation }

// Attributes returns the descriptive attributes of the piece.
func (p *Piece) Attributes() PieceAttributes { return p.attrs }

// LastStep returns the code of the last processing step applied.
func (p *Piece) LastStep() string { return p.lastStep }

// IsDeleted reports whether the piece is tombstoned. Deleted pieces stay in
// storage for audit history and are excluded from all aggregates.
func (p *Piece) IsDeleted() bool { return p.deleted }

// CountsAsReady reports whether the piece contributes to the owning item's
// quantity_ready: live, not rejected, and in the ready state.
func (p *Piece) CountsAsReady() bool {
	return !p.deleted && !p.rejected && p.status == PieceReady
}

// PiecePatch describes a partial update of a piece. Nil fields are left
// untouched.
type PiecePatch struct {
	Status       *PieceStatus
	Scanned      *bool
	Rejected     *bool
	RackLocation *kernel.RackLocation
	Attributes   *PieceAttributes
	LastStep     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p PiecePatch) IsEmpty() bool {
	return p.Status == nil && p.Scanned == nil && p.Rejected == nil &&
		p.RackLocation == nil && p.Attributes == nil && p.LastStep == nil
}

// TouchesAggregate reports whether applying the patch requires recomputing
// the owning item's quantity_ready.
func (p PiecePatch) TouchesAggregate() bool {
	return p.Status != nil || p.Rejected != nil
}

// apply mutates the piece in place. Returns an error when the patch carries
// an invalid status.
func (p *Piece) apply(patch PiecePatch) error {
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return err
		}
		p.status = *patch.Status
	}
	if patch.Scanned != nil {
		p.scanned = *patch.Scanned
	}
	if patch.Rejected != nil {
		p.rejected = *patch.Rejected
	}
	if patch.RackLocation != nil {
		p.rackLocation = *patch.RackLocation
	}
	if patch.Attributes != nil {
		p.attrs = *patch.Attributes
	}
	if patch.LastStep != nil {
		p.lastStep = *patch.LastStep
	}
	return nil
}

// tombstone marks the piece deleted. Physical removal never happens.
func (p *Piece) tombstone() {
	p.deleted = true
}
