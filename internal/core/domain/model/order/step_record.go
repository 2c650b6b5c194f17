package order

import (
	"time"

	"cleanmatex/internal/core/domain/model/kernel"
)

// StepRecord is an immutable record of a processing step applied to an item.
// At most one record exists per (item, step code); repeating a step is a
// no-op rather than a duplicate row, so the audit trail stays unambiguous.
type StepRecord struct {
	id       kernel.UUID
	orderID  kernel.UUID
	itemID   kernel.UUID
	stepCode string
	actor    string
	at       time.Time
}

// newStepRecord stamps a step record at the given time.
func newStepRecord(orderID, itemID kernel.UUID, stepCode, actor string, at time.Time) *StepRecord {
	return &StepRecord{
		id:       kernel.NewUUID(),
		orderID:  orderID,
		itemID:   itemID,
		stepCode: stepCode,
		actor:    actor,
		at:       at,
	}
}

// RestoreStepRecord reconstructs a step record from persistence.
func RestoreStepRecord(id, orderID, itemID kernel.UUID, stepCode, actor string, at time.Time) *StepRecord {
	return &StepRecord{
		id:       id,
		orderID:  orderID,
		itemID:   itemID,
		stepCode: stepCode,
		actor:    actor,
		at:       at,
	}
}

// ID returns the record identifier.
func (r *StepRecord) ID() kernel.UUID { return r.id }

// OrderID returns the owning order identifier.
func (r *StepRecord) OrderID() kernel.UUID { return r.orderID }

// ItemID returns the item the step was applied to.
func (r *StepRecord) ItemID() kernel.UUID { return r.itemID }

// StepCode returns the processing step code.
func (r *StepRecord) StepCode() string { return r.stepCode }

// Actor returns who performed the step.
func (r *StepRecord) Actor() string { return r.actor }

// At returns when the step was recorded.
func (r *StepRecord) At() time.Time { return r.at }
