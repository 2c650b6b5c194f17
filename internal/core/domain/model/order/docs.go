// Package order provides the domain model for the order lifecycle: the Order
// aggregate root, its items and individually trackable pieces, immutable
// processing step records, and the workflow status machinery.
//
// The package includes:
//   - Order: the aggregate root coordinating items, pieces, and step records
//   - Item: a product line owning exactly one piece per unit of quantity
//   - Piece: the smallest trackable unit, with independent processing state
//   - StepRecord: an immutable, at-most-once-per-(item, step) audit record
//   - Status/Stage/QAStatus/PieceStatus/ItemStatus: workflow enumerations
//
// Key business rules:
//   - an order, its items, and their pieces come into existence together
//   - live piece sequences per item always form the dense range [1..n]
//   - quantity_ready is recomputed from piece state after every mutation
//   - retail-only orders bypass the workflow and are created Closed
//   - entities are tombstoned, never physically removed
//
// The package follows Domain-Driven Design principles: private fields,
// validated constructors, and Restore* functions for persistence rehydration.
package order
