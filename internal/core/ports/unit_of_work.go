package ports

import (
	"context"
)

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repository instances bound
// to the current transaction. Client code must explicitly manage the
// transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Calling it without an
	// active transaction is a no-op, so it is safe to defer alongside a
	// commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// IssueRepository returns an IssueRepository bound to the current
	// transaction.
	IssueRepository() IssueRepository

	// StockDeductor returns a StockDeductor bound to the current
	// transaction, so a failed deduction rolls back the order write too.
	StockDeductor() StockDeductor

	// AuditLog returns an AuditLog bound to the current transaction.
	AuditLog() AuditLog

	// OrderNumberSequence returns the number sequence bound to the current
	// transaction. Drawing a number and writing the order commit together.
	OrderNumberSequence() OrderNumberSequence

	// TransitionValidator returns the transition validator bound to the
	// current transaction.
	TransitionValidator() TransitionValidator
}
