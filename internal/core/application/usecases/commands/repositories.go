// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"cleanmatex/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composition it needs, so tests mock
// exactly the surface a command touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// IssueRepoFactory provides access to the issue repository within a transaction.
	IssueRepoFactory interface {
		IssueRepository() ports.IssueRepository
	}

	// StockFactory provides access to retail stock within a transaction.
	StockFactory interface {
		StockDeductor() ports.StockDeductor
	}

	// AuditFactory provides access to the audit trail within a transaction.
	AuditFactory interface {
		AuditLog() ports.AuditLog
	}

	// SequenceFactory provides access to the order number sequence within a
	// transaction.
	SequenceFactory interface {
		OrderNumberSequence() ports.OrderNumberSequence
	}

	// ValidatorFactory provides access to the transition validator within a
	// transaction.
	ValidatorFactory interface {
		TransitionValidator() ports.TransitionValidator
	}

	// OrderUoW manages transactions for operations touching a single order
	// aggregate and its audit trail. Used by the piece tracking commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW manages the composite order creation write: the order
	// aggregate, the drawn order number, retail stock, and the audit trail
	// commit or roll back together.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		StockFactory
		AuditFactory
		SequenceFactory
	}

	// CreateOrderUoWFactory creates new creation unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// TransitionUoW manages workflow transitions: the order write, the
	// transition validation record, open-issue reads for the ready gate,
	// and the audit trail share one transaction.
	TransitionUoW interface {
		TxManager
		OrderRepoFactory
		IssueRepoFactory
		AuditFactory
		ValidatorFactory
	}

	// TransitionUoWFactory creates new transition unit of work instances.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// SplitUoW manages order splits: parent update, child insert, the
	// child's drawn number, and the audit trail commit together.
	SplitUoW interface {
		TxManager
		OrderRepoFactory
		AuditFactory
		SequenceFactory
	}

	// SplitUoWFactory creates new split unit of work instances.
	SplitUoWFactory interface {
		Create() SplitUoW
	}

	// IssueUoW manages quality issue writes together with the order flag
	// updates they imply.
	IssueUoW interface {
		TxManager
		OrderRepoFactory
		IssueRepoFactory
		AuditFactory
	}

	// IssueUoWFactory creates new issue unit of work instances.
	IssueUoWFactory interface {
		Create() IssueUoW
	}
)
