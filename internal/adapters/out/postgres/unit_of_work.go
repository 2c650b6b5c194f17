// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work spans one business transaction: every
// repository and collaborator handed out by it runs on the same database
// transaction, so composite writes (order + stock + number + audit) commit
// or roll back as one.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful commit is a no-op, which makes the deferred
// rollback pattern above safe.
package postgres

import (
	"context"

	"cleanmatex/internal/adapters/out/postgres/auditrepo"
	"cleanmatex/internal/adapters/out/postgres/issuerepo"
	"cleanmatex/internal/adapters/out/postgres/numbering"
	"cleanmatex/internal/adapters/out/postgres/orderrepo"
	"cleanmatex/internal/adapters/out/postgres/stockrepo"
	"cleanmatex/internal/adapters/out/postgres/workflowrepo"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Post-commit hooks use the tracked set to decide what to announce.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one GORM
// connection. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new unit of work ready for one business transaction.
// The concrete type satisfies every narrow unit of work composition the
// command handlers depend on.
func (f *GormUnitOfWorkFactory) Create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates modified within it. Repositories obtained before Begin run on
// the bare connection; after Begin they run inside the transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates the transaction. Calling Begin on an already begun unit of
// work is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. After
// a commit the transaction is gone and Rollback returns nil, so handlers can
// defer it unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the transaction when one is active, the bare connection
// otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// IssueRepository returns an issue repository bound to the current
// transaction.
func (uow *GormUnitOfWork) IssueRepository() ports.IssueRepository {
	return issuerepo.NewGormIssueRepository(uow.conn())
}

// StockDeductor returns a stock deductor bound to the current transaction,
// so a failed deduction rolls back the order write too.
func (uow *GormUnitOfWork) StockDeductor() ports.StockDeductor {
	return stockrepo.NewGormStockDeductor(uow.conn())
}

// AuditLog returns an audit log bound to the current transaction.
func (uow *GormUnitOfWork) AuditLog() ports.AuditLog {
	return auditrepo.NewGormAuditLog(uow.conn())
}

// OrderNumberSequence returns the number sequence bound to the current
// transaction. Drawing a number and writing the order commit together.
func (uow *GormUnitOfWork) OrderNumberSequence() ports.OrderNumberSequence {
	return numbering.NewGormOrderNumberSequence(uow.conn())
}

// TransitionValidator returns the transition validator bound to the current
// transaction.
func (uow *GormUnitOfWork) TransitionValidator() ports.TransitionValidator {
	return workflowrepo.NewGormTransitionValidator(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on every add and update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
