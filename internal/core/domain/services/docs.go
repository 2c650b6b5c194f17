// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the order lifecycle engine.
// It implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - ReadyGateChecker: evaluates every readiness rule for the READY transition
//   - OrderSplitter: carves child orders out of a parent at piece or item level
//   - DeadlineCalculator: derives the promised ready-by time for new orders
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
