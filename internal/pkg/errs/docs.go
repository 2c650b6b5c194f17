// Package errs provides standardized error types for the order-lifecycle engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the failure taxonomy of the engine:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: tenant-scoped lookup misses
//   - StateConflictError: disallowed workflow transitions, with machine-readable blockers
//   - DependencyFailureError: stock/pricing/tax/numbering collaborator failures
//   - PartialBatchError: itemized mixed success/failure in batch operations
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrStateConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach makes failures classifiable with errors.Is while
// still carrying the structured detail (blocker lists, batch reports) that the
// exposed operations must surface to callers.
package errs
