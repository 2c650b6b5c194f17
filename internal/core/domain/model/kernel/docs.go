// Package kernel provides core domain primitives shared across the order
// lifecycle engine. It implements fundamental building blocks following
// Domain-Driven Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: validated entity identifier wrapping github.com/google/uuid
//   - TenantID: the tenant isolation key every entity and operation carries
//   - RackLocation: the physical storage slot gating the ready transition
//
// All types are immutable value objects whose zero values fail Validate,
// so improperly constructed primitives are caught before reaching storage.
package kernel
