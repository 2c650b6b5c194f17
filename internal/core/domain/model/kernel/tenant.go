package kernel

import (
	"fmt"

	"cleanmatex/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrTenantIDIsNotConstructed is returned when validating a zero-value TenantID.
// Every operation in the engine is parameterized by tenant; a missing tenant id
// must fail before any storage access happens.
var ErrTenantIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TenantID must be created via NewTenantID, TenantIDFromString, or TenantIDFromBytes")

// TenantID identifies an isolated customer organization. Every entity carries
// its owning tenant id and every repository operation is scoped by it; no
// cross-tenant read or write is permitted anywhere in the engine.
//
// The zero value is invalid and fails Validate.
type TenantID struct {
	id uuid.UUID
}

// NewTenantID generates a new random tenant identifier.
func NewTenantID() TenantID {
	return TenantID{id: uuid.New()}
}

// TenantIDFromString parses a tenant id from its string representation.
func TenantIDFromString(s string) (TenantID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TenantID{}, fmt.Errorf("invalid tenant id format: %w", err)
	}
	return TenantID{id: id}, nil
}

// TenantIDFromBytes creates a tenant id from a 16-byte slice.
func TenantIDFromBytes(b []byte) (TenantID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return TenantID{}, fmt.Errorf("invalid tenant id format: %w", err)
	}
	tenantID := TenantID{id: id}
	if err = tenantID.Validate(); err != nil {
		return TenantID{}, err
	}

	return tenantID, nil
}

// String returns the canonical textual form of the tenant id.
func (t TenantID) String() string {
	return t.id.String()
}

// Bytes returns the underlying uuid.UUID value for persistence mapping.
func (t TenantID) Bytes() uuid.UUID {
	return t.id
}

// IsEqual compares two tenant ids for equality.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.id == other.id
}

// Validate returns ErrTenantIDIsNotConstructed for the zero value.
func (t TenantID) Validate() error {
	if t.id == uuid.Nil {
		return ErrTenantIDIsNotConstructed
	}
	return nil
}
