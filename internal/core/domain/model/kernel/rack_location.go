package kernel

import (
	"strings"

	"cleanmatex/internal/pkg/errs"
)

// RackLocationMaxLength bounds the rack code length accepted from intake
// stations and hand scanners.
const RackLocationMaxLength = 32

// ErrRackLocationIsNotConstructed is returned when using an empty rack location
// where a constructed one is required.
var ErrRackLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"RackLocation must be created via NewRackLocation")

// RackLocation is the physical storage slot an order (or an individual piece)
// is racked at once processing finishes. Entering the ready state requires a
// rack location to be set on the order.
//
// The zero value represents "not racked yet" and is a legal state for orders
// still in processing; it only blocks the transition into ready.
type RackLocation struct {
	code string
}

// NewRackLocation creates a rack location from a rack code.
// The code is trimmed, upper-cased, must be non-empty, and is bounded by
// RackLocationMaxLength.
func NewRackLocation(code string) (RackLocation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return RackLocation{}, errs.NewValueIsRequiredError("rack location code")
	}
	if len(code) > RackLocationMaxLength {
		return RackLocation{}, errs.NewValueIsOutOfRangeError("rack location code length",
			len(code), 1, RackLocationMaxLength)
	}

	return RackLocation{code: code}, nil
}

// String returns the rack code, or the empty string for the unset value.
func (l RackLocation) String() string {
	return l.code
}

// IsEmpty reports whether the rack location is unset.
func (l RackLocation) IsEmpty() bool {
	return l.code == ""
}

// IsEqual compares two rack locations by code.
func (l RackLocation) IsEqual(other RackLocation) bool {
	return l.code == other.code
}

// Validate returns ErrRackLocationIsNotConstructed for the unset value.
func (l RackLocation) Validate() error {
	if l.code == "" {
		return ErrRackLocationIsNotConstructed
	}
	return nil
}
