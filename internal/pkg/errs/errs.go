package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap targets for the typed errors below.
// Callers should classify failures with errors.Is against these values.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrStateConflict     = errors.New("state conflict")
	ErrDependencyFailed  = errors.New("dependency failure")
	ErrPartialBatch      = errors.New("partial batch failure")
)

// sanitize strips line breaks from values interpolated into error messages
// so a single log line always holds the whole message.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// ObjectNotFoundError indicates a tenant-scoped lookup miss.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates malformed input for a named parameter.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a value outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// StateConflictError indicates a disallowed workflow transition. Blockers carry
// every violated rule in machine-readable form so callers can surface all of
// them at once instead of only the first.
type StateConflictError struct {
	From     string
	To       string
	Blockers []string
	Cause    error
}

func NewStateConflictError(from, to string, blockers []string) *StateConflictError {
	return &StateConflictError{From: from, To: to, Blockers: blockers}
}

func NewStateConflictErrorWithCause(from, to string, blockers []string, cause error) *StateConflictError {
	return &StateConflictError{From: from, To: to, Blockers: blockers, Cause: cause}
}

func (e *StateConflictError) Error() string {
	msg := fmt.Sprintf("%s: transition %s -> %s is not allowed", ErrStateConflict, e.From, e.To)
	if len(e.Blockers) > 0 {
		msg = fmt.Sprintf("%s (blockers: %s)", msg, strings.Join(e.Blockers, ", "))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// DependencyFailureError indicates that an external collaborator (stock,
// pricing, tax, numbering) failed while servicing an operation.
type DependencyFailureError struct {
	Dependency string
	Cause      error
}

func NewDependencyFailureError(dependency string, cause error) *DependencyFailureError {
	return &DependencyFailureError{Dependency: dependency, Cause: cause}
}

func (e *DependencyFailureError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrDependencyFailed, e.Dependency, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrDependencyFailed, e.Dependency))
}

func (e *DependencyFailureError) Unwrap() error {
	return ErrDependencyFailed
}

// BatchMemberFailure identifies one failed member of a batch operation.
type BatchMemberFailure struct {
	Ref string
	Err error
}

// PartialBatchError reports an itemized mixed outcome of a batch operation.
// The operation as a whole is fail-open: succeeded members stay applied.
type PartialBatchError struct {
	Succeeded int
	Failures  []BatchMemberFailure
}

func NewPartialBatchError(succeeded int, failures []BatchMemberFailure) *PartialBatchError {
	return &PartialBatchError{Succeeded: succeeded, Failures: failures}
}

func (e *PartialBatchError) Error() string {
	return sanitize(fmt.Sprintf("%s: %d succeeded, %d failed",
		ErrPartialBatch, e.Succeeded, len(e.Failures)))
}

func (e *PartialBatchError) Unwrap() error {
	return ErrPartialBatch
}
