package errs_test

import (
	"errors"
	"testing"

	"cleanmatex/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("pieceId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("sequence", 150, 1, 120)

		assert.Equal(t, "sequence", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is sequence, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("tenantId")

		assert.Equal(t, "tenantId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: tenantId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("tenantId", cause)

		assert.Equal(t, "tenantId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: tenantId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestStateConflictError(t *testing.T) {
	t.Run("NewStateConflictError", func(t *testing.T) {
		err := errs.NewStateConflictError("QA", "READY", []string{"rack_location_required", "qa_status: PENDING"})

		assert.Equal(t, "QA", err.From)
		assert.Equal(t, "READY", err.To)
		assert.Equal(t, []string{"rack_location_required", "qa_status: PENDING"}, err.Blockers)
		require.NoError(t, err.Cause)
		assert.Equal(t,
			"state conflict: transition QA -> READY is not allowed (blockers: rack_location_required, qa_status: PENDING)",
			err.Error())
		assert.Equal(t, errs.ErrStateConflict, err.Unwrap())
	})

	t.Run("no blockers", func(t *testing.T) {
		err := errs.NewStateConflictError("DRAFT", "WASHING", nil)
		assert.Equal(t, "state conflict: transition DRAFT -> WASHING is not allowed", err.Error())
	})
}

func TestDependencyFailureError(t *testing.T) {
	cause := errors.New("insufficient stock")
	err := errs.NewDependencyFailureError("stock", cause)

	assert.Equal(t, "stock", err.Dependency)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "dependency failure: stock (cause: insufficient stock)", err.Error())
	assert.Equal(t, errs.ErrDependencyFailed, err.Unwrap())
}

func TestPartialBatchError(t *testing.T) {
	err := errs.NewPartialBatchError(2, []errs.BatchMemberFailure{
		{Ref: "piece-3", Err: errors.New("not found")},
	})

	assert.Equal(t, 2, err.Succeeded)
	assert.Len(t, err.Failures, 1)
	assert.Equal(t, "partial batch failure: 2 succeeded, 1 failed", err.Error())
	assert.Equal(t, errs.ErrPartialBatch, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrStateConflict)
		require.Error(t, errs.ErrDependencyFailed)
		require.Error(t, errs.ErrPartialBatch)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "state conflict", errs.ErrStateConflict.Error())
		assert.Equal(t, "dependency failure", errs.ErrDependencyFailed.Error())
		assert.Equal(t, "partial batch failure", errs.ErrPartialBatch.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("orderId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("quantity")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("sequence", 150, 1, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("tenantId")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		stateConflictErr := errs.NewStateConflictError("QA", "READY", nil)
		require.ErrorIs(t, stateConflictErr, errs.ErrStateConflict)

		dependencyErr := errs.NewDependencyFailureError("pricing", errors.New("timeout"))
		require.ErrorIs(t, dependencyErr, errs.ErrDependencyFailed)

		partialErr := errs.NewPartialBatchError(0, nil)
		require.ErrorIs(t, partialErr, errs.ErrPartialBatch)
	})
}
