package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"chime/internal/errors"
)

func TestBaseError_WithDetailsMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := ErrDeviceNotFound.WithDetails("token abc")

	assert.True(t, errors.Is(err, ErrDeviceNotFound))
	assert.False(t, errors.Is(err, ErrTaskNotFound))
	assert.Equal(t, "token abc", err.Details())
	assert.Equal(t, http.StatusNotFound, err.HTTPCode())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	t.Parallel()

	err := ErrTaskOwnershipViolation.WrapMessage("replace reminders")

	appErr, ok := errors.AsType[AppError](err)
	assert.True(t, ok)
	assert.Equal(t, "TASK_OWNERSHIP_VIOLATION", appErr.ErrorCode())
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
}

func TestDatabaseExecuteError_Unwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "select due reminders")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Contains(t, err.Error(), "connection reset")
}
