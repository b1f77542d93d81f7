package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/chessinsight/internal/errors"
)

func TestAs(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := fmt.Errorf("saving report: %w", apperrors.NewInternalError(cause))

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInternal, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.True(t, apperrors.Is(err, cause))

	_, ok = apperrors.As(cause)
	assert.False(t, ok)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: report not found: 7", apperrors.NewNotFoundError("report", 7).Error())
	assert.Equal(t, "VALIDATION_ERROR: validation failed for player: required",
		apperrors.NewValidationError("player", "required").Error())
	assert.Equal(t, http.StatusConflict, apperrors.NewConflictError("running").Status)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.NewUnavailableError("queue full", nil).Status)
}
