// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeApplicationValidationFailed, http.StatusBadRequest},
		{ErrCodeMalformedRequest, http.StatusBadRequest},
		{ErrCodeSinkPermissionDenied, http.StatusForbidden},
		{ErrCodeSinkNotFound, http.StatusNotFound},
		{ErrCodeSinkUnreachable, http.StatusInternalServerError},
		{ErrCodeConfigurationMissing, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.code))
		})
	}
}

func TestAsStandardError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, AsStandardError(nil))
	})

	t.Run("wrapped standard error is found", func(t *testing.T) {
		inner := NewSinkNotFoundError("sheets", stderrors.New("404"))
		wrapped := fmt.Errorf("connection test: %w", inner)

		got := AsStandardError(wrapped)
		require.NotNil(t, got)
		assert.Equal(t, ErrCodeSinkNotFound, got.Code)
		assert.True(t, HasCode(wrapped, ErrCodeSinkNotFound))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := AsStandardError(stderrors.New("boom"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "boom", got.Details)
	})
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := NewSinkUnreachableError("sheets", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "StandardError[SINK_UNREACHABLE]: Tabular sink 'sheets' is unreachable", err.Error())
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable code keeps retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewSinkAppendFailedError("Backend", stderrors.New("503")))
		assert.Equal(t, "SINK_APPEND_FAILED", bpmn.Code)
		assert.Equal(t, 3, bpmn.Retries)
		assert.True(t, bpmn.Retryable)

		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "SINK_APPEND_FAILED", vars["originalErrorCode"])
		assert.Contains(t, vars, "timestamp")
	})

	t.Run("business error has no retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewApplicationValidationFailedError("email: invalid"))
		assert.Equal(t, 0, bpmn.Retries)
		assert.False(t, bpmn.Retryable)
	})
}

func TestNewConfigurationMissingError(t *testing.T) {
	err := NewConfigurationMissingError([]string{"GOOGLE_SHEET_ID", "GOOGLE_CLIENT_ID"})
	assert.Equal(t, "Server configuration error. Missing environment variables.", err.Message)
	assert.Equal(t, []string{"GOOGLE_SHEET_ID", "GOOGLE_CLIENT_ID"}, err.Metadata["missing"])
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(err.Code))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SINK", GetErrorCategory(ErrCodeSinkAuthFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchIndexFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeMalformedRequest))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
