package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	contextutils "teachassist/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code contextutils.ErrorCode
		want int
	}{
		{contextutils.ErrorCodeInvalidInput, http.StatusBadRequest},
		{contextutils.ErrorCodeValidationFailed, http.StatusBadRequest},
		{contextutils.ErrorCodePayloadMissing, http.StatusBadRequest},
		{contextutils.ErrorCodeRecordNotFound, http.StatusNotFound},
		{contextutils.ErrorCodeRateLimit, http.StatusTooManyRequests},
		{contextutils.ErrorCodeTimeout, http.StatusRequestTimeout},
		{contextutils.ErrorCodeAIProviderUnavailable, http.StatusServiceUnavailable},
		{contextutils.ErrorCodeAIRequestFailed, http.StatusServiceUnavailable},
		{contextutils.ErrorCodeAIConfigInvalid, http.StatusInternalServerError},
		{contextutils.ErrorCode("SOMETHING_NEW"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestStandardizeAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	appErr := contextutils.NewAppError(contextutils.ErrorCodeAIRequestFailed, contextutils.SeverityWarn, "Answer failed", "")
	StandardizeAppError(c, appErr)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(contextutils.ErrorCodeAIRequestFailed), body["code"])
	assert.Equal(t, "Answer failed", body["message"])
	assert.Contains(t, body, "retryable")
}

func TestHandleAppError_PlainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAppError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
