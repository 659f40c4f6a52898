package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BaSui01/studybuddy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 Common 函数测试
// =============================================================================

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		wantStatus int
	}{
		{
			name:       "simple object",
			data:       map[string]string{"message": "hello"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "array",
			data:       []int{1, 2, 3},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteJSON(w, tt.wantStatus, tt.data)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	WriteSuccess(w, data)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteError(t *testing.T) {
	logger := zap.NewNop()
	w := httptest.NewRecorder()

	apiErr := types.NewError(types.ErrInvalidRequest, "bad input").
		WithHTTPStatus(http.StatusBadRequest)
	WriteError(w, apiErr, logger)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	assert.Equal(t, "bad input", resp.Error.Message)
}

func TestWriteError_StatusFromCode(t *testing.T) {
	// 没有显式 HTTPStatus 时按错误码映射
	w := httptest.NewRecorder()
	WriteError(w, types.NewError(types.ErrProviderUnavailable, "backend down"), zap.NewNop())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code types.ErrorCode
		want int
	}{
		{types.ErrInvalidRequest, http.StatusBadRequest},
		{types.ErrEmptyDocument, http.StatusBadRequest},
		{types.ErrUnsupportedDoc, http.StatusUnsupportedMediaType},
		{types.ErrUnauthorized, http.StatusUnauthorized},
		{types.ErrForbidden, http.StatusForbidden},
		{types.ErrRateLimited, http.StatusTooManyRequests},
		{types.ErrTimeout, http.StatusGatewayTimeout},
		{types.ErrUpstreamTimeout, http.StatusGatewayTimeout},
		{types.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{types.ErrUpstreamError, http.StatusBadGateway},
		{types.ErrShapeMismatch, http.StatusInternalServerError},
		{types.ErrInternalError, http.StatusInternalServerError},
		{types.ErrorCode("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorCodeToHTTPStatus(tt.code))
		})
	}
}

// =============================================================================
// 🧪 请求验证测试
// =============================================================================

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Question string `json:"question"`
	}

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"question": "what?"}`))
		w := httptest.NewRecorder()

		var p payload
		err := DecodeJSONBody(w, r, &p, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "what?", p.Question)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`))
		w := httptest.NewRecorder()

		var p payload
		err := DecodeJSONBody(w, r, &p, zap.NewNop())
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"question": "q", "extra": 1}`))
		w := httptest.NewRecorder()

		var p payload
		err := DecodeJSONBody(w, r, &p, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestValidateContentType(t *testing.T) {
	t.Run("accepts application/json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		assert.True(t, ValidateContentType(w, r, zap.NewNop()))
	})

	t.Run("accepts charset parameter without space", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))
		r.Header.Set("Content-Type", "application/json;charset=utf-8")
		w := httptest.NewRecorder()

		assert.True(t, ValidateContentType(w, r, zap.NewNop()))
	})

	t.Run("accepts charset parameter with space", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()

		assert.True(t, ValidateContentType(w, r, zap.NewNop()))
	})

	t.Run("rejects text/plain", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))
		r.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()

		assert.False(t, ValidateContentType(w, r, zap.NewNop()))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))
		w := httptest.NewRecorder()

		assert.False(t, ValidateContentType(w, r, zap.NewNop()))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// 🧪 ResponseWriter 包装器测试
// =============================================================================

func TestResponseWriter_CapturesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, rw.StatusCode)
	assert.True(t, rw.Written)

	// 第二次 WriteHeader 不生效
	rw.WriteHeader(http.StatusOK)
	assert.Equal(t, http.StatusTeapot, rw.StatusCode)
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	_, err := rw.Write([]byte("body"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.StatusCode)
}
