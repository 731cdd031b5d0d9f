package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/velora/storefront/pkg/errors"
	"github.com/velora/storefront/pkg/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"id": "1"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	WriteError(rec, r, apperrors.NotFound("product", "42"), discardLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWriteError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	WriteError(rec, r, apperrors.Wrap(apperrors.ErrInvalidInput, "parse body"), discardLogger())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestWriteError_UnknownErrorIs500WithOpaqueMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	WriteError(rec, r, errors.New("redis: connection pool exhausted"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "redis")
}

func TestWriteValidationError(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
	}
	err := validator.Validate(req{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "Email")
}
