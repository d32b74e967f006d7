package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "property created successfully", map[string]any{"id": "p1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "property created successfully", env.Message)
	assert.Empty(t, env.Errors)
}

func TestError_WithFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusUnprocessableEntity, "validation failed",
		"title is required", "price must be >= 0")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "validation failed", env.Message)
	assert.Len(t, env.Errors, 2)
}

func TestFromError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unauthenticated", apperr.New(apperr.Unauthenticated, "password does not match"), http.StatusUnauthorized, "password does not match"},
		{"forbidden", apperr.New(apperr.Forbidden, "you do not own this property"), http.StatusForbidden, "you do not own this property"},
		{"not found", apperr.New(apperr.NotFound, "property not found"), http.StatusNotFound, "property not found"},
		{"conflict", apperr.New(apperr.Conflict, "user already exist"), http.StatusConflict, "user already exist"},
		{"validation", apperr.Validation("validation failed", "title is required"), http.StatusUnprocessableEntity, "validation failed"},
		{"unavailable", apperr.New(apperr.Unavailable, "service unavailable"), http.StatusServiceUnavailable, "service unavailable"},
		{"unclassified", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, zap.NewNop(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			// Unclassified errors never leak internal detail.
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}
