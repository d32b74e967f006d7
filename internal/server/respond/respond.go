// Package respond shapes the JSON envelope returned by every endpoint:
// {success, message, data|errors}.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/apperr"
)

type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Success writes a success envelope with the given status and optional data.
func Success(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope with the given status and optional
// field-level errors.
func Error(w http.ResponseWriter, status int, message string, errs ...string) {
	write(w, status, envelope{Success: false, Message: message, Errors: errs})
}

// FromError maps a typed error to its HTTP status and writes the failure
// envelope. Unclassified errors are logged in full and surfaced as a
// generic internal error.
func FromError(w http.ResponseWriter, log *zap.Logger, err error) {
	code := apperr.CodeOf(err)
	if code == apperr.Internal || code == apperr.Unavailable {
		log.Error("request failed", zap.Error(err))
	}
	Error(w, statusOf(code), apperr.MessageOf(err), apperr.FieldsOf(err)...)
}

func statusOf(code apperr.Code) int {
	switch code {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.ValidationFailed:
		return http.StatusUnprocessableEntity
	case apperr.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
