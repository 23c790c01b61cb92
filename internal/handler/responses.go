package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/seedling/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries per-field validation messages
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrCodeStorage + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code string) {
	respondJSON(w, status, ErrorResponse{Error: code})
}

// mapServiceError converts domain errors to a status code and error code.
// Anything unrecognised is treated as a storage failure.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrEmptyText):
		return http.StatusBadRequest, ErrCodeEmpty
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeInvalid
	default:
		return http.StatusInternalServerError, ErrCodeStorage
	}
}

// respondServiceError logs and writes the mapped error
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := mapServiceError(err)
	log := loggerFor(r)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "operation", op, "error", err)
	}
	respondError(w, status, code)
}
