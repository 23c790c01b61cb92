package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/seedling/internal/logger"
)

// DecodeAndValidateRequest decodes an optional JSON body into req and validates it.
// An empty body leaves req at its zero value. On failure the response has already
// been written and the handler should return.
//
// Example usage:
//
//	var req PostMessageRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Post message"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if r.Body != nil {
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
			log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
			respondError(w, http.StatusBadRequest, ErrCodeBadRequest)
			return err
		}
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(LogMsgValidationFailed, "action", actionName, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrCodeInvalid,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// adminCredential returns the x-admin-pw header, falling back to the given value
// (a body field or query parameter, depending on the route)
func adminCredential(r *http.Request, fallback string) string {
	if pw := r.Header.Get(HeaderAdminPassword); pw != "" {
		return pw
	}
	return fallback
}

// bodyCredential reads pw from an optional JSON body. A missing body, a body
// that does not decode or a pw that is not a string all yield "", leaving the
// verdict to the credential check.
func bodyCredential(w http.ResponseWriter, r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	var raw struct {
		Password json.RawMessage `json:"pw"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		if !errors.Is(err, io.EOF) {
			loggerFor(r).Debug(LogMsgDecodeFailed, "field", "pw", "error", err)
		}
		return ""
	}

	var pw string
	if err := json.Unmarshal(raw.Password, &pw); err != nil {
		return ""
	}
	return pw
}

// GetOptionalQueryParam returns the query parameter or defaultValue when absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// urlParamID parses the {id} route parameter. On failure a 400 has been written.
func urlParamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, URLParamID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		loggerFor(r).Warn(LogMsgDecodeFailed, "param", URLParamID, "value", raw)
		respondError(w, http.StatusBadRequest, ErrCodeBadID)
		return 0, false
	}
	return id, true
}

func loggerFor(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}
