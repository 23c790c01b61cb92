package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// readinessTimeout bounds the store ping in /readyz
const readinessTimeout = 2 * time.Second

// HealthResponse is the body of /healthz and /readyz. PingMillis and
// SchemaVersion are only set by /readyz.
type HealthResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	PingMillis    *int64 `json:"pingMs,omitempty"`
	SchemaVersion *int64 `json:"schemaVersion,omitempty"`
}

// StoreStatus is satisfied by the database store
type StoreStatus interface {
	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int64, error)
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports whether the store answers a ping and its schema version
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(store StoreStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		start := time.Now()
		err := store.Ping(ctx)
		took := time.Since(start).Milliseconds()
		if err != nil {
			slog.Error(LogMsgReadinessFailed, "error", err, "ping_ms", took)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "database connection failed",
			})
			return
		}

		version, err := store.SchemaVersion(ctx)
		if err != nil {
			slog.Error(LogMsgReadinessFailed, "error", err, "check", "schema_version")
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "schema version unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", PingMillis: &took, SchemaVersion: &version})
	}
}
