package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := SecurityLoggingMiddleware(nil, detector)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < RateLimitPerWindow; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.requestCountByIP[ip]
	detector.mu.Unlock()
	assert.Equal(t, RateLimitPerWindow+1, count)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	now := time.Now()
	detector.now = func() time.Time { return now }
	detector.lastResetTime = now

	assert.Equal(t, 1, detector.RecordFailedAuth("1.1.1.1"))
	assert.Equal(t, 2, detector.RecordFailedAuth("1.1.1.1"))

	now = now.Add(RateWindow + time.Second)
	assert.Equal(t, 1, detector.RecordFailedAuth("1.1.1.1"))
}

func TestAdminFailureMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector()

	forbidden := AdminFailureMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	allowed := AdminFailureMiddleware(nil, detector)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/harvest", nil)
	req.RemoteAddr = "7.7.7.7:5000"

	allowed.ServeHTTP(httptest.NewRecorder(), req)
	forbidden.ServeHTTP(httptest.NewRecorder(), req)
	forbidden.ServeHTTP(httptest.NewRecorder(), req)

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 2, detector.failedAuthByIP["7.7.7.7"])
}

func TestAdminFailureMiddleware_LocksOutAfterLimit(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	detector.now = func() time.Time { return now }
	detector.lastResetTime = now

	calls := 0
	h := AdminFailureMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/harvest", nil)
		req.RemoteAddr = ip + ":4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < AdminLockoutLimit; i++ {
		require.Equal(t, http.StatusForbidden, send("9.9.9.9"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send("9.9.9.9"))
	assert.Equal(t, AdminLockoutLimit, calls)

	assert.Equal(t, http.StatusForbidden, send("8.8.8.8"), "other clients unaffected")

	now = now.Add(RateWindow + time.Second)
	assert.Equal(t, http.StatusForbidden, send("9.9.9.9"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tooLarge *http.MaxBytesError
		if _, err := io.ReadAll(r.Body); errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is far too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
