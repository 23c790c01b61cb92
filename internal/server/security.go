package server

import (
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/seedling/internal/logger"
)

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector tracks request rates and rejected admin credentials per IP
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	lastResetTime    time.Time
	now              func() time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		lastResetTime:    time.Now(),
		now:              time.Now,
	}
}

// RecordFailedAuth records a rejected admin credential and returns the count in the window
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetCountsIfNeeded()
	s.failedAuthByIP[ip]++

	if s.failedAuthByIP[ip] >= FailedAuthAlertLimit {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", s.failedAuthByIP[ip])
	}
	return s.failedAuthByIP[ip]
}

// AdminLocked reports whether ip has used up its admin attempts for the window
func (s *SuspiciousActivityDetector) AdminLocked(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetCountsIfNeeded()
	return s.failedAuthByIP[ip] >= AdminLockoutLimit
}

// RecordRequest records a request and returns false if the rate limit is exceeded
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetCountsIfNeeded()
	s.requestCountByIP[ip]++

	if s.requestCountByIP[ip] > RateLimitPerWindow {
		if s.requestCountByIP[ip]%100 == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", s.requestCountByIP[ip])
		}
		return false
	}
	return true
}

// Caller must hold the mutex
func (s *SuspiciousActivityDetector) resetCountsIfNeeded() {
	now := s.now()
	if now.Sub(s.lastResetTime) > RateWindow {
		s.requestCountByIP = make(map[string]int)
		s.failedAuthByIP = make(map[string]int)
		s.lastResetTime = now
	}
}

// SecurityLoggingMiddleware enforces the per-IP rate limit
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminFailureMiddleware feeds 403 responses from admin-gated routes into the detector
// and refuses admin routes with 429 once an IP reaches AdminLockoutLimit in the window.
// The admin check itself lives in the services.
func AdminFailureMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if detector.AdminLocked(ip) {
				logger.FromContext(r.Context()).Warn(LogMsgAdminLockedOut, "path", r.URL.Path, "ip", ip)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			if rw.statusCode == http.StatusForbidden {
				count := detector.RecordFailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAdminRejected,
					"path", r.URL.Path,
					"ip", ip,
					"has_credential", r.Header.Get(HeaderAdminPassword) != "",
					"count", count)
			}
		})
	}
}

// extractIP returns the peer address, or the rightmost X-Forwarded-For hop when
// the peer is a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hop := forwarded[strings.LastIndex(forwarded, ",")+1:]
	return strings.TrimSpace(hop)
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
