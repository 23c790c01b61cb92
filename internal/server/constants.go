package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed admin password attempts"
	SecurityAlertHighRate   = "⚠️ SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAdminRejected    = "Admin credential rejected"
	LogMsgAdminLockedOut   = "Admin route refused, too many rejected credentials"
	LogMsgStaticDisabled   = "STATIC_DIR not set, static file serving disabled"
)

// HTTP header names
const (
	HeaderAdminPassword  = "X-Admin-Pw"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// Request limits and rate detection
const (
	MaxRequestBodyBytes  = 1 << 20
	RateWindow           = 5 * time.Minute
	RateLimitPerWindow   = 1000
	FailedAuthAlertLimit = 5
	AdminLockoutLimit    = 20
	ReadHeaderTimeout    = 5 * time.Second
	CORSMaxAge           = 300
)

// quietPaths are not logged by the request logger
var quietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// redactedHeaders never reach the logs
var redactedHeaders = []string{
	HeaderAdminPassword,
	HeaderAuthorization,
}
