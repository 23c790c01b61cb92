package handler

// Error codes returned in {"error": ...} bodies. Clients match on these strings.
const (
	ErrCodeStorage      = "db"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeEmpty        = "empty"
	ErrCodeInvalid      = "invalid"
	ErrCodeBadRequest   = "bad_request"
	ErrCodeBadID        = "bad_id"
)

// Request headers and parameters
const (
	HeaderAdminPassword = "X-Admin-Pw"
	QueryParamPassword  = "pw"
	URLParamID          = "id"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgServiceError     = "Service call failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
)

// maxBodyBytes caps request bodies read by decodeJSON
const maxBodyBytes = 16 << 10
