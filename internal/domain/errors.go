package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Storage errors
	ErrMsgStorage = "storage error"

	// Auth errors
	ErrMsgUnauthorized = "unauthorized"

	// Validation errors
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgEmptyText     = "empty"
	ErrMsgTextTooLong   = "text too long"
	ErrMsgNameTooLong   = "name too long"
	ErrMsgNotFound      = "not found"
	ErrMsgTransport     = "transport error"
	ErrMsgRemoteRejects = "remote rejected request"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrStorage means the backing store was unreachable, timed out or a query failed
	ErrStorage = errors.New(ErrMsgStorage)

	// ErrUnauthorized means the admin credential did not match
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// ErrInvalidInput is returned before any write happens
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// ErrEmptyText is returned when a message has no text after trimming
	ErrEmptyText = errors.New(ErrMsgEmptyText)

	// ErrNotFound is returned by stores when a row does not exist
	ErrNotFound = errors.New(ErrMsgNotFound)

	// ErrTransport is a client-side network or decode failure talking to the server
	ErrTransport = errors.New(ErrMsgTransport)
)
