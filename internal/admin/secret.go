package admin

import (
	"crypto/subtle"

	"github.com/osse101/seedling/internal/domain"
)

// Secret is the single shared admin credential that gates destructive actions.
// It is a capability check, not an identity.
type Secret struct {
	value []byte
}

// NewSecret wraps the configured admin password
func NewSecret(value string) Secret {
	return Secret{value: []byte(value)}
}

// Matches compares in constant time. An unconfigured secret matches nothing.
func (s Secret) Matches(credential string) bool {
	if len(s.value) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), s.value) == 1
}

// Check returns domain.ErrUnauthorized when credential does not match
func (s Secret) Check(credential string) error {
	if !s.Matches(credential) {
		return domain.ErrUnauthorized
	}
	return nil
}
