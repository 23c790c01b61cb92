package mirror

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/osse101/seedling/internal/admin"
	"github.com/osse101/seedling/internal/domain"
)

// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
var ErrKeyringUnavailable = errors.New("OS keyring is not available")

// SecretSource supplies the locally-known admin secret.
// Get returns domain.ErrNotFound when none was provisioned.
type SecretSource interface {
	Get() (string, error)
}

// KeyringSecrets keeps the admin secret in the OS keyring
type KeyringSecrets struct {
	service string
	user    string
}

// NewKeyringSecrets uses the default seedling keyring entry
func NewKeyringSecrets() *KeyringSecrets {
	return &KeyringSecrets{service: KeyringService, user: KeyringUser}
}

func (k *KeyringSecrets) Get() (string, error) {
	v, err := keyring.Get(k.service, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// Set provisions the secret. Empty values are rejected.
func (k *KeyringSecrets) Set(secret string) error {
	if secret == "" {
		return fmt.Errorf("%w: admin secret cannot be empty", domain.ErrInvalidInput)
	}
	if err := keyring.Set(k.service, k.user, secret); err != nil {
		return fmt.Errorf("store admin secret in keyring: %w", err)
	}
	return nil
}

// Clear removes the secret. Clearing an absent secret is not an error.
func (k *KeyringSecrets) Clear() error {
	err := keyring.Delete(k.service, k.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete admin secret from keyring: %w", err)
	}
	return nil
}

// localSecretMatches reports whether credential equals a provisioned secret.
// No secret, or an unreadable keyring, matches nothing.
func localSecretMatches(src SecretSource, credential string) bool {
	if src == nil {
		return false
	}
	v, err := src.Get()
	if err != nil {
		return false
	}
	return admin.NewSecret(v).Matches(credential)
}
