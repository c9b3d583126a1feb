// Package storage persists the working document and its companions in the local data directory.
//
// The document is sealed by an Envelope under a key derived from a random local secret. The secret
// lives in a SecretStore: the OS keyring when available, a 0600 file otherwise, optionally wrapped
// by a KMS keeper. The app password hash and settings are small plain files next to the document.
package storage

import (
	"context"

	"github.com/honeydid/honeydid/internal/errors"
)

const (
	// KeyringService and KeyringUser identify the local secret in the OS keyring.
	KeyringService = "honey-did-local"
	KeyringUser    = "local-encryption-key"

	// LocalKeyFileName is the file fallback for the local secret inside the data directory.
	LocalKeyFileName = ".local_key"

	// DocumentFileName holds the sealed working document.
	DocumentFileName = "document.encrypted"

	// PasswordFileName holds the app password PHC hash.
	PasswordFileName = "password.hash"

	// SettingsFileName holds user settings.
	SettingsFileName = "settings.json"

	dirMode  = 0o700
	fileMode = 0o600
)

var (
	// ErrSecretNotFound indicates the store holds no local secret.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "local secret not found")

	// ErrSecretExists is returned by SecretStore.Set when a secret is already stored.
	ErrSecretExists = errors.Wrap(errors.ErrConflict, "local secret already exists")

	// ErrLocalKeyLost indicates a sealed document exists but its local secret is gone. The document
	// cannot be recovered and a new secret is never generated in its place.
	ErrLocalKeyLost = errors.Wrap(errors.ErrForbidden, "local encryption key is missing for the existing document")

	// ErrLocalKeyInvalid indicates the stored local secret is not 128 hex characters.
	ErrLocalKeyInvalid = errors.Wrap(errors.ErrInvalidInput, "stored local encryption key is malformed")
)

// SecretStore holds exactly one secret value.
type SecretStore interface {
	// Get returns ErrSecretNotFound when nothing is stored.
	Get(ctx context.Context) (string, error)

	// Set stores value only if nothing is stored yet, otherwise it returns ErrSecretExists.
	Set(ctx context.Context, value string) error

	// Delete removes the secret. Deleting a missing secret is not an error.
	Delete(ctx context.Context) error
}
