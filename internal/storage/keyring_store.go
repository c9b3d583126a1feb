package storage

import (
	"context"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/honeydid/honeydid/internal/errors"
)

// KeyringSecretStore keeps the secret in the OS keyring.
type KeyringSecretStore struct {
	ring keyring.Keyring
	key  string
}

// NewKeyringSecretStore wraps an already opened keyring.
func NewKeyringSecretStore(ring keyring.Keyring, key string) *KeyringSecretStore {
	return &KeyringSecretStore{ring: ring, key: key}
}

// OpenKeyringSecretStore opens the platform keyring for service. It fails with
// keyring.ErrNoAvailImpl when the platform has no usable backend.
func OpenKeyringSecretStore(service, key string) (*KeyringSecretStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
		},
		KeychainTrustApplication: true,
		LibSecretCollectionName:  "login",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return NewKeyringSecretStore(ring, key), nil
}

func (s *KeyringSecretStore) Get(_ context.Context) (string, error) {
	item, err := s.ring.Get(s.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return string(item.Data), nil
}

func (s *KeyringSecretStore) Set(ctx context.Context, value string) error {
	if _, err := s.Get(ctx); err == nil {
		return ErrSecretExists
	} else if !errors.Is(err, ErrSecretNotFound) {
		return err
	}

	if err := s.ring.Set(keyring.Item{
		Key:         s.key,
		Data:        []byte(value),
		Label:       "honeydid local encryption key",
		Description: "Protects the locally stored honeydid document",
	}); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

func (s *KeyringSecretStore) Delete(_ context.Context) error {
	err := s.ring.Remove(s.key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to remove keyring item: %w", err)
	}
	return nil
}
