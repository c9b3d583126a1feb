package storage

import (
	"context"
	"encoding/base64"
	"fmt"

	cryptoService "github.com/honeydid/honeydid/internal/crypto/service"
)

// KeeperSecretStore wraps another store so the value it holds is encrypted by a KMS keeper
// (any gocloud.dev/secrets URL: base64key://, hashivault://, awskms://, gcpkms://, azurekeyvault://).
type KeeperSecretStore struct {
	inner  SecretStore
	keeper cryptoService.KMSKeeper
}

// NewKeeperSecretStore creates a KeeperSecretStore. The caller owns keeper and closes it.
func NewKeeperSecretStore(inner SecretStore, keeper cryptoService.KMSKeeper) *KeeperSecretStore {
	return &KeeperSecretStore{inner: inner, keeper: keeper}
}

func (s *KeeperSecretStore) Get(ctx context.Context) (string, error) {
	wrapped, err := s.inner.Get(ctx)
	if err != nil {
		return "", err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return "", fmt.Errorf("%w: wrapped secret is not base64", ErrLocalKeyInvalid)
	}

	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap local secret with KMS: %w", err)
	}
	return string(plaintext), nil
}

func (s *KeeperSecretStore) Set(ctx context.Context, value string) error {
	ciphertext, err := s.keeper.Encrypt(ctx, []byte(value))
	if err != nil {
		return fmt.Errorf("failed to wrap local secret with KMS: %w", err)
	}
	return s.inner.Set(ctx, base64.StdEncoding.EncodeToString(ciphertext))
}

func (s *KeeperSecretStore) Delete(ctx context.Context) error {
	return s.inner.Delete(ctx)
}
