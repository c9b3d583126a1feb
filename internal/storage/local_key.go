package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/honeydid/honeydid/internal/errors"
)

// localSecretBytes is the entropy of the local secret. It is stored hex-encoded (128 characters).
const localSecretBytes = 64

// LocalKeyProvider reads and lazily creates the local secret.
type LocalKeyProvider struct {
	store  SecretStore
	logger *slog.Logger
}

// NewLocalKeyProvider creates a LocalKeyProvider backed by store.
func NewLocalKeyProvider(store SecretStore, logger *slog.Logger) *LocalKeyProvider {
	return &LocalKeyProvider{store: store, logger: logger}
}

// Get returns the stored secret or ErrSecretNotFound. It never creates one.
func (p *LocalKeyProvider) Get(ctx context.Context) (string, error) {
	secret, err := p.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if !validLocalSecret(secret) {
		return "", ErrLocalKeyInvalid
	}
	return secret, nil
}

// GetOrCreate returns the stored secret, generating and storing a new one when none exists.
// If another process stores a secret between the read and the write, that secret wins.
func (p *LocalKeyProvider) GetOrCreate(ctx context.Context) (string, error) {
	secret, err := p.Get(ctx)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, ErrSecretNotFound) {
		return "", err
	}

	secret, err = generateLocalSecret()
	if err != nil {
		return "", err
	}

	err = p.store.Set(ctx, secret)
	if errors.Is(err, ErrSecretExists) {
		p.logger.Debug("local secret created concurrently, re-reading")
		return p.Get(ctx)
	}
	if err != nil {
		return "", err
	}

	p.logger.Info("generated new local encryption key")
	return secret, nil
}

func generateLocalSecret() (string, error) {
	raw := make([]byte, localSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate local secret: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func validLocalSecret(secret string) bool {
	if len(secret) != 2*localSecretBytes {
		return false
	}
	_, err := hex.DecodeString(secret)
	return err == nil
}
