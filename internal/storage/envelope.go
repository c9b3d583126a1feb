package storage

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	cryptoService "github.com/honeydid/honeydid/internal/crypto/service"
	"github.com/honeydid/honeydid/internal/errors"
)

// Envelope seals the working document at rest under an Argon2id key derived from the local secret.
type Envelope struct {
	dir    string
	keys   *LocalKeyProvider
	cipher cryptoService.PayloadCipher
	logger *slog.Logger
}

// NewEnvelope creates an Envelope writing DocumentFileName in dir.
func NewEnvelope(
	dir string,
	keys *LocalKeyProvider,
	cipher cryptoService.PayloadCipher,
	logger *slog.Logger,
) *Envelope {
	return &Envelope{dir: dir, keys: keys, cipher: cipher, logger: logger}
}

// Save seals plaintext with a fresh salt and atomically replaces the stored document.
func (e *Envelope) Save(ctx context.Context, plaintext []byte) error {
	secret, err := e.secretForWrite(ctx)
	if err != nil {
		return err
	}

	payload, err := e.cipher.SealWithPassphrase(plaintext, secret, cryptoDomain.ProfileArgon2id)
	if err != nil {
		return fmt.Errorf("failed to seal document: %w", err)
	}

	data, err := cryptoDomain.EncodePayload(payload)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(e.dir, DocumentFileName, data); err != nil {
		return err
	}
	e.logger.Debug("document saved", slog.Int("bytes", len(data)))
	return nil
}

// Load returns the stored plaintext. found is false when no document was ever saved.
func (e *Envelope) Load(ctx context.Context) (plaintext []byte, found bool, err error) {
	data, ok, err := readFile(e.dir, DocumentFileName)
	if err != nil || !ok {
		return nil, false, err
	}

	secret, err := e.keys.Get(ctx)
	if errors.Is(err, ErrSecretNotFound) {
		return nil, true, ErrLocalKeyLost
	}
	if err != nil {
		return nil, true, err
	}

	payload, err := cryptoDomain.DecodePayload(data)
	if err != nil {
		return nil, true, err
	}

	plaintext, err = e.cipher.OpenWithPassphrase(payload, secret, cryptoDomain.ProfileArgon2id)
	if err != nil {
		e.logger.Debug("failed to open stored document", slog.Any("error", err))
		return nil, true, err
	}
	return plaintext, true, nil
}

// Exists reports whether a sealed document is on disk.
func (e *Envelope) Exists() (bool, error) {
	return fileExists(e.dir, DocumentFileName)
}

// Delete removes the sealed document. The local secret is kept.
func (e *Envelope) Delete() error {
	return removeFile(e.dir, DocumentFileName)
}

// Ping reports whether the data directory exists or can be created.
func (e *Envelope) Ping(_ context.Context) error {
	return ensureDir(e.dir)
}

// secretForWrite creates the local secret on first save, but refuses to when a document sealed
// under a now missing secret is still on disk.
func (e *Envelope) secretForWrite(ctx context.Context) (string, error) {
	secret, err := e.keys.Get(ctx)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, ErrSecretNotFound) {
		return "", err
	}

	exists, err := e.Exists()
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrLocalKeyLost
	}
	return e.keys.GetOrCreate(ctx)
}
