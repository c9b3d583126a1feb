package service

import (
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
)

// payloadCipher implements PayloadCipher on top of a KeyDeriver and AES-256-GCM.
//
// No associated data is bound: the browser decryptor in every exported artifact opens payloads
// with an empty AAD.
type payloadCipher struct {
	deriver KeyDeriver
}

// NewPayloadCipher creates a PayloadCipher that derives passphrase keys with deriver.
func NewPayloadCipher(deriver KeyDeriver) PayloadCipher {
	return &payloadCipher{deriver: deriver}
}

// SealWithPassphrase draws a fresh 16-byte salt, derives a key under profile and seals plaintext.
func (p *payloadCipher) SealWithPassphrase(
	plaintext []byte,
	passphrase string,
	profile cryptoDomain.Profile,
) (*cryptoDomain.EncryptedPayload, error) {
	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: failed to generate salt: %v", cryptoDomain.ErrEncryption, err)
	}

	key, err := p.deriver.Derive([]byte(passphrase), salt, profile)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	payload, err := p.SealWithKey(plaintext, key)
	if err != nil {
		return nil, err
	}
	payload.Salt = salt
	return payload, nil
}

// OpenWithPassphrase re-derives the key from the payload salt and opens the payload.
func (p *payloadCipher) OpenWithPassphrase(
	payload *cryptoDomain.EncryptedPayload,
	passphrase string,
	profile cryptoDomain.Profile,
) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: nil payload", cryptoDomain.ErrInvalidData)
	}
	if len(payload.Salt) != cryptoDomain.SaltSize {
		return nil, fmt.Errorf("%w: payload has no usable salt", cryptoDomain.ErrInvalidData)
	}

	key, err := p.deriver.Derive([]byte(passphrase), payload.Salt, profile)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	return p.OpenWithKey(payload, key)
}

// SealWithKey seals plaintext under a raw 32-byte key. The returned payload has no salt.
func (p *payloadCipher) SealWithKey(plaintext, key []byte) (*cryptoDomain.EncryptedPayload, error) {
	aead, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedPayload{
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// OpenWithKey opens a payload sealed under a raw 32-byte key.
func (p *payloadCipher) OpenWithKey(payload *cryptoDomain.EncryptedPayload, key []byte) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: nil payload", cryptoDomain.ErrInvalidData)
	}

	aead, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	return aead.Decrypt(payload.Ciphertext, payload.Nonce, nil)
}

// WrapKey seals a 32-byte key under a passphrase-derived key.
func (p *payloadCipher) WrapKey(
	key []byte,
	passphrase string,
	profile cryptoDomain.Profile,
) (*cryptoDomain.EncryptedPayload, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: wrapped key must be %d bytes", cryptoDomain.ErrInvalidKeySize, cryptoDomain.KeySize)
	}
	return p.SealWithPassphrase(key, passphrase, profile)
}

// UnwrapKey opens a wrapped key. A recovered value of the wrong length is treated as a decryption
// failure and zeroed.
func (p *payloadCipher) UnwrapKey(
	payload *cryptoDomain.EncryptedPayload,
	passphrase string,
	profile cryptoDomain.Profile,
) ([]byte, error) {
	key, err := p.OpenWithPassphrase(payload, passphrase, profile)
	if err != nil {
		return nil, err
	}
	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("%w: recovered key has length %d", cryptoDomain.ErrDecryptionFailed, len(key))
	}
	return key, nil
}
