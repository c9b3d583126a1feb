// Package service provides the cryptographic primitives behind honeydid: the AES-256-GCM AEAD,
// the two key derivation profiles, passphrase and raw-key payload sealing, and KMS keepers.
package service

import (
	"context"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and a fresh nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// KeyDeriver turns a passphrase and salt into a 32-byte key under one profile.
type KeyDeriver interface {
	// Derive is deterministic and safe for concurrent use.
	Derive(passphrase, salt []byte, profile cryptoDomain.Profile) ([]byte, error)
}

// PayloadCipher seals and opens EncryptedPayloads.
type PayloadCipher interface {
	// SealWithPassphrase derives a key from passphrase with a fresh salt and seals plaintext.
	SealWithPassphrase(
		plaintext []byte,
		passphrase string,
		profile cryptoDomain.Profile,
	) (*cryptoDomain.EncryptedPayload, error)

	// OpenWithPassphrase derives the key from passphrase and the payload salt and opens it.
	OpenWithPassphrase(
		payload *cryptoDomain.EncryptedPayload,
		passphrase string,
		profile cryptoDomain.Profile,
	) ([]byte, error)

	// SealWithKey seals plaintext under a full-entropy 32-byte key. The payload carries no salt.
	SealWithKey(plaintext, key []byte) (*cryptoDomain.EncryptedPayload, error)

	// OpenWithKey opens a payload sealed under a raw key.
	OpenWithKey(payload *cryptoDomain.EncryptedPayload, key []byte) ([]byte, error)

	// WrapKey seals a 32-byte key under a passphrase-derived key.
	WrapKey(key []byte, passphrase string, profile cryptoDomain.Profile) (*cryptoDomain.EncryptedPayload, error)

	// UnwrapKey recovers a wrapped key and checks that it is exactly 32 bytes.
	UnwrapKey(
		payload *cryptoDomain.EncryptedPayload,
		passphrase string,
		profile cryptoDomain.Profile,
	) ([]byte, error)
}

// KMSKeeper is the subset of *secrets.Keeper used to protect local secrets with a KMS.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
