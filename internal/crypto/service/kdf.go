package service

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
)

// keyDeriver implements KeyDeriver for the Argon2id and PBKDF2-HMAC-SHA256 profiles.
type keyDeriver struct{}

// NewKeyDeriver creates a KeyDeriver with the fixed profile parameters from cryptoDomain.
func NewKeyDeriver() KeyDeriver {
	return &keyDeriver{}
}

// Derive returns a 32-byte key for passphrase and a 16-byte salt.
//
// ProfilePBKDF2 must stay byte-identical to
//
//	crypto.subtle.deriveKey({name: 'PBKDF2', salt, iterations: 600000, hash: 'SHA-256'},
//	    keyMaterial, {name: 'AES-GCM', length: 256}, ...)
//
// in the exported HTML.
func (k *keyDeriver) Derive(passphrase, salt []byte, profile cryptoDomain.Profile) ([]byte, error) {
	if len(salt) != cryptoDomain.SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d",
			cryptoDomain.ErrKeyDerivation, cryptoDomain.SaltSize, len(salt))
	}

	switch profile {
	case cryptoDomain.ProfileArgon2id:
		return argon2.IDKey(
			passphrase,
			salt,
			cryptoDomain.Argon2Time,
			cryptoDomain.Argon2Memory,
			cryptoDomain.Argon2Threads,
			cryptoDomain.KeySize,
		), nil
	case cryptoDomain.ProfilePBKDF2:
		return pbkdf2SHA256(passphrase, salt, cryptoDomain.PBKDF2Iterations, cryptoDomain.KeySize), nil
	default:
		return nil, fmt.Errorf("%w: unknown profile %q", cryptoDomain.ErrKeyDerivation, profile)
	}
}

func pbkdf2SHA256(passphrase, salt []byte, iterations, keyLen int) []byte {
	return pbkdf2.Key(passphrase, salt, iterations, keyLen, sha256.New)
}
