package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// Security properties:
//   - 256-bit key
//   - 12-byte nonce drawn from crypto/rand inside every Encrypt call
//   - 16-byte authentication tag appended to the ciphertext
//
// The nonce is never accepted from the caller for encryption, so a (key, nonce) pair cannot be
// reused through this type. The cipher is stateless and safe for concurrent use.
//
// The browser side of an exported artifact opens these ciphertexts with
// crypto.subtle.decrypt({name: 'AES-GCM', iv: nonce}, key, ciphertext), which expects exactly this
// layout (tag appended, no AAD).
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// Parameters:
//   - key: a 32-byte (256-bit) key
//
// Returns:
//   - a ready AESGCMCipher
//   - cryptoDomain.ErrInvalidKeySize if the key is not 32 bytes, or cryptoDomain.ErrEncryption
//     if the block cipher cannot be built
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: key must be exactly %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, cryptoDomain.KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", cryptoDomain.ErrEncryption, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GCM: %v", cryptoDomain.ErrEncryption, err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt seals plaintext under a freshly generated 12-byte nonce.
//
// The returned ciphertext includes the 16-byte authentication tag. Pass nil for aad unless both
// sides of the exchange agree on associated data.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to generate nonce: %v", cryptoDomain.ErrEncryption, err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt opens ciphertext with the given nonce and AAD.
//
// A wrong key, a modified ciphertext, a wrong nonce length or a truncated ciphertext all return
// cryptoDomain.ErrDecryptionFailed. The underlying reason is kept in the message for logs.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce length %d", cryptoDomain.ErrDecryptionFailed, len(nonce))
	}
	if len(ciphertext) < a.aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", cryptoDomain.ErrDecryptionFailed)
	}

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}
