package domain

import (
	"github.com/honeydid/honeydid/internal/errors"
)

// PublicDecryptionMessage is the only text a user ever sees when opening a payload fails.
// It deliberately does not say whether the key was wrong or which field was malformed.
const PublicDecryptionMessage = "incorrect passphrase or corrupted file"

// Cryptographic operation error definitions.
//
// Each error may be wrapped with internal detail (library error, offending field) for logging.
// Anything shown to a user must go through PublicMessage.
var (
	// ErrKeyDerivation indicates a KDF parameter or library failure. With the fixed profiles this
	// should never happen in practice.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrEncryption indicates cipher construction or sealing failed.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryptionFailed indicates an authentication tag mismatch, a wrong key or a ciphertext of
	// impossible length. These causes are intentionally indistinguishable.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, PublicDecryptionMessage)

	// ErrInvalidData indicates a payload that cannot be parsed: malformed JSON or base64, a nonce
	// that is not 12 bytes, missing fields or a missing embedding marker.
	ErrInvalidData = errors.Wrap(errors.ErrInvalidInput, "invalid or corrupted data format")

	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
)

// IsDecryptionFailure reports whether err is one of the failures that must be reported to users
// as PublicDecryptionMessage.
func IsDecryptionFailure(err error) bool {
	return errors.Is(err, ErrDecryptionFailed) || errors.Is(err, ErrInvalidData)
}

// PublicMessage returns the user-facing text for err. Decryption and data format failures collapse
// into PublicDecryptionMessage; everything else keeps its own message.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsDecryptionFailure(err) {
		return PublicDecryptionMessage
	}
	return err.Error()
}
