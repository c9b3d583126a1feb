package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
)

func TestPayloadCipher_Passphrase(t *testing.T) {
	pc := NewPayloadCipher(NewKeyDeriver())

	t.Run("Success_HelloWorldScenario", func(t *testing.T) {
		payload, err := pc.SealWithPassphrase(
			[]byte("Hello, world!"),
			"correct-horse-battery-staple",
			cryptoDomain.ProfilePBKDF2,
		)
		require.NoError(t, err)

		_, err = pc.OpenWithPassphrase(payload, "wrong-horse", cryptoDomain.ProfilePBKDF2)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		plaintext, err := pc.OpenWithPassphrase(payload, "correct-horse-battery-staple", cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)
		assert.Equal(t, "Hello, world!", string(plaintext))
	})

	t.Run("Success_RoundTripThroughWireFormat", func(t *testing.T) {
		for _, plaintext := range []string{"", "plain ascii", "Grüße, 你好, مرحبا, 🔐"} {
			payload, err := pc.SealWithPassphrase([]byte(plaintext), "pass", cryptoDomain.ProfileArgon2id)
			require.NoError(t, err)

			data, err := cryptoDomain.EncodePayload(payload)
			require.NoError(t, err)
			decoded, err := cryptoDomain.DecodePayload(data)
			require.NoError(t, err)

			opened, err := pc.OpenWithPassphrase(decoded, "pass", cryptoDomain.ProfileArgon2id)
			require.NoError(t, err)
			assert.Equal(t, plaintext, string(opened))
		}
	})

	t.Run("Success_FreshSaltAndNonceEveryCall", func(t *testing.T) {
		p1, err := pc.SealWithPassphrase([]byte("same"), "same", cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)
		p2, err := pc.SealWithPassphrase([]byte("same"), "same", cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)

		assert.Len(t, p1.Salt, cryptoDomain.SaltSize)
		assert.NotEqual(t, p1.Salt, p2.Salt)
		assert.NotEqual(t, p1.Nonce, p2.Nonce)
		assert.NotEqual(t, p1.Ciphertext, p2.Ciphertext)
	})

	t.Run("Error_ProfileMismatch", func(t *testing.T) {
		payload, err := pc.SealWithPassphrase([]byte("data"), "pass", cryptoDomain.ProfileArgon2id)
		require.NoError(t, err)

		_, err = pc.OpenWithPassphrase(payload, "pass", cryptoDomain.ProfilePBKDF2)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_MissingSalt", func(t *testing.T) {
		payload, err := pc.SealWithKey([]byte("data"), randomKey(t))
		require.NoError(t, err)

		_, err = pc.OpenWithPassphrase(payload, "pass", cryptoDomain.ProfilePBKDF2)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidData)
	})

	t.Run("Error_NilPayload", func(t *testing.T) {
		_, err := pc.OpenWithPassphrase(nil, "pass", cryptoDomain.ProfilePBKDF2)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidData)
	})
}

func TestPayloadCipher_RawKey(t *testing.T) {
	pc := NewPayloadCipher(NewKeyDeriver())
	key := randomKey(t)

	t.Run("Success_NoSalt", func(t *testing.T) {
		payload, err := pc.SealWithKey([]byte(`{"meta":{}}`), key)
		require.NoError(t, err)
		assert.Empty(t, payload.Salt)

		opened, err := pc.OpenWithKey(payload, key)
		require.NoError(t, err)
		assert.Equal(t, `{"meta":{}}`, string(opened))
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		payload, err := pc.SealWithKey([]byte("data"), key)
		require.NoError(t, err)

		_, err = pc.OpenWithKey(payload, randomKey(t))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_ShortKey", func(t *testing.T) {
		_, err := pc.SealWithKey([]byte("data"), key[:16])
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestPayloadCipher_WrapKey(t *testing.T) {
	pc := NewPayloadCipher(NewKeyDeriver())
	documentKey := randomKey(t)

	t.Run("Success_UnwrapRecoversKey", func(t *testing.T) {
		wrapped, err := pc.WrapKey(documentKey, "parisrex", cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)
		assert.Len(t, wrapped.Ciphertext, cryptoDomain.KeySize+cryptoDomain.TagSize)

		unwrapped, err := pc.UnwrapKey(wrapped, "parisrex", cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)
		assert.Equal(t, documentKey, unwrapped)
	})

	t.Run("Error_WrongPassphrase", func(t *testing.T) {
		wrapped, err := pc.WrapKey(documentKey, "parisrex", cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)

		_, err = pc.UnwrapKey(wrapped, "parisfido", cryptoDomain.ProfilePBKDF2)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_WrapWrongKeySize", func(t *testing.T) {
		_, err := pc.WrapKey([]byte("short"), "pass", cryptoDomain.ProfilePBKDF2)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("Error_RecoveredValueNotAKey", func(t *testing.T) {
		notAKey, err := pc.SealWithPassphrase([]byte("sixteen byte val"), "pass", cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)

		_, err = pc.UnwrapKey(notAKey, "pass", cryptoDomain.ProfilePBKDF2)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}
