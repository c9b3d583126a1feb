package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)
		assert.NoError(t, keeper.Close())
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "  ")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestKMSService_WrapLocalSecret(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, keeper.Close())
	}()

	raw := make([]byte, 64)
	_, err = rand.Read(raw)
	require.NoError(t, err)
	secret := []byte(hex.EncodeToString(raw))

	wrapped, err := keeper.Encrypt(ctx, secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, wrapped)

	unwrapped, err := keeper.Decrypt(ctx, wrapped)
	require.NoError(t, err)
	assert.Equal(t, secret, unwrapped)

	t.Run("Error_InvalidCiphertext", func(t *testing.T) {
		decrypted, err := keeper.Decrypt(ctx, []byte("not a valid ciphertext"))
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("Error_DifferentKeeper", func(t *testing.T) {
		other, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, other.Close())
		}()

		decrypted, err := other.Decrypt(ctx, wrapped)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})
}
