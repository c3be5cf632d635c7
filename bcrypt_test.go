package auth_test

import (
	"testing"

	auth "github.com/kappa1111/modooDiary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := auth.HashPassword("password123!")

		require.NoError(t, err)
		assert.NotEqual(t, "password123!", hash)
		assert.NoError(t, auth.ComparePasswordAndHash("password123!", hash))
	})

	t.Run("rejects empty passwords", func(t *testing.T) {
		_, err := auth.HashPassword("")
		assert.ErrorIs(t, err, auth.ErrNoEmptyPassword)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		first, err := auth.HashPassword("password123!")
		require.NoError(t, err)

		second, err := auth.HashPassword("password123!")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	t.Run("mismatch maps to invalid credentials", func(t *testing.T) {
		hash, err := auth.HashPassword("password123!")
		require.NoError(t, err)

		err = auth.ComparePasswordAndHash("wrongpassword", hash)

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("garbage hash fails without invalid credentials mapping", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("password123!", "not-a-bcrypt-hash")

		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := auth.BcryptHasher{}

	hash, err := hasher.HashPassword("password123!")
	require.NoError(t, err)
	assert.NoError(t, hasher.ComparePasswordAndHash("password123!", hash))
	assert.ErrorIs(t, hasher.ComparePasswordAndHash("nope", hash), auth.ErrInvalidCredentials)
}
