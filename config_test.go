package auth_test

import (
	"testing"
	"time"

	auth "github.com/kappa1111/modooDiary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("accepts a minimal config", func(t *testing.T) {
		cfg := auth.Config{SigningKey: "a-signing-key-of-enough-length"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects a missing signing key", func(t *testing.T) {
		assert.Error(t, auth.Config{}.Validate())
	})

	t.Run("rejects a short signing key", func(t *testing.T) {
		assert.Error(t, auth.Config{SigningKey: "short"}.Validate())
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := auth.Config{SigningKey: "a-signing-key-of-enough-length"}

	service := auth.NewTokenService(cfg)
	identity := newTestMember(auth.RoleMember, "password123!").Identity()

	pair, err := service.Issue(identity)
	require.NoError(t, err)

	accessLifetime := time.Until(pair.AccessTokenExpiresAt)
	refreshLifetime := time.Until(pair.RefreshTokenExpiresAt)

	assert.InDelta(t, auth.DefaultAccessTokenTTL.Seconds(), accessLifetime.Seconds(), 5)
	assert.InDelta(t, auth.DefaultRefreshTokenTTL.Seconds(), refreshLifetime.Seconds(), 5)
}
