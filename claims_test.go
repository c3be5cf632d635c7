package auth_test

import (
	"testing"
	"time"

	auth "github.com/kappa1111/modooDiary"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWTClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "member-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
		},
		UID:        "member-1",
		MemberRole: "admin",
		Use:        auth.TokenUseAccess,
	}

	t.Run("accessors", func(t *testing.T) {
		assert.Equal(t, "member-1", claims.Subject())
		assert.Equal(t, "member-1", claims.MemberID())
		assert.Equal(t, "admin", claims.Role())
		assert.Equal(t, auth.TokenUseAccess, claims.TokenUse())
		assert.Equal(t, now, claims.IssuedAt())
		assert.Equal(t, now.Add(30*time.Minute), claims.Expires())
	})

	t.Run("member id falls back to subject", func(t *testing.T) {
		c := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "member-2"},
		}
		assert.Equal(t, "member-2", c.MemberID())
	})

	t.Run("role checks", func(t *testing.T) {
		assert.True(t, claims.HasRole("admin"))
		assert.False(t, claims.HasRole("member"))
		assert.True(t, claims.IsAtLeast(auth.RoleMember))
		assert.True(t, claims.IsAtLeast(auth.RoleAdmin))
		assert.False(t, claims.IsAtLeast(auth.RoleOwner))
	})

	t.Run("zero times when claims are missing", func(t *testing.T) {
		c := &auth.JWTClaims{}
		assert.True(t, c.Expires().IsZero())
		assert.True(t, c.IssuedAt().IsZero())
	})
}
