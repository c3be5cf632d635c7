package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token use markers embedded in the token_use claim.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// AuthClaims represents the decoded view of a signed token
type AuthClaims interface {
	Subject() string
	MemberID() string
	Role() string
	TokenUse() string
	HasRole(role string) bool
	IsAtLeast(minRole MemberRole) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID        string `json:"uid,omitempty"`
	MemberRole string `json:"role,omitempty"`
	Use        string `json:"token_use,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// MemberID returns the member ID
func (c *JWTClaims) MemberID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Role returns the member role
func (c *JWTClaims) Role() string {
	return c.MemberRole
}

// TokenUse returns the token_use marker (access or refresh)
func (c *JWTClaims) TokenUse() string {
	return c.Use
}

// HasRole checks if the claims carry a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.MemberRole == role
}

// IsAtLeast checks if the role is at least the minimum required role
func (c *JWTClaims) IsAtLeast(minRole MemberRole) bool {
	return MemberRole(c.MemberRole).IsAtLeast(minRole)
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureTokenID stamps a unique jti so otherwise identical tokens issued in
// the same second still differ at the wire level.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
