package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Nickname() string
	Email() string
	Role() string
}

// TokenPair is the result of a successful login or reissue. The access token
// is a self-contained signed assertion of identity and expiry; the refresh
// token is only authoritative through the session store entry.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// AccessTokenExpiresIn reports the remaining access-token lifetime at the
// given instant. Session entries are bounded by this value.
func (p *TokenPair) AccessTokenExpiresIn(now time.Time) time.Duration {
	return p.AccessTokenExpiresAt.Sub(now)
}

// TokenIssuer generates and decodes signed access/refresh token pairs.
type TokenIssuer interface {
	// Issue produces a signed token pair embedding identity and expiry.
	Issue(identity Identity) (*TokenPair, error)
	// Validate reports whether the token signature verifies and the
	// expiry is in the future. It never consults the session store.
	Validate(token string) bool
	// DecodeClaims parses and verifies the token signature without
	// enforcing expiry. Fails with ErrInvalidToken on malformed input.
	DecodeClaims(token string) (*JWTClaims, error)
	// DecodeIdentity extracts the subject identity, structural check only.
	DecodeIdentity(token string) (string, error)
	// RemainingLifetime returns the embedded expiry minus current time.
	RemainingLifetime(token string) (time.Duration, error)
}

// SessionStore is the contract over the external TTL-capable cache backing
// refresh sessions and the access-token denylist. Writes are unconditional,
// last writer wins; single-key atomicity is the only ordering guarantee.
type SessionStore interface {
	// SetSession overwrites the current refresh token for the identity.
	SetSession(ctx context.Context, identity, refreshToken string, ttl time.Duration) error
	// GetSession returns the stored refresh token, or ErrNoActiveSession.
	GetSession(ctx context.Context, identity string) (string, error)
	// ClearSession is an idempotent delete.
	ClearSession(ctx context.Context, identity string) error
	// MarkRevoked denylists an access token until its natural expiry.
	MarkRevoked(ctx context.Context, accessToken string, ttl time.Duration) error
	// IsRevoked reports whether the exact token value is denylisted.
	IsRevoked(ctx context.Context, accessToken string) (bool, error)
}

// MemberStore is the credential-store surface the orchestrator consumes.
// The bun-backed Members repository implements it; tests substitute mocks.
type MemberStore interface {
	ExistsActiveByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	Register(ctx context.Context, member *Member) (*Member, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	TrackIssuedToken(ctx context.Context, id uuid.UUID, accessToken string) error
	TrackAttemptedLogin(ctx context.Context, member *Member) error
	TrackSuccessfulLogin(ctx context.Context, member *Member) error
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// PasswordPolicy checks raw passwords before hashing. Rule content is a
// collaborator concern; the orchestrator only invokes it and propagates
// the violation.
type PasswordPolicy interface {
	Check(rawPassword string) error
}

// Authenticator holds the session lifecycle operations
type Authenticator interface {
	Signup(ctx context.Context, req SignupRequest) (*MemberResponse, error)
	Login(ctx context.Context, email, password string, adminRequested bool) (*TokenPair, error)
	Reissue(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	UpdatePassword(ctx context.Context, email, newPassword string) error
	VerifyAccess(ctx context.Context, accessToken string) (*JWTClaims, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
