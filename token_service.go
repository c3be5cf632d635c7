package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenServiceImpl implements the TokenIssuer interface
type TokenServiceImpl struct {
	signingKey []byte
	issuer     string
	audience   jwt.ClaimStrings
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     Logger
	now        func() time.Time
}

// TokenServiceOption customizes the token service.
type TokenServiceOption func(*TokenServiceImpl)

// WithTokenClock injects a custom clock (useful for tests).
func WithTokenClock(clock func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if clock != nil {
			ts.now = clock
		}
	}
}

// WithTokenLogger overrides the logger used by the token service.
func WithTokenLogger(logger Logger) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// NewTokenService creates a new TokenIssuer from the immutable config.
// The signing key is process-wide configuration, loaded once at startup.
func NewTokenService(cfg Config, opts ...TokenServiceOption) *TokenServiceImpl {
	cfg = cfg.withDefaults()

	ts := &TokenServiceImpl{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   jwt.ClaimStrings(cfg.Audience),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		logger:     defLogger{},
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}

	return ts
}

var _ TokenIssuer = (*TokenServiceImpl)(nil)

// Issue produces a signed access/refresh pair for the identity. Both tokens
// share the subject; only the access token carries the role.
func (ts *TokenServiceImpl) Issue(identity Identity) (*TokenPair, error) {
	if identity == nil {
		return nil, goerrors.New("identity is required", goerrors.CategoryBadInput)
	}

	now := ts.now()
	accessExpiry := now.Add(ts.accessTTL)
	refreshExpiry := now.Add(ts.refreshTTL)

	accessToken, err := ts.SignClaims(&JWTClaims{
		RegisteredClaims: ts.registeredClaims(identity.ID(), now, accessExpiry),
		UID:              identity.ID(),
		MemberRole:       identity.Role(),
		Use:              TokenUseAccess,
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := ts.SignClaims(&JWTClaims{
		RegisteredClaims: ts.registeredClaims(identity.ID(), now, refreshExpiry),
		UID:              identity.ID(),
		Use:              TokenUseRefresh,
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate reports whether the token signature verifies and its expiry is in
// the future. Purely cryptographic/structural; revocation markers and session
// entries are the orchestrator's concern.
func (ts *TokenServiceImpl) Validate(tokenString string) bool {
	_, err := ts.parse(tokenString, false)
	return err == nil
}

// DecodeClaims parses and verifies the signature without enforcing expiry.
// An expired but well-formed token still decodes.
func (ts *TokenServiceImpl) DecodeClaims(tokenString string) (*JWTClaims, error) {
	return ts.parse(tokenString, true)
}

// DecodeIdentity extracts the subject identity, structural check only.
func (ts *TokenServiceImpl) DecodeIdentity(tokenString string) (string, error) {
	claims, err := ts.DecodeClaims(tokenString)
	if err != nil {
		return "", err
	}

	id := claims.MemberID()
	if id == "" {
		return "", ErrInvalidToken
	}

	return id, nil
}

// RemainingLifetime computes the embedded expiry minus current time. It is
// used to bound session-entry and revocation-marker TTLs.
func (ts *TokenServiceImpl) RemainingLifetime(tokenString string) (time.Duration, error) {
	claims, err := ts.DecodeClaims(tokenString)
	if err != nil {
		return 0, err
	}

	if claims.RegisteredClaims.ExpiresAt == nil {
		return 0, ErrInvalidToken
	}

	return claims.RegisteredClaims.ExpiresAt.Time.Sub(ts.now()), nil
}

func (ts *TokenServiceImpl) parse(tokenString string, skipClaimsValidation bool) (*JWTClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 4)
	parserOptions = append(parserOptions, jwt.WithTimeFunc(ts.now))

	if skipClaimsValidation {
		parserOptions = append(parserOptions, jwt.WithoutClaimsValidation())
	} else {
		if ts.issuer != "" {
			parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
		}
		if len(ts.audience) > 0 {
			parserOptions = append(parserOptions, jwt.WithAudience(ts.audience[0]))
		}
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token service encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrInvalidToken.Category, ErrInvalidToken.Message).WithTextCode(ErrInvalidToken.TextCode)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token service could not decode claims")
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (ts *TokenServiceImpl) registeredClaims(subject string, now, expiry time.Time) jwt.RegisteredClaims {
	var aud jwt.ClaimStrings
	if len(ts.audience) > 0 {
		aud = make(jwt.ClaimStrings, len(ts.audience))
		copy(aud, ts.audience)
	}

	claims := jwt.RegisteredClaims{
		Issuer:    ts.issuer,
		Subject:   subject,
		Audience:  aud,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
	}

	ensureTokenID(&claims)

	return claims
}
