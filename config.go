package auth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Default token lifetimes: short-lived access, long-lived refresh.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Config holds the immutable token-issuance options. It is loaded once and
// injected at construction; nothing mutates it afterwards.
type Config struct {
	SigningKey      string
	Issuer          string
	Audience        []string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Validate enforces the minimum viable configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.AccessTokenTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.RefreshTokenTTL, validation.Min(time.Duration(0))),
	)
}

// withDefaults fills zero lifetimes so callers only set what they care about.
func (c Config) withDefaults() Config {
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
	return c
}
