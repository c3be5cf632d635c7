package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Stable text codes relayed to API consumers alongside the human message.
const (
	TextCodeAlreadyJoined    = "ALREADY_JOINED"
	TextCodePolicyViolation  = "PASSWORD_POLICY_VIOLATION"
	TextCodeInvalidCreds     = "INVALID_CREDENTIALS"
	TextCodeAdminRequired    = "ADMIN_REQUIRED"
	TextCodeInvalidToken     = "INVALID_TOKEN"
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodeTokenRevoked     = "TOKEN_REVOKED"
	TextCodeSessionMismatch  = "SESSION_MISMATCH"
	TextCodeAccountNotFound  = "ACCOUNT_NOT_FOUND"
	TextCodeTooManyAttempts  = "TOO_MANY_LOGIN_ATTEMPTS"
	TextCodeEmptyPassword    = "EMPTY_PASSWORD"
	TextCodeSessionStoreDown = "SESSION_STORE_UNAVAILABLE"
)

// ErrDuplicateAccount is returned when an active account already uses the email.
var ErrDuplicateAccount = goerrors.New("an account with this email already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyJoined).
	WithCode(goerrors.CodeConflict)

// ErrInvalidCredentials is returned on unknown identity or password mismatch.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrAdminRequired is returned when an admin login is requested by a non-admin.
var ErrAdminRequired = goerrors.New("administrative role required", goerrors.CategoryAuthz).
	WithTextCode(TextCodeAdminRequired).
	WithCode(goerrors.CodeForbidden)

// ErrInvalidToken is returned for tokens that fail structural or signature checks.
var ErrInvalidToken = goerrors.New("token is malformed or not verifiable", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned for well-formed tokens past their expiry.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenRevoked is returned when an access token was invalidated by logout
// before its natural expiry.
var ErrTokenRevoked = goerrors.New("token has been revoked", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenRevoked).
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionMismatch is returned when the presented refresh token does not
// match the current session entry for the identity, or no session exists.
var ErrSessionMismatch = goerrors.New("refresh token does not match the active session", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionMismatch).
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountNotFound is returned when no member record matches the identifier.
var ErrAccountNotFound = goerrors.New("member not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrTooManyLoginAttempts is returned while the login cool-down window is active.
var ErrTooManyLoginAttempts = goerrors.New("too many login attempts, try again later", goerrors.CategoryRateLimit).
	WithTextCode(TextCodeTooManyAttempts)

// ErrNoEmptyPassword rejects empty passwords before they reach the hasher.
var ErrNoEmptyPassword = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrNoActiveSession signals an absent session-store entry. Callers usually
// translate it to ErrSessionMismatch; it is surfaced separately so the store
// contract can distinguish "no entry" from an infrastructure failure.
var ErrNoActiveSession = goerrors.New("no active session for identity", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// wrapStoreErr marks a session-store round-trip failure as infrastructure
// rather than client error. Nothing is retried here; the caller decides.
func wrapStoreErr(err error, msg string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg).
		WithTextCode(TextCodeSessionStoreDown)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeInvalidToken {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
