package auth

import (
	"context"
)

var memberCtxKey = &contextKey{"member"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the Member in the given context
func WithContext(r context.Context, member *Member) context.Context {
	return context.WithValue(r, memberCtxKey, member)
}

// FromContext finds the member from the context.
func FromContext(ctx context.Context) (*Member, bool) {
	raw, ok := ctx.Value(memberCtxKey).(*Member)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// HasRole checks the claims in the context against the given role.
func HasRole(ctx context.Context, role MemberRole) bool {
	claims, ok := GetClaims(ctx)
	if !ok {
		return false
	}
	return claims.HasRole(string(role))
}

// IsAtLeast checks the claims in the context against the role hierarchy.
func IsAtLeast(ctx context.Context, role MemberRole) bool {
	claims, ok := GetClaims(ctx)
	if !ok {
		return false
	}
	return claims.IsAtLeast(role)
}
