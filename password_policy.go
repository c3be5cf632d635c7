package auth

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// bcrypt truncates input beyond 72 bytes, so the policy caps there.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	hasLetterRe = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe  = regexp.MustCompile(`[0-9]`)
	hasSymbolRe = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// DefaultPasswordPolicy enforces length and composition rules on raw
// passwords. Each rule carries a stable name so violations can be relayed
// to the caller without leaking the password itself.
type DefaultPasswordPolicy struct {
	rules []namedRule
}

type namedRule struct {
	name string
	rule validation.Rule
}

// NewDefaultPasswordPolicy builds the stock policy: 8-72 characters with at
// least one letter, one digit, and one symbol.
func NewDefaultPasswordPolicy() *DefaultPasswordPolicy {
	return &DefaultPasswordPolicy{
		rules: []namedRule{
			{"required", validation.Required.Error("password is required")},
			{"length", validation.Length(MinPasswordLength, MaxPasswordLength)},
			{"letter", validation.Match(hasLetterRe).Error("must contain a letter")},
			{"digit", validation.Match(hasDigitRe).Error("must contain a digit")},
			{"symbol", validation.Match(hasSymbolRe).Error("must contain a symbol")},
		},
	}
}

var _ PasswordPolicy = (*DefaultPasswordPolicy)(nil)

// Check validates the raw password and reports the first violated rule.
func (p *DefaultPasswordPolicy) Check(rawPassword string) error {
	for _, r := range p.rules {
		if err := validation.Validate(rawPassword, r.rule); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "password does not satisfy the password policy").
				WithTextCode(TextCodePolicyViolation).
				WithCode(goerrors.CodeBadRequest).
				WithMetadata(map[string]any{"rule": r.name})
		}
	}
	return nil
}

// PasswordPolicyFunc adapts a function to the PasswordPolicy interface.
type PasswordPolicyFunc func(rawPassword string) error

// Check implements PasswordPolicy.
func (f PasswordPolicyFunc) Check(rawPassword string) error {
	if f == nil {
		return nil
	}
	return f(rawPassword)
}

// IsPolicyViolation reports whether the error came from the password policy.
func IsPolicyViolation(err error) bool {
	var richErr *goerrors.Error
	return goerrors.As(err, &richErr) && richErr.TextCode == TextCodePolicyViolation
}
