package auth_test

import (
	"strings"
	"testing"

	auth "github.com/kappa1111/modooDiary"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPasswordPolicy(t *testing.T) {
	policy := auth.NewDefaultPasswordPolicy()

	t.Run("accepts a compliant password", func(t *testing.T) {
		assert.NoError(t, policy.Check("Sup3r-secret!"))
	})

	testCases := []struct {
		name     string
		password string
		rule     string
	}{
		{"empty password", "", "required"},
		{"too short", "a1!", "length"},
		{"too long", strings.Repeat("a1!", 30), "length"},
		{"no letter", "12345678!", "letter"},
		{"no digit", "abcdefgh!", "digit"},
		{"no symbol", "abcdefgh1", "symbol"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Check(tc.password)

			require.Error(t, err)
			assert.True(t, auth.IsPolicyViolation(err))

			var richErr *goerrors.Error
			require.True(t, goerrors.As(err, &richErr))
			assert.Equal(t, auth.TextCodePolicyViolation, richErr.TextCode)
			assert.Equal(t, tc.rule, richErr.Metadata["rule"])
		})
	}

	t.Run("violation never echoes the password", func(t *testing.T) {
		err := policy.Check("abcdefgh1")

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "abcdefgh1")
	})
}

func TestPasswordPolicyFunc(t *testing.T) {
	t.Run("adapts a plain function", func(t *testing.T) {
		calls := 0
		policy := auth.PasswordPolicyFunc(func(raw string) error {
			calls++
			return nil
		})

		assert.NoError(t, policy.Check("anything"))
		assert.Equal(t, 1, calls)
	})

	t.Run("nil func accepts everything", func(t *testing.T) {
		var policy auth.PasswordPolicyFunc
		assert.NoError(t, policy.Check("anything"))
	})
}

func TestIsPolicyViolation(t *testing.T) {
	assert.False(t, auth.IsPolicyViolation(nil))
	assert.False(t, auth.IsPolicyViolation(auth.ErrInvalidCredentials))
	assert.True(t, auth.IsPolicyViolation(auth.NewDefaultPasswordPolicy().Check("short")))
}
