package auth_test

import (
	"context"
	"testing"

	auth "github.com/kappa1111/modooDiary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full lifecycle against the real bun repository, bcrypt hasher, and the
// in-memory session store.
func TestAuthenticatorIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	repo, _ := setupMembersRepo(t)
	sessions := auth.NewMemorySessionStore()

	authenticator, err := auth.NewAuthenticator(repo, sessions, newTestConfig())
	require.NoError(t, err)
	authenticator = authenticator.WithLogger(MockLogger{})

	const email = "a@x.com"
	const password = "Abcdef1!"

	resp, err := authenticator.Signup(ctx, auth.SignupRequest{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	assert.Equal(t, email, resp.Email)
	assert.Equal(t, "a", resp.Nickname)

	_, err = authenticator.Signup(ctx, auth.SignupRequest{
		Email:    email,
		Password: password,
	})
	assert.ErrorIs(t, err, auth.ErrDuplicateAccount)

	_, err = authenticator.Login(ctx, email, "wrong-password1!", false)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	first, err := authenticator.Login(ctx, email, password, false)
	require.NoError(t, err)

	// the issued access token lands on the member record for audit
	record, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, record.LastAccessToken)
	assert.Equal(t, first.AccessToken, *record.LastAccessToken)

	second, err := authenticator.Reissue(ctx, first.AccessToken, first.RefreshToken)
	require.NoError(t, err)

	_, err = authenticator.Reissue(ctx, first.AccessToken, first.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrSessionMismatch)

	claims, err := authenticator.VerifyAccess(ctx, second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.ID.String(), claims.MemberID())

	const newPassword = "Ghijkl2?"
	require.NoError(t, authenticator.UpdatePassword(ctx, email, newPassword))

	_, err = authenticator.Login(ctx, email, password, false)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	third, err := authenticator.Login(ctx, email, newPassword, false)
	require.NoError(t, err)

	require.NoError(t, authenticator.Logout(ctx, third.AccessToken))

	_, err = authenticator.VerifyAccess(ctx, third.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	// a logged-out identity cannot reissue
	_, err = authenticator.Reissue(ctx, third.AccessToken, third.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrSessionMismatch)
}
