package auth_test

import (
	"encoding/json"
	"testing"

	auth "github.com/kappa1111/modooDiary"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberIdentity(t *testing.T) {
	member := &auth.Member{
		ID:       uuid.New(),
		Role:     auth.RoleAdmin,
		Nickname: "tester",
		Email:    "tester@example.com",
	}

	identity := member.Identity()

	assert.Equal(t, member.ID.String(), identity.ID())
	assert.Equal(t, "tester", identity.Nickname())
	assert.Equal(t, "tester@example.com", identity.Email())
	assert.Equal(t, "admin", identity.Role())
}

func TestToMemberResponse(t *testing.T) {
	t.Run("projects public fields only", func(t *testing.T) {
		member := &auth.Member{
			ID:           uuid.New(),
			Role:         auth.RoleMember,
			Nickname:     "tester",
			Email:        "tester@example.com",
			PasswordHash: "$2a$12$secret",
		}

		resp := auth.ToMemberResponse(member)

		require.NotNil(t, resp)
		assert.Equal(t, member.ID, resp.ID)
		assert.Equal(t, member.Email, resp.Email)

		payload, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(payload), "secret")
	})

	t.Run("nil member yields nil response", func(t *testing.T) {
		assert.Nil(t, auth.ToMemberResponse(nil))
	})
}

func TestMemberJSONHidesSecrets(t *testing.T) {
	token := "issued-access-token"
	member := &auth.Member{
		ID:              uuid.New(),
		Email:           "tester@example.com",
		PasswordHash:    "$2a$12$secret",
		LastAccessToken: &token,
	}

	payload, err := json.Marshal(member)
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "secret")
	assert.NotContains(t, string(payload), token)
}
