package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_Defaults(t *testing.T) {
	u, err := NewUser("  alice  ", " alice@example.com ", "hash")
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.False(t, u.EmailVerified)
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "a@b.c", "hash")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = NewUser("alice", "", "hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("alice", "a@b.c", "")
	assert.ErrorIs(t, err, ErrInvalidPasswordHash)
}

func TestChangeRole_RequiresAdminActor(t *testing.T) {
	target, err := NewUser("bob", "bob@example.com", "hash")
	require.NoError(t, err)

	regular, err := NewUser("carol", "carol@example.com", "hash")
	require.NoError(t, err)

	err = target.ChangeRole(RoleAdmin, regular)
	assert.ErrorIs(t, err, ErrRoleChangeNotAllowed)
	assert.Equal(t, RoleUser, target.Role)

	err = target.ChangeRole(RoleAdmin, nil)
	assert.ErrorIs(t, err, ErrRoleChangeNotAllowed)

	admin := &User{Username: "root", Email: "root@example.com", Role: RoleAdmin}
	require.NoError(t, target.ChangeRole(RoleAdmin, admin))
	assert.Equal(t, RoleAdmin, target.Role)
}

func TestSetEmailVerified_ClearsTokenPair(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	u.SetVerificationToken("tok", time.Now().Add(time.Hour))
	require.NotEmpty(t, u.VerificationToken)
	require.False(t, u.VerificationTokenExpiry.IsZero())

	u.SetEmailVerified()
	assert.True(t, u.EmailVerified)
	assert.Empty(t, u.VerificationToken)
	assert.True(t, u.VerificationTokenExpiry.IsZero())
}

func TestUpdatePassword_ClearsResetToken(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	u.SetPasswordResetToken("reset-tok", time.Now().Add(time.Hour))
	require.NoError(t, u.UpdatePassword("newhash"))

	assert.Equal(t, "newhash", u.PasswordHash)
	assert.Empty(t, u.PasswordResetToken)
	assert.True(t, u.PasswordResetTokenExpiry.IsZero())

	assert.ErrorIs(t, u.UpdatePassword(""), ErrInvalidPasswordHash)
}

func TestChangeURLs_Normalize(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	u.ChangeGitHubURL("  https://github.com/alice  ")
	assert.Equal(t, "https://github.com/alice", u.GitHubURL)

	u.ChangeDiscordURL("   ")
	assert.Empty(t, u.DiscordURL)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("User"))
	assert.Equal(t, RoleUser, ParseRole("somethingelse"))
	assert.Equal(t, RoleUser, ParseRole(""))
}
