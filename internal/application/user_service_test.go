package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
)

func seedUser(t *testing.T, repo *fakeUserRepo, username, email string, role entity.Role) *entity.User {
	t.Helper()
	u, err := entity.NewUser(username, email, "hash")
	require.NoError(t, err)
	u.Role = role
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUpdateProfile_SelfOrAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, "", quietLogger())
	ctx := context.Background()

	alice := seedUser(t, repo, "alice", "alice@example.com", entity.RoleUser)
	bob := seedUser(t, repo, "bob", "bob@example.com", entity.RoleUser)
	admin := seedUser(t, repo, "root", "root@example.com", entity.RoleAdmin)

	gh := "https://github.com/alice"
	updated, err := svc.UpdateProfile(ctx, alice.ID, entity.RoleUser, alice.ID, ProfileUpdate{GitHubURL: &gh})
	require.NoError(t, err)
	assert.Equal(t, gh, updated.GitHubURL)

	// Another regular user may not edit
	name := "evil"
	_, err = svc.UpdateProfile(ctx, bob.ID, entity.RoleUser, alice.ID, ProfileUpdate{Username: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin may
	name = "alice-renamed"
	updated, err = svc.UpdateProfile(ctx, admin.ID, entity.RoleAdmin, alice.ID, ProfileUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", updated.Username)
}

func TestUpdateProfile_PartialLeavesOtherFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, "", quietLogger())
	ctx := context.Background()

	alice := seedUser(t, repo, "alice", "alice@example.com", entity.RoleUser)
	gh := "https://github.com/alice"
	_, err := svc.UpdateProfile(ctx, alice.ID, entity.RoleUser, alice.ID, ProfileUpdate{GitHubURL: &gh})
	require.NoError(t, err)

	discord := "https://discord.gg/devhub"
	updated, err := svc.UpdateProfile(ctx, alice.ID, entity.RoleUser, alice.ID, ProfileUpdate{DiscordURL: &discord})
	require.NoError(t, err)

	assert.Equal(t, gh, updated.GitHubURL)
	assert.Equal(t, discord, updated.DiscordURL)
	assert.Equal(t, "alice", updated.Username)
}

func TestChangeRole_ActorRoleFromStore(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, "", quietLogger())
	ctx := context.Background()

	alice := seedUser(t, repo, "alice", "alice@example.com", entity.RoleUser)
	bob := seedUser(t, repo, "bob", "bob@example.com", entity.RoleUser)
	admin := seedUser(t, repo, "root", "root@example.com", entity.RoleAdmin)

	// A regular actor is rejected by the entity rule
	_, err := svc.ChangeRole(ctx, bob.ID, alice.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, entity.ErrRoleChangeNotAllowed)

	promoted, err := svc.ChangeRole(ctx, admin.ID, alice.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)

	// And back down again
	demoted, err := svc.ChangeRole(ctx, admin.ID, alice.ID, entity.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, demoted.Role)

	_, err = svc.ChangeRole(ctx, admin.ID, "missing", entity.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
