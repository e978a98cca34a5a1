package store

import (
	"encoding/json"
	"testing"

	"github.com/oliverbeck/peakstatus/internal/models"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreateAndLookup(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	created, err := users.Create("alice", "hunter22", models.RoleAdmin)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, models.RoleAdmin, created.Role)
	require.NotEqual(t, "hunter22", created.PasswordHash)

	byName, err := users.FindByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, created.ID, byName.ID)

	byID, err := users.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "alice", byID.Username)
}

func TestUserStoreAbsentIsNotAnError(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	user, err := users.FindByUsername("ghost")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = users.FindByID(999)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestUserStoreDuplicateUsername(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	_, err := users.Create("bob", "secret1", models.RoleViewer)
	require.NoError(t, err)

	_, err = users.Create("bob", "different", models.RoleViewer)
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserStoreValidatePassword(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	created, err := users.Create("carol", "correct-horse", models.RoleViewer)
	require.NoError(t, err)

	require.True(t, users.ValidatePassword("correct-horse", created.PasswordHash))
	require.False(t, users.ValidatePassword("wrong", created.PasswordHash))
}

func TestUserStorePasswordNeverSerialized(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	created, err := users.Create("dave", "secret1", models.RoleViewer)
	require.NoError(t, err)

	raw, err := json.Marshal(created)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.NotContains(t, fields, "password")
	require.NotContains(t, fields, "passwordHash")
	require.NotContains(t, string(raw), "secret1")
}

func TestUserStoreUpdateLastLogin(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	created, err := users.Create("erin", "secret1", models.RoleViewer)
	require.NoError(t, err)
	require.Nil(t, created.LastLogin)

	require.NoError(t, users.UpdateLastLogin(created.ID))

	fresh, err := users.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.LastLogin)
}

func TestUserStoreListAdminsOrdered(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	_, err := users.Create("zed", "secret1", models.RoleAdmin)
	require.NoError(t, err)
	_, err = users.Create("viewer1", "secret1", models.RoleViewer)
	require.NoError(t, err)
	_, err = users.Create("amy", "secret1", models.RoleAdmin)
	require.NoError(t, err)

	admins, err := users.ListAdmins()
	require.NoError(t, err)
	require.Len(t, admins, 2)
	require.Equal(t, "amy", admins[0].Username)
	require.Equal(t, "zed", admins[1].Username)
}

func TestUserStoreDelete(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	created, err := users.Create("frank", "secret1", models.RoleViewer)
	require.NoError(t, err)

	deleted, err := users.Delete(created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = users.Delete(created.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}
