package services

import (
	"encoding/json"
	"testing"

	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/models"
	"github.com/oliverbeck/peakstatus/internal/store"
	"github.com/stretchr/testify/require"
)

func TestRegisterAlwaysCreatesViewer(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("bob", "secret1")
	require.NoError(t, err)
	require.Equal(t, models.RoleViewer, user.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	t.Run("username too short", func(t *testing.T) {
		_, err := svc.Register("ab", "secret1")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("username illegal characters", func(t *testing.T) {
		_, err := svc.Register("bob smith", "secret1")
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Register("bob!", "secret1")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("hyphen and underscore allowed", func(t *testing.T) {
		_, err := svc.Register("bob_the-builder", "secret1")
		require.NoError(t, err)
	})

	t.Run("password too short", func(t *testing.T) {
		_, err := svc.Register("carol", "five5")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register("dupe", "secret1")
		require.NoError(t, err)
		_, err = svc.Register("dupe", "secret2")
		require.ErrorIs(t, err, store.ErrDuplicateUsername)
	})
}

func TestLoginSuccess(t *testing.T) {
	svc, users := newAuthService(t)

	_, err := svc.Register("bob", "secret1")
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Username: "bob", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "bob", resp.User.Username)
	// last_login is set before the response is returned.
	require.NotNil(t, resp.User.LastLogin)

	fresh, err := users.FindByUsername("bob")
	require.NoError(t, err)
	require.NotNil(t, fresh.LastLogin)
}

func TestLoginFailureIsUniform(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("realuser", "secret1")
	require.NoError(t, err)

	_, unknownErr := svc.Login(&dto.LoginRequest{Username: "ghost", Password: "x"})
	_, wrongPassErr := svc.Login(&dto.LoginRequest{Username: "realuser", Password: "wrongpass"})

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	// Indistinguishable causes: same error value, same message.
	require.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestLoginTokenCarriesRole(t *testing.T) {
	svc, users := newAuthService(t)

	_, err := users.Create("boss", "secret1", models.RoleAdmin)
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Username: "boss", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestCreateUserAsAdmin(t *testing.T) {
	svc, _ := newAuthService(t)

	t.Run("admin role allowed", func(t *testing.T) {
		user, err := svc.CreateUserAsAdmin("second-admin", "secret1", models.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("viewer role allowed", func(t *testing.T) {
		user, err := svc.CreateUserAsAdmin("watcher", "secret1", models.RoleViewer)
		require.NoError(t, err)
		require.Equal(t, models.RoleViewer, user.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := svc.CreateUserAsAdmin("oops", "secret1", models.Role("superuser"))
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserResponseNeverExposesPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("bob", "secret1")
	require.NoError(t, err)

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.NotContains(t, fields, "password")
	require.NotContains(t, fields, "passwordHash")
	require.NotContains(t, string(raw), "secret1")
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("doomed", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))
	require.ErrorIs(t, svc.DeleteUser(user.ID), ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	svc, users := newAuthService(t)

	t.Run("no-op when unconfigured", func(t *testing.T) {
		require.NoError(t, svc.EnsureAdmin("", ""))
	})

	t.Run("seeds once", func(t *testing.T) {
		require.NoError(t, svc.EnsureAdmin("root", "seed-password"))

		admin, err := users.FindByUsername("root")
		require.NoError(t, err)
		require.NotNil(t, admin)
		require.Equal(t, models.RoleAdmin, admin.Role)

		// Second boot with the same config changes nothing.
		require.NoError(t, svc.EnsureAdmin("root", "different"))
		require.True(t, users.ValidatePassword("seed-password", admin.PasswordHash))
	})
}
