package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/utils"
)

func newAuthService(t *testing.T) (AuthService, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	return NewAuthService(repo, utils.NewJWTUtil("test-secret", 1)), repo
}

func registerUser(t *testing.T, svc AuthService, name, email, password string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService(t)

	user := registerUser(t, svc, "Alice", "a@x.com", "secret1")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.Equal(t, model.DefaultNotificationSettings(), user.Notifications)
	assert.Equal(t, model.DefaultPrivacySettings(), user.Privacy)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	registerUser(t, svc, "Alice", "a@x.com", "secret1")

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Imposter",
		Email:    "a@x.com",
		Password: "secret2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService(t)
	registered := registerUser(t, svc, "Alice", "a@x.com", "secret1")

	user, token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := utils.NewJWTUtil("test-secret", 1).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	registerUser(t, svc, "Alice", "a@x.com", "secret1")

	_, _, err := svc.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile_EmailConflict(t *testing.T) {
	svc, _ := newAuthService(t)
	registerUser(t, svc, "Alice", "a@x.com", "secret1")
	bob := registerUser(t, svc, "Bob", "b@x.com", "secret2")

	taken := "a@x.com"
	_, err := svc.UpdateProfile(context.Background(), bob.ID, model.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// keeping your own email is not a conflict
	own := "b@x.com"
	newName := "Robert"
	updated, err := svc.UpdateProfile(context.Background(), bob.ID, model.UpdateProfileRequest{Name: &newName, Email: &own})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
}

func TestAuthService_UpdateNotifications_PartialMerge(t *testing.T) {
	svc, repo := newAuthService(t)
	user := registerUser(t, svc, "Alice", "a@x.com", "secret1")

	off := false
	updated, err := svc.UpdateNotifications(context.Background(), user.ID, model.UpdateNotificationsRequest{
		Promotions: &off,
	})
	require.NoError(t, err)
	assert.False(t, updated.Notifications.Promotions)
	assert.True(t, updated.Notifications.OrderUpdates)
	assert.True(t, updated.Notifications.SecurityAlerts)

	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Notifications, stored.Notifications)
}

func TestAuthService_UpdatePrivacy_PartialMerge(t *testing.T) {
	svc, _ := newAuthService(t)
	user := registerUser(t, svc, "Alice", "a@x.com", "secret1")

	visibility := model.VisibilityPrivate
	on := true
	updated, err := svc.UpdatePrivacy(context.Background(), user.ID, model.UpdatePrivacyRequest{
		ProfileVisibility: &visibility,
		ThirdPartySharing: &on,
	})
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityPrivate, updated.Privacy.ProfileVisibility)
	assert.True(t, updated.Privacy.ThirdPartySharing)
	assert.True(t, updated.Privacy.DataCollection)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	user := registerUser(t, svc, "Alice", "a@x.com", "secret1")

	err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "secret1", "newsecret"))

	_, _, err = svc.Login(context.Background(), "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "a@x.com", "newsecret")
	assert.NoError(t, err)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
