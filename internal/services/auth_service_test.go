package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/mocks"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

func newAuthFixture(t *testing.T) (*mocks.MockUserRepository, *mocks.MockEmailSender, AuthService) {
	t.Helper()
	auth.Configure("test-secret", 60)
	userRepo := mocks.NewMockUserRepository()
	emailSender := mocks.NewMockEmailSender()
	return userRepo, emailSender, NewAuthService(userRepo, emailSender)
}

func addUser(t *testing.T, repo *mocks.MockUserRepository, email, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return repo.Add(&models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
		Status:       models.UserStatusActive,
	})
}

func TestLogin_Success(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	resp, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "owner@example.com", resp.User.Email)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(models.UserRoleOwner), claims.Role)
}

func TestLogin_SweepsExpiredSessions(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	require.NoError(t, userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	_, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = userRepo.FindRefreshToken("stale")
	assert.Error(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	_, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "nope nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	_, _, svc := newAuthFixture(t)

	_, err := svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)
	require.NoError(t, userRepo.UpdateStatus(user.ID, models.UserStatusDeactivated))

	_, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	login, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The spent token cannot be replayed.
	_, err = svc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	require.NoError(t, userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	_, err := svc.Refresh("stale-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPurgeSessions_RevokesAll(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "password123"})
		require.NoError(t, err)
	}
	count, err := userRepo.CountUserRefreshTokens(user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	require.NoError(t, svc.PurgeSessions(user.ID))

	count, err = userRepo.CountUserRefreshTokens(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestChangePassword_ClearsMustChange(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)
	userRepo.Users[user.ID].MustChangePassword = true

	require.NoError(t, svc.ChangePassword(user.ID, "password123", "a new password"))

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.MustChangePassword)
	assert.True(t, auth.CheckPasswordHash("a new password", stored.PasswordHash))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	err := svc.ChangePassword(user.ID, "not the password", "a new password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	userRepo, emailSender, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	// Sessions exist before the reset.
	_, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset("owner@example.com", "http://localhost:8080"))
	require.Len(t, emailSender.PasswordResets, 1)

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetToken)
	assert.Contains(t, emailSender.PasswordResets[0].ResetURL, stored.ResetToken)

	require.NoError(t, svc.ResetPassword(stored.ResetToken, "a new password"))

	// New password works, sessions are revoked, token is spent.
	_, err = svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "a new password"})
	require.NoError(t, err)

	count, err := userRepo.CountUserRefreshTokens(user.ID)
	require.NoError(t, err)
	// Only the session from the fresh login above remains.
	assert.Equal(t, int64(1), count)

	err = svc.ResetPassword(stored.ResetToken, "yet another password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	_, emailSender, svc := newAuthFixture(t)

	require.NoError(t, svc.RequestPasswordReset("ghost@example.com", "http://localhost:8080"))
	assert.Empty(t, emailSender.PasswordResets)
}

func TestMFALifecycle(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	enroll, err := svc.EnrollMFA(user.ID, "ToolHub")
	require.NoError(t, err)
	require.NotEmpty(t, enroll.Secret)
	assert.Contains(t, enroll.ProvisioningURI, "otpauth://totp/")

	// Activation requires a valid code.
	err = svc.ActivateMFA(user.ID, "000000")
	require.Error(t, err)
	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.MFAEnabled)

	code, err := auth.TOTPCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.ActivateMFA(user.ID, code))

	stored, err = userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.MFAEnabled)

	// Disable also requires a valid code and clears the secret.
	code, err = auth.TOTPCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.DisableMFA(user.ID, code))

	stored, err = userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.MFAEnabled)
	assert.Empty(t, stored.TOTPSecret)
}

func TestEnrollMFA_ReenrollResetsActivation(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	user := addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	first, err := svc.EnrollMFA(user.ID, "ToolHub")
	require.NoError(t, err)
	code, err := auth.TOTPCode(first.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.ActivateMFA(user.ID, code))

	// Starting enrollment again drops the activated state until the new
	// secret is verified.
	second, err := svc.EnrollMFA(user.ID, "ToolHub")
	require.NoError(t, err)
	assert.NotEqual(t, first.Secret, second.Secret)

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.MFAEnabled)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	_, _, svc := newAuthFixture(t)

	err := svc.Register(&dto.RegisterRequest{
		Email:    "boss@example.com",
		Name:     "Boss",
		Password: "password123",
		Role:     models.UserRoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	addUser(t, userRepo, "owner@example.com", "password123", models.UserRoleOwner)

	err := svc.Register(&dto.RegisterRequest{
		Email:    "owner@example.com",
		Name:     "Other",
		Password: "password123",
		Role:     models.UserRoleOwner,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}
