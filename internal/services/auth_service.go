package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/email"
	"toolhub_backend/internal/logger"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = time.Hour
)

type AuthService interface {
	Register(req *dto.RegisterRequest) error
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
	Me(userID string) (*dto.MeResponse, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	RequestPasswordReset(emailAddr, baseURL string) error
	ResetPassword(token, newPassword string) error
	PurgeSessions(userID string) error

	EnrollMFA(userID, issuer string) (*dto.MFAEnrollResponse, error)
	ActivateMFA(userID, code string) error
	DisableMFA(userID, code string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	emailSender email.Sender
}

func NewAuthService(userRepo repositories.UserRepository, emailSender email.Sender) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		emailSender: emailSender,
	}
}

// Register creates a self-service account. Admin accounts are never
// self-registered; they come from the invite flow or the seeding CLI.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	if req.Role != models.UserRoleOwner && req.Role != models.UserRoleObserver {
		return apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	// Lazy session janitor: each login sweeps expired refresh tokens.
	if err := s.userRepo.CleanExpiredRefreshTokens(); err != nil {
		logger.WithError(err).Warn("failed to clean expired refresh tokens")
	}

	return s.buildLoginResponse(user)
}

func (s *AuthServiceImpl) Refresh(refreshToken string) (*dto.LoginResponse, error) {
	token, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	// Rotate: the presented refresh token is spent either way.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildLoginResponse(user)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(refreshToken)
}

func (s *AuthServiceImpl) Me(userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.MeResponse{
		User:               buildUserResponse(user),
		MFAEnabled:         user.MFAEnabled,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

func (s *AuthServiceImpl) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.NewUnauthorizedError("User not found")
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Clears must_change_password: a provisioned account becomes fully
	// usable after the first change.
	if err := s.userRepo.UpdatePassword(userID, hash, false); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) RequestPasswordReset(emailAddr, baseURL string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil
	}

	resetToken := uuid.NewString()
	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(user.ID, resetToken, expiresAt); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", baseURL, resetToken)
	if err := s.emailSender.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		logger.WithError(err).Warn("failed to send password reset email", "email", user.Email)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash, false); err != nil {
		return apperrors.InternalError(err)
	}

	// Every live session is revoked on reset, on every exit path.
	if err := s.userRepo.DeleteUserRefreshTokens(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// PurgeSessions revokes every refresh token of the account. This is the
// recovery path when client-held session state is suspected corrupt.
func (s *AuthServiceImpl) PurgeSessions(userID string) error {
	return s.userRepo.DeleteUserRefreshTokens(userID)
}

// MFA enrollment

func (s *AuthServiceImpl) EnrollMFA(userID, issuer string) (*dto.MFAEnrollResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("User not found")
	}

	secret, err := auth.GenerateTOTPSecret()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.SetTOTPSecret(userID, secret); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MFAEnrollResponse{
		Secret:          secret,
		ProvisioningURI: auth.TOTPProvisioningURI(secret, user.Email, issuer),
	}, nil
}

func (s *AuthServiceImpl) ActivateMFA(userID, code string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.NewUnauthorizedError("User not found")
	}

	if user.TOTPSecret == "" {
		return apperrors.ErrInvalidOperation("auth", "MFA enrollment has not been started")
	}

	if !auth.VerifyTOTP(user.TOTPSecret, code, time.Now()) {
		return apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid verification code", 401)
	}

	if err := s.userRepo.SetMFAEnabled(userID, true); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) DisableMFA(userID, code string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.NewUnauthorizedError("User not found")
	}

	if !user.MFAEnabled {
		return nil
	}

	if !auth.VerifyTOTP(user.TOTPSecret, code, time.Now()) {
		return apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid verification code", 401)
	}

	if err := s.userRepo.SetMFAEnabled(userID, false); err != nil {
		return apperrors.InternalError(err)
	}
	return s.userRepo.SetTOTPSecret(userID, "")
}

// Helpers

func (s *AuthServiceImpl) buildLoginResponse(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         buildUserResponse(user),
	}, nil
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Role:               user.Role,
		Status:             user.Status,
		MFAEnabled:         user.MFAEnabled,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt,
	}
}
