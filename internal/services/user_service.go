package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/email"
	"toolhub_backend/internal/logger"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

type UserService interface {
	GetByID(id string) (*dto.UserResponse, error)
	List(filter *dto.UserFilter) (*dto.UserListResponse, error)
	Invite(inviterID string, req *dto.InviteUserRequest) (*dto.UserResponse, error)
	UpdateRole(actorID, userID string, role models.UserRole) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	Deactivate(actorID, userID string) error
	Reactivate(userID string) (*dto.UserResponse, error)
	AdminResetPassword(actorID, userID, newPassword string) error
}

type UserServiceImpl struct {
	userRepo            repositories.UserRepository
	notificationService NotificationService
	emailSender         email.Sender
}

func NewUserService(
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	emailSender email.Sender,
) UserService {
	return &UserServiceImpl{
		userRepo:            userRepo,
		notificationService: notificationService,
		emailSender:         emailSender,
	}
}

func (s *UserServiceImpl) GetByID(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) List(filter *dto.UserFilter) (*dto.UserListResponse, error) {
	page, pageSize := normalizePagination(filter.Page, filter.PageSize)

	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:     filter.Role,
		Status:   filter.Status,
		Search:   filter.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, buildUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

// Invite provisions an account with a generated temporary password and
// emails the credentials. The account carries must_change_password until
// the invitee sets their own.
func (s *UserServiceImpl) Invite(inviterID string, req *dto.InviteUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidateRole(req.Role); err != nil {
		return nil, apperrors.ErrInvalidUserRole
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:              req.Email,
		Name:               req.Name,
		PasswordHash:       hash,
		Role:               req.Role,
		Status:             models.UserStatusActive,
		MustChangePassword: true,
		InvitedBy:          inviterID,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.emailSender.SendInvite(user.Email, user.Name, string(user.Role), tempPassword); err != nil {
		logger.WithError(err).Warn("failed to send invite email", "email", user.Email)
	}

	notifyErr := s.notificationService.Notify(
		user.ID,
		repositories.NotificationTypeUserInvited,
		"Welcome to ToolHub",
		fmt.Sprintf("Your account was created with the %s role. Change your password on first login.", user.Role),
		map[string]interface{}{"invited_by": inviterID},
	)
	if notifyErr != nil {
		logger.WithError(notifyErr).Warn("failed to record invite notification", "user_id", user.ID)
	}

	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateRole(actorID, userID string, role models.UserRole) (*dto.UserResponse, error) {
	if actorID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}
	if err := auth.ValidateRole(role); err != nil {
		return nil, apperrors.ErrInvalidUserRole
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role != role {
		if err := s.userRepo.UpdateRole(userID, role); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Role = role
	}

	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	user.Name = req.Name
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildUserResponse(user), nil
}

// Deactivate disables the account, revokes its sessions, and tells the
// user by email since they can no longer sign in to read a notification.
func (s *UserServiceImpl) Deactivate(actorID, userID string) error {
	if actorID == userID {
		return apperrors.ErrCannotModifySelf
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateStatus(userID, models.UserStatusDeactivated); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}

	mailErr := s.emailSender.SendNotification(
		user.Email,
		"Your ToolHub account was deactivated",
		"An administrator deactivated your ToolHub account. Contact an administrator if you believe this is a mistake.",
	)
	if mailErr != nil {
		logger.WithError(mailErr).Warn("failed to send deactivation email", "email", user.Email)
	}
	return nil
}

func (s *UserServiceImpl) Reactivate(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateStatus(userID, models.UserStatusActive); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.Status = models.UserStatusActive

	return buildUserResponse(user), nil
}

// AdminResetPassword force-sets a password and flags the account for a
// mandatory change on next login. Sessions are revoked.
func (s *UserServiceImpl) AdminResetPassword(actorID, userID, newPassword string) error {
	if actorID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(userID, hash, true); err != nil {
		return apperrors.InternalError(err)
	}
	return s.userRepo.DeleteUserRefreshTokens(userID)
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
