package dto

import (
	"time"

	"toolhub_backend/internal/models"
)

type UserResponse struct {
	ID                 string            `json:"id"`
	Email              string            `json:"email"`
	Name               string            `json:"name"`
	Role               models.UserRole   `json:"role"`
	Status             models.UserStatus `json:"status"`
	MFAEnabled         bool              `json:"mfa_enabled"`
	MustChangePassword bool              `json:"must_change_password"`
	CreatedAt          time.Time         `json:"created_at"`
}

type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type UserFilter struct {
	Role     models.UserRole   `form:"role" validate:"omitempty,is-user-role"`
	Status   models.UserStatus `form:"status"`
	Search   string            `form:"search"`
	Page     int               `form:"page" validate:"omitempty,min=1"`
	PageSize int               `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// InviteUserRequest mirrors the invite payload {email, name, role}.
type InviteUserRequest struct {
	Email string          `json:"email" validate:"required,email"`
	Name  string          `json:"name" validate:"required,min=2,max=100"`
	Role  models.UserRole `json:"role" validate:"required,is-user-role"`
}

type UpdateUserRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required,is-user-role"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type AdminResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
