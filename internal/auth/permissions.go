package auth

import (
	"errors"

	"toolhub_backend/internal/models"
)

// Role capabilities. Tool approval-status transitions and user administration
// are admin capabilities; owners submit and manage their own tools and
// requests; observers are read-only plus their own requests.

// CanApproveTools reports whether the role may transition a tool's
// approval status.
func CanApproveTools(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// CanSubmitTools reports whether the role may create tool records.
func CanSubmitTools(role models.UserRole) bool {
	switch role {
	case models.UserRoleAdmin, models.UserRoleOwner:
		return true
	case models.UserRoleObserver:
		return false
	}
	return false
}

// CanBulkMutateRequests reports whether the role may run bulk status
// changes and bulk deletes over request selections.
func CanBulkMutateRequests(role models.UserRole) bool {
	switch role {
	case models.UserRoleAdmin, models.UserRoleOwner:
		return true
	case models.UserRoleObserver:
		return false
	}
	return false
}

// CanAdministerUsers reports whether the role may invite, list, and mutate
// other accounts.
func CanAdministerUsers(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// ValidateRole rejects roles outside the closed set.
func ValidateRole(role models.UserRole) error {
	if !models.ValidUserRole(role) {
		return errors.New("invalid role")
	}
	return nil
}
