package validator

import (
	"github.com/go-playground/validator/v10"

	"toolhub_backend/internal/models"
)

// Domain rules keep role and status strings inside their closed sets at the
// binding boundary, so typo-class values never reach the services.

func registerCustomRules(v *validator.Validate) {
	v.RegisterValidation("is-user-role", isUserRole)
	v.RegisterValidation("is-request-status", isRequestStatus)
	v.RegisterValidation("is-approval-status", isApprovalStatus)
}

func isUserRole(fl validator.FieldLevel) bool {
	return models.ValidUserRole(models.UserRole(fl.Field().String()))
}

func isRequestStatus(fl validator.FieldLevel) bool {
	switch models.RequestStatus(fl.Field().String()) {
	case models.RequestStatusPending, models.RequestStatusInProgress, models.RequestStatusCompleted:
		return true
	}
	return false
}

func isApprovalStatus(fl validator.FieldLevel) bool {
	switch models.ApprovalStatus(fl.Field().String()) {
	case models.ApprovalStatusPending, models.ApprovalStatusApproved, models.ApprovalStatusRejected:
		return true
	}
	return false
}
