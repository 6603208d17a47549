package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toolhub_backend/internal/models"
)

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, CanApproveTools(models.UserRoleAdmin))
	assert.False(t, CanApproveTools(models.UserRoleOwner))
	assert.False(t, CanApproveTools(models.UserRoleObserver))

	assert.True(t, CanSubmitTools(models.UserRoleAdmin))
	assert.True(t, CanSubmitTools(models.UserRoleOwner))
	assert.False(t, CanSubmitTools(models.UserRoleObserver))

	assert.True(t, CanBulkMutateRequests(models.UserRoleAdmin))
	assert.True(t, CanBulkMutateRequests(models.UserRoleOwner))
	assert.False(t, CanBulkMutateRequests(models.UserRoleObserver))

	assert.True(t, CanAdministerUsers(models.UserRoleAdmin))
	assert.False(t, CanAdministerUsers(models.UserRoleOwner))
	assert.False(t, CanAdministerUsers(models.UserRoleObserver))
}

func TestRoleCapabilities_UnknownRole(t *testing.T) {
	unknown := models.UserRole("superuser")

	assert.False(t, CanApproveTools(unknown))
	assert.False(t, CanSubmitTools(unknown))
	assert.False(t, CanBulkMutateRequests(unknown))
	assert.False(t, CanAdministerUsers(unknown))
	assert.Error(t, ValidateRole(unknown))
}
