package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolhub_backend/internal/mocks"
	"toolhub_backend/internal/models"
)

func TestMetrics_AggregatesCounts(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	toolRepo := mocks.NewMockToolRepository()
	requestRepo := mocks.NewMockRequestRepository()
	notificationRepo := mocks.NewMockNotificationRepository()
	svc := NewDashboardService(requestRepo, toolRepo, notificationRepo, userRepo)

	admin := userRepo.Add(&models.User{Email: "admin@example.com", Role: models.UserRoleAdmin, Status: models.UserStatusActive})
	userRepo.Add(&models.User{Email: "owner-1@example.com", Role: models.UserRoleOwner, Status: models.UserStatusActive})
	userRepo.Add(&models.User{Email: "owner-2@example.com", Role: models.UserRoleOwner, Status: models.UserStatusActive})

	toolRepo.Add(&models.Tool{Name: "grafana", ApprovalStatus: models.ApprovalStatusApproved})
	toolRepo.Add(&models.Tool{Name: "sentry", ApprovalStatus: models.ApprovalStatusPending})

	requestRepo.Add(&models.Request{RequesterID: admin.ID, Status: models.RequestStatusPending})
	requestRepo.Add(&models.Request{RequesterID: admin.ID, Status: models.RequestStatusPending})
	requestRepo.Add(&models.Request{RequesterID: admin.ID, Status: models.RequestStatusCompleted})

	notificationRepo.Add(&models.Notification{UserID: admin.ID, Title: "n1"})
	notificationRepo.Add(&models.Notification{UserID: admin.ID, Title: "n2", IsRead: true})
	notificationRepo.Add(&models.Notification{UserID: "someone-else", Title: "n3"})

	metrics, err := svc.Metrics(admin.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), metrics.RequestsByStatus["pending"])
	assert.Equal(t, int64(1), metrics.RequestsByStatus["completed"])
	assert.Equal(t, int64(1), metrics.ToolsByApproval["approved"])
	assert.Equal(t, int64(1), metrics.ToolsByApproval["pending"])
	assert.Equal(t, int64(1), metrics.UsersByRole["admin"])
	assert.Equal(t, int64(2), metrics.UsersByRole["owner"])
	assert.Equal(t, int64(0), metrics.UsersByRole["observer"])
	// Unread count is scoped to the caller.
	assert.Equal(t, int64(1), metrics.UnreadNotifications)
}
