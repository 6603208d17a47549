package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolhub_backend/internal/mocks"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

func newToolFixture(t *testing.T) (*mocks.MockToolRepository, *mocks.MockNotificationRepository, ToolService) {
	t.Helper()
	toolRepo := mocks.NewMockToolRepository()
	notificationRepo := mocks.NewMockNotificationRepository()
	svc := NewToolService(toolRepo, NewNotificationService(notificationRepo))
	return toolRepo, notificationRepo, svc
}

func TestCreateTool_StartsPendingApproval(t *testing.T) {
	_, _, svc := newToolFixture(t)

	resp, err := svc.Create("owner-1", models.UserRoleOwner, &dto.CreateToolRequest{Name: "grafana"})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, resp.ApprovalStatus)
	assert.Equal(t, "owner-1", resp.OwnerID)
}

func TestCreateTool_ObserverForbidden(t *testing.T) {
	_, _, svc := newToolFixture(t)

	_, err := svc.Create("watcher-1", models.UserRoleObserver, &dto.CreateToolRequest{Name: "grafana"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestSetApprovalStatus_AdminOnly(t *testing.T) {
	toolRepo, notificationRepo, svc := newToolFixture(t)
	tool := toolRepo.Add(&models.Tool{Name: "grafana", OwnerID: "owner-1", ApprovalStatus: models.ApprovalStatusPending})

	_, err := svc.SetApprovalStatus(models.UserRoleOwner, tool.ID, models.ApprovalStatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	resp, err := svc.SetApprovalStatus(models.UserRoleAdmin, tool.ID, models.ApprovalStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, resp.ApprovalStatus)

	// The owner is notified of the decision.
	count, err := notificationRepo.UnreadCount("owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSetApprovalStatus_NoopWhenUnchanged(t *testing.T) {
	toolRepo, notificationRepo, svc := newToolFixture(t)
	tool := toolRepo.Add(&models.Tool{Name: "grafana", OwnerID: "owner-1", ApprovalStatus: models.ApprovalStatusApproved})

	resp, err := svc.SetApprovalStatus(models.UserRoleAdmin, tool.ID, models.ApprovalStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, resp.ApprovalStatus)

	count, err := notificationRepo.UnreadCount("owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUpdateTool_OwnerOrAdmin(t *testing.T) {
	toolRepo, _, svc := newToolFixture(t)
	tool := toolRepo.Add(&models.Tool{Name: "grafana", OwnerID: "owner-1"})

	newName := "grafana oss"
	_, err := svc.Update("intruder", models.UserRoleOwner, tool.ID, &dto.UpdateToolRequest{Name: &newName})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	resp, err := svc.Update("owner-1", models.UserRoleOwner, tool.ID, &dto.UpdateToolRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "grafana oss", resp.Name)

	adminName := "grafana enterprise"
	resp, err = svc.Update("admin-1", models.UserRoleAdmin, tool.ID, &dto.UpdateToolRequest{Name: &adminName})
	require.NoError(t, err)
	assert.Equal(t, "grafana enterprise", resp.Name)
}

func TestUpdateTool_PartialUpdate(t *testing.T) {
	toolRepo, _, svc := newToolFixture(t)
	tool := toolRepo.Add(&models.Tool{Name: "grafana", Description: "dashboards", OwnerID: "owner-1"})

	desc := "observability dashboards"
	resp, err := svc.Update("owner-1", models.UserRoleOwner, tool.ID, &dto.UpdateToolRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "grafana", resp.Name)
	assert.Equal(t, "observability dashboards", resp.Description)
}

func TestDeleteTool_OwnerOrAdmin(t *testing.T) {
	toolRepo, _, svc := newToolFixture(t)
	tool := toolRepo.Add(&models.Tool{Name: "grafana", OwnerID: "owner-1"})

	err := svc.Delete("intruder", models.UserRoleOwner, tool.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, svc.Delete("owner-1", models.UserRoleOwner, tool.ID))
	assert.Empty(t, toolRepo.Tools)
}

func TestGetTool_NotFound(t *testing.T) {
	_, _, svc := newToolFixture(t)

	_, err := svc.GetByID("missing")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
