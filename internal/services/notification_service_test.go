package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolhub_backend/internal/mocks"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

func newNotificationFixture(t *testing.T) (*mocks.MockNotificationRepository, NotificationService) {
	t.Helper()
	repo := mocks.NewMockNotificationRepository()
	return repo, NewNotificationService(repo)
}

func TestMarkAsRead_Idempotent(t *testing.T) {
	repo, svc := newNotificationFixture(t)
	notification := repo.Add(&models.Notification{
		UserID: "user-1",
		Type:   repositories.NotificationTypeRequestStatus,
		Title:  "Request status updated",
	})

	require.NoError(t, svc.MarkAsRead("user-1", notification.ID))
	assert.Equal(t, 1, repo.MarkAsReadCalls)

	// A second mark on an already-read notification succeeds without
	// touching the store again.
	require.NoError(t, svc.MarkAsRead("user-1", notification.ID))
	require.NoError(t, svc.MarkAsRead("user-1", notification.ID))
	assert.Equal(t, 1, repo.MarkAsReadCalls)

	stored, err := repo.FindForUser("user-1", notification.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
	assert.NotNil(t, stored.ReadAt)
}

func TestMarkAsRead_OtherUsersNotification(t *testing.T) {
	repo, svc := newNotificationFixture(t)
	notification := repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "x"})

	err := svc.MarkAsRead("user-2", notification.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Equal(t, 0, repo.MarkAsReadCalls)
}

func TestMarkManyAsRead_OneMutationPerUnread(t *testing.T) {
	repo, svc := newNotificationFixture(t)

	unread1 := repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "a"})
	unread2 := repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "b"})
	read := repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "c", IsRead: true})

	ids := []string{unread1.ID, read.ID, unread2.ID, "missing-id"}
	require.NoError(t, svc.MarkManyAsRead("user-1", ids))

	// Exactly one mutation per notification that was actually unread.
	assert.Equal(t, 2, repo.MarkAsReadCalls)

	count, err := repo.UnreadCount("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkManyAsRead_EmptySelection(t *testing.T) {
	_, svc := newNotificationFixture(t)

	err := svc.MarkManyAsRead("user-1", nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptySelection)
}

func TestRecent_ScopedToUserAndCapped(t *testing.T) {
	repo, svc := newNotificationFixture(t)

	for i := 0; i < 8; i++ {
		repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "mine"})
	}
	repo.Add(&models.Notification{UserID: "user-2", Type: "request_status", Title: "theirs"})

	recent, err := svc.Recent("user-1")
	require.NoError(t, err)
	assert.Len(t, recent, 5)
	for _, n := range recent {
		assert.Equal(t, "user-1", n.UserID)
	}
}

func TestList_UnreadOnlyFilter(t *testing.T) {
	repo, svc := newNotificationFixture(t)

	repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "a"})
	repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "b", IsRead: true})

	resp, err := svc.List("user-1", &dto.NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.False(t, resp.Notifications[0].IsRead)
	assert.Equal(t, int64(1), resp.Total)
}

func TestUnreadCount(t *testing.T) {
	repo, svc := newNotificationFixture(t)

	repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "a"})
	repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "b"})
	repo.Add(&models.Notification{UserID: "user-1", Type: "request_status", Title: "c", IsRead: true})
	repo.Add(&models.Notification{UserID: "user-2", Type: "request_status", Title: "d"})

	resp, err := svc.UnreadCount("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)
}

func TestNotify_StoresStructuredData(t *testing.T) {
	_, svc := newNotificationFixture(t)

	err := svc.Notify("user-1", repositories.NotificationTypeToolApproval,
		"Tool approval updated", "Your tool is approved",
		map[string]interface{}{"tool_id": "tool-1"})
	require.NoError(t, err)

	resp, err := svc.List("user-1", &dto.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "tool-1", resp.Notifications[0].Data["tool_id"])
}

func TestClear_ScopedToUser(t *testing.T) {
	repo, svc := newNotificationFixture(t)
	repo.Add(&models.Notification{UserID: "user-1", Type: repositories.NotificationTypeRequestStatus, Title: "a"})
	repo.Add(&models.Notification{UserID: "user-1", Type: repositories.NotificationTypeRequestStatus, Title: "b"})
	other := repo.Add(&models.Notification{UserID: "user-2", Type: repositories.NotificationTypeRequestStatus, Title: "c"})

	require.NoError(t, svc.Clear("user-1"))

	resp, err := svc.List("user-1", &dto.NotificationCriteria{})
	require.NoError(t, err)
	assert.Empty(t, resp.Notifications)

	// Another user's rows are untouched.
	_, err = repo.FindForUser("user-2", other.ID)
	assert.NoError(t, err)
}

func TestClearRead_KeepsUnreadAndRecent(t *testing.T) {
	repo, svc := newNotificationFixture(t)

	oldRead := repo.Add(&models.Notification{
		BaseModel: models.BaseModel{CreatedAt: time.Now().AddDate(0, 0, -60)},
		UserID:    "user-1",
		Type:      repositories.NotificationTypeRequestStatus,
		Title:     "old read",
		IsRead:    true,
	})
	freshRead := repo.Add(&models.Notification{
		UserID: "user-1",
		Type:   repositories.NotificationTypeRequestStatus,
		Title:  "fresh read",
		IsRead: true,
	})
	oldUnread := repo.Add(&models.Notification{
		BaseModel: models.BaseModel{CreatedAt: time.Now().AddDate(0, 0, -60)},
		UserID:    "user-1",
		Type:      repositories.NotificationTypeRequestStatus,
		Title:     "old unread",
	})

	require.NoError(t, svc.ClearRead("user-1", time.Now().AddDate(0, 0, -30)))

	_, err := repo.FindForUser("user-1", oldRead.ID)
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)
	_, err = repo.FindForUser("user-1", freshRead.ID)
	assert.NoError(t, err)
	_, err = repo.FindForUser("user-1", oldUnread.ID)
	assert.NoError(t, err)
}
