package services

import (
	"encoding/json"
	"time"

	"toolhub_backend/internal/logger"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

// recentLimit bounds the dropdown feed under the bell icon.
const recentLimit = 5

type NotificationService interface {
	List(userID string, criteria *dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	Recent(userID string) ([]*dto.NotificationResponse, error)
	UnreadCount(userID string) (*dto.UnreadCountResponse, error)
	MarkAsRead(userID, notificationID string) error
	MarkManyAsRead(userID string, notificationIDs []string) error
	MarkAllAsRead(userID string) error
	Delete(userID, notificationID string) error
	Clear(userID string) error
	ClearRead(userID string, olderThan time.Time) error

	Notify(userID, notificationType, title, message string, data map[string]interface{}) error
	NotifyMany(userIDs []string, notificationType, title, message string, data map[string]interface{}) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) List(userID string, criteria *dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	page, pageSize := normalizePagination(criteria.Page, criteria.PageSize)

	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, repositories.NotificationCriteria{
		UnreadOnly: criteria.UnreadOnly,
		Type:       criteria.Type,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    calculateTotalPages(total, pageSize),
	}, nil
}

// Recent returns the newest notifications of the calling user only. The
// scoping happens in the repository query, so a response can never carry
// another user's rows regardless of how the caller renders it.
func (s *NotificationServiceImpl) Recent(userID string) ([]*dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindRecent(userID, recentLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}
	return responses, nil
}

func (s *NotificationServiceImpl) UnreadCount(userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.UnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

// MarkAsRead is idempotent: marking an already-read notification succeeds
// without issuing a mutation, so repeated clicks on the same item cannot
// touch the store twice.
func (s *NotificationServiceImpl) MarkAsRead(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindForUser(userID, notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if notification.IsRead {
		return nil
	}

	if err := s.notificationRepo.MarkAsRead(userID, notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// MarkManyAsRead processes the ids strictly in order, one mutation per
// still-unread notification. Ids that are already read or missing are
// skipped rather than failing the batch.
func (s *NotificationServiceImpl) MarkManyAsRead(userID string, notificationIDs []string) error {
	if len(notificationIDs) == 0 {
		return apperrors.ErrEmptySelection
	}

	for _, id := range notificationIDs {
		notification, err := s.notificationRepo.FindForUser(userID, id)
		if err != nil {
			if apperrors.Is(err, repositories.ErrNotificationNotFound) {
				continue
			}
			return apperrors.InternalError(err)
		}
		if notification.IsRead {
			continue
		}
		if err := s.notificationRepo.MarkAsRead(userID, id); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) Delete(userID, notificationID string) error {
	if err := s.notificationRepo.Delete(userID, notificationID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Clear drops every notification of the caller.
func (s *NotificationServiceImpl) Clear(userID string) error {
	if err := s.notificationRepo.DeleteUserNotifications(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ClearRead drops the caller's read notifications created before the
// cutoff. Unread rows are never touched.
func (s *NotificationServiceImpl) ClearRead(userID string, olderThan time.Time) error {
	if err := s.notificationRepo.DeleteReadBefore(userID, olderThan); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Notify stores a notification for one user. Delivery failures are logged
// and swallowed by callers that treat notifications as best effort.
func (s *NotificationServiceImpl) Notify(userID, notificationType, title, message string, data map[string]interface{}) error {
	notification, err := newNotification(userID, notificationType, title, message, data)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) NotifyMany(userIDs []string, notificationType, title, message string, data map[string]interface{}) error {
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notification, err := newNotification(userID, notificationType, title, message, data)
		if err != nil {
			logger.WithError(err).Warn("skipping malformed notification", "user_id", userID)
			continue
		}
		notifications = append(notifications, notification)
	}

	if err := s.notificationRepo.CreateBulk(notifications); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func newNotification(userID, notificationType, title, message string, data map[string]interface{}) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		notification.Data = raw
	}
	return notification, nil
}

func buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	response := &dto.NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}
	if len(notification.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(notification.Data, &data); err == nil {
			response.Data = data
		}
	}
	return response
}
