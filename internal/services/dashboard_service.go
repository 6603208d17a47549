package services

import (
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

type DashboardService interface {
	Metrics(userID string) (*dto.DashboardMetrics, error)
}

type DashboardServiceImpl struct {
	requestRepo      repositories.RequestRepository
	toolRepo         repositories.ToolRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewDashboardService(
	requestRepo repositories.RequestRepository,
	toolRepo repositories.ToolRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) DashboardService {
	return &DashboardServiceImpl{
		requestRepo:      requestRepo,
		toolRepo:         toolRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *DashboardServiceImpl) Metrics(userID string) (*dto.DashboardMetrics, error) {
	requestsByStatus, err := s.requestRepo.CountByStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	toolsByApproval, err := s.toolRepo.CountByApprovalStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.UnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics := &dto.DashboardMetrics{
		RequestsByStatus:    make(map[string]int64, len(requestsByStatus)),
		ToolsByApproval:     make(map[string]int64, len(toolsByApproval)),
		UsersByRole:         make(map[string]int64, 3),
		UnreadNotifications: unread,
	}
	for status, count := range requestsByStatus {
		metrics.RequestsByStatus[string(status)] = count
	}
	for status, count := range toolsByApproval {
		metrics.ToolsByApproval[string(status)] = count
	}

	roles := []models.UserRole{models.UserRoleAdmin, models.UserRoleOwner, models.UserRoleObserver}
	for _, role := range roles {
		count, err := s.userRepo.CountByRole(role)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		metrics.UsersByRole[string(role)] = count
	}
	return metrics, nil
}
