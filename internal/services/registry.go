package services

import (
	"toolhub_backend/internal/email"
	"toolhub_backend/internal/repositories"
)

// ServiceContainer wires every service over the shared repository set.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Tool         ToolService
	Request      RequestService
	Notification NotificationService
	Dashboard    DashboardService
}

func NewServiceContainer(
	userRepo repositories.UserRepository,
	toolRepo repositories.ToolRepository,
	requestRepo repositories.RequestRepository,
	notificationRepo repositories.NotificationRepository,
	emailSender email.Sender,
) *ServiceContainer {
	notificationService := NewNotificationService(notificationRepo)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, emailSender),
		User:         NewUserService(userRepo, notificationService, emailSender),
		Tool:         NewToolService(toolRepo, notificationService),
		Request:      NewRequestService(requestRepo, notificationService),
		Notification: notificationService,
		Dashboard:    NewDashboardService(requestRepo, toolRepo, notificationRepo, userRepo),
	}
}
