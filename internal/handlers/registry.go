package handlers

import (
	"toolhub_backend/internal/services"
	"toolhub_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	User         *UserHandler
	Tool         *ToolHandler
	Request      *RequestHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator, baseURL string) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.Auth, baseURL),
		Profile:      NewProfileHandler(base, sc.Auth, sc.User),
		User:         NewUserHandler(base, sc.User),
		Tool:         NewToolHandler(base, sc.Tool),
		Request:      NewRequestHandler(base, sc.Request),
		Notification: NewNotificationHandler(base, sc.Notification),
		Dashboard:    NewDashboardHandler(base, sc.Dashboard),
	}
}
