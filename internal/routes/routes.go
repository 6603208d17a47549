package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolhub_backend/internal/handlers"
	"toolhub_backend/internal/middleware"
	"toolhub_backend/internal/repositories"
)

// RegisterRoutes registers the full HTTP API.
//
// Route guard layering, outermost first:
//   - public: auth endpoints, health
//   - authenticated: profile and session recovery, reachable before MFA
//     enrollment is finished
//   - MFA-gated: everything else; users without activated MFA get a 403
//     pointing them to /profile
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	userRepo repositories.UserRepository,
) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		appHandlers.Profile.RegisterRoutes(authed)
	}

	gated := authed.Group("")
	gated.Use(middleware.RequireMFAEnrolled(userRepo))
	{
		appHandlers.User.RegisterRoutes(gated)
		appHandlers.Tool.RegisterRoutes(gated)
		appHandlers.Request.RegisterRoutes(gated)
		appHandlers.Notification.RegisterRoutes(gated)
		appHandlers.Dashboard.RegisterRoutes(gated)
	}
}
