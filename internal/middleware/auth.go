package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/logger"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/pkg/contextkeys"
)

// unauthenticated writes the 401 payload the frontend router understands:
// redirect target plus the path the user was heading to, so login can
// bounce them back afterwards.
func unauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    message,
		"redirect": "/login",
		"from":     c.Request.URL.Path,
	})
}

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthenticated(c, "Authorization header missing or invalid")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			unauthenticated(c, "Invalid token")
			return
		}

		c.Set(string(contextkeys.UserIDKey), claims.UserID)
		c.Set(string(contextkeys.RoleKey), claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles gates a route group to the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(string(contextkeys.RoleKey))
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
			return
		}

		if !roleSet[models.UserRole(roleStr)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// RequireCapability gates a route group on one of the role capability
// checks, so the route layer and the service layer consult the same
// predicate.
func RequireCapability(allowed func(models.UserRole) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(string(contextkeys.RoleKey))
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok || !allowed(models.UserRole(roleStr)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// RequireMFAEnrolled blocks authenticated users who have not activated MFA.
// The profile routes are never behind this gate, so the 403 payload can
// always point the user there to finish enrollment.
func RequireMFAEnrolled(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get(string(contextkeys.UserIDKey))
		if !exists {
			unauthenticated(c, "User not authenticated")
			return
		}
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			unauthenticated(c, "User not authenticated")
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			unauthenticated(c, "User not found")
			return
		}

		if !user.MFAEnabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":        "Multi-factor authentication enrollment required",
				"mfa_required": true,
				"redirect":     "/profile",
				"from":         c.Request.URL.Path,
			})
			return
		}

		c.Next()
	}
}
