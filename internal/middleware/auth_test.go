package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/mocks"
	"toolhub_backend/internal/models"
)

func setupGuardedRouter(t *testing.T, userRepo *mocks.MockUserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.Configure("test-secret", 60)

	router := gin.New()

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }

	authed := router.Group("", AuthMiddleware())
	authed.GET("/profile/me", ok)

	gated := authed.Group("", RequireMFAEnrolled(userRepo))
	gated.GET("/dashboard", ok)
	gated.GET("/admin", RequireRoles(models.UserRoleAdmin), ok)
	gated.GET("/users", RequireCapability(auth.CanAdministerUsers), ok)

	return router
}

func doGet(t *testing.T, router *gin.Engine, path, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestRouteGuard_Unauthenticated(t *testing.T) {
	router := setupGuardedRouter(t, mocks.NewMockUserRepository())

	w, body := doGet(t, router, "/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, "/dashboard", body["from"])
}

func TestRouteGuard_BadToken(t *testing.T) {
	router := setupGuardedRouter(t, mocks.NewMockUserRepository())

	w, body := doGet(t, router, "/dashboard", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", body["redirect"])
}

func TestRouteGuard_AuthenticatedWithoutMFA(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	user := userRepo.Add(&models.User{Email: "u@example.com", Role: models.UserRoleOwner, Status: models.UserStatusActive})
	router := setupGuardedRouter(t, userRepo)

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	// Gated routes bounce to the profile page for enrollment.
	w, body := doGet(t, router, "/dashboard", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, true, body["mfa_required"])
	assert.Equal(t, "/profile", body["redirect"])
	assert.Equal(t, "/dashboard", body["from"])

	// Profile routes stay reachable, otherwise the user could never enroll.
	w, _ = doGet(t, router, "/profile/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouteGuard_EnrolledUserPasses(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	user := userRepo.Add(&models.User{Email: "u@example.com", Role: models.UserRoleOwner, Status: models.UserStatusActive, MFAEnabled: true})
	router := setupGuardedRouter(t, userRepo)

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	w, _ := doGet(t, router, "/dashboard", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouteGuard_RoleGate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	owner := userRepo.Add(&models.User{Email: "o@example.com", Role: models.UserRoleOwner, Status: models.UserStatusActive, MFAEnabled: true})
	admin := userRepo.Add(&models.User{Email: "a@example.com", Role: models.UserRoleAdmin, Status: models.UserStatusActive, MFAEnabled: true})
	router := setupGuardedRouter(t, userRepo)

	ownerToken, err := auth.GenerateToken(owner.ID, string(owner.Role))
	require.NoError(t, err)
	adminToken, err := auth.GenerateToken(admin.ID, string(admin.Role))
	require.NoError(t, err)

	w, _ := doGet(t, router, "/admin", ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doGet(t, router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouteGuard_CapabilityGate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	owner := userRepo.Add(&models.User{Email: "o@example.com", Role: models.UserRoleOwner, Status: models.UserStatusActive, MFAEnabled: true})
	admin := userRepo.Add(&models.User{Email: "a@example.com", Role: models.UserRoleAdmin, Status: models.UserStatusActive, MFAEnabled: true})
	router := setupGuardedRouter(t, userRepo)

	ownerToken, err := auth.GenerateToken(owner.ID, string(owner.Role))
	require.NoError(t, err)
	adminToken, err := auth.GenerateToken(admin.ID, string(admin.Role))
	require.NoError(t, err)

	w, _ := doGet(t, router, "/users", ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doGet(t, router, "/users", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouteGuard_DeletedUserBlocked(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	router := setupGuardedRouter(t, userRepo)

	// Token is valid but the account no longer exists.
	token, err := auth.GenerateToken("ghost-id", string(models.UserRoleOwner))
	require.NoError(t, err)

	w, _ := doGet(t, router, "/dashboard", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
