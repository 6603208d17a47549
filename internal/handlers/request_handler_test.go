package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolhub_backend/internal/mocks"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/services"
	"toolhub_backend/internal/validator"
	"toolhub_backend/pkg/contextkeys"
)

// asUser injects an authenticated identity the way the auth middleware
// would, without minting real tokens.
func asUser(userID string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.UserIDKey), userID)
		c.Set(string(contextkeys.RoleKey), string(role))
		c.Next()
	}
}

func setupRequestRouter(t *testing.T, userID string, role models.UserRole) (*mocks.MockRequestRepository, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	requestRepo := mocks.NewMockRequestRepository()
	notificationRepo := mocks.NewMockNotificationRepository()
	svc := services.NewRequestService(requestRepo, services.NewNotificationService(notificationRepo))

	handler := NewRequestHandler(NewBaseHandler(validator.New()), svc)

	router := gin.New()
	api := router.Group("", asUser(userID, role))
	handler.RegisterRoutes(api)
	return requestRepo, router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBulkDeleteEndpoint_ConfirmationGating(t *testing.T) {
	requestRepo, router := setupRequestRouter(t, "admin-1", models.UserRoleAdmin)
	request := requestRepo.Add(&models.Request{ToolName: "terraform", RequesterID: "r1"})

	// Without the confirm flag the selection survives.
	w := doJSON(t, router, http.MethodPost, "/requests/bulk/delete", gin.H{
		"ids": []string{request.ID},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "confirmation")
	assert.Len(t, requestRepo.Requests, 1)

	w = doJSON(t, router, http.MethodPost, "/requests/bulk/delete", gin.H{
		"ids":     []string{request.ID},
		"confirm": true,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, requestRepo.Requests)
}

func TestBulkDeleteEndpoint_EmptySelection(t *testing.T) {
	_, router := setupRequestRouter(t, "admin-1", models.UserRoleAdmin)

	w := doJSON(t, router, http.MethodPost, "/requests/bulk/delete", gin.H{
		"ids":     []string{},
		"confirm": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkEndpoints_ObserverForbidden(t *testing.T) {
	_, router := setupRequestRouter(t, "watcher-1", models.UserRoleObserver)

	w := doJSON(t, router, http.MethodPost, "/requests/bulk/status", gin.H{
		"ids":    []string{"any"},
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPost, "/requests/bulk/delete", gin.H{
		"ids":     []string{"any"},
		"confirm": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBulkStatusEndpoint_ReportsTally(t *testing.T) {
	requestRepo, router := setupRequestRouter(t, "admin-1", models.UserRoleAdmin)
	first := requestRepo.Add(&models.Request{ToolName: "a", RequesterID: "r1"})
	done := requestRepo.Add(&models.Request{ToolName: "b", RequesterID: "r1", Status: models.RequestStatusCompleted})

	w := doJSON(t, router, http.MethodPost, "/requests/bulk/status", gin.H{
		"ids":    []string{first.ID, done.ID},
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Succeeded int      `json:"succeeded"`
		Failed    int      `json:"failed"`
		Errors    []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Errors, 1)
}

func TestCreateRequestEndpoint_Validation(t *testing.T) {
	_, router := setupRequestRouter(t, "user-1", models.UserRoleObserver)

	w := doJSON(t, router, http.MethodPost, "/requests", gin.H{"tool_name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/requests", gin.H{"tool_name": "terraform"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListRequestsEndpoint_ObserverSeesOnlyOwn(t *testing.T) {
	requestRepo, router := setupRequestRouter(t, "user-1", models.UserRoleObserver)
	requestRepo.Add(&models.Request{ToolName: "mine", RequesterID: "user-1"})
	requestRepo.Add(&models.Request{ToolName: "theirs", RequesterID: "user-2"})

	w := doJSON(t, router, http.MethodGet, "/requests", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Requests []struct {
			RequesterID string `json:"requester_id"`
		} `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, "user-1", resp.Requests[0].RequesterID)
}
