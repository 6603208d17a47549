package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolhub_backend/internal/services"
	"toolhub_backend/internal/services/dto"
)

const mfaIssuer = "ToolHub"

// ProfileHandler serves the authenticated self-service routes. These stay
// reachable for users who have not finished MFA enrollment, otherwise they
// could never enroll.
type ProfileHandler struct {
	*BaseHandler
	authService services.AuthService
	userService services.UserService
}

func NewProfileHandler(base *BaseHandler, authService services.AuthService, userService services.UserService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: base,
		authService: authService,
		userService: userService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("/me", h.Me)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/change-password", h.ChangePassword)
		profile.POST("/mfa/enroll", h.EnrollMFA)
		profile.POST("/mfa/activate", h.ActivateMFA)
		profile.POST("/mfa/disable", h.DisableMFA)
		profile.POST("/sessions/purge", h.PurgeSessions)
	}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.authService.Me(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *ProfileHandler) EnrollMFA(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.authService.EnrollMFA(userID, mfaIssuer)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) ActivateMFA(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.MFAActivateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ActivateMFA(userID, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "MFA activated"})
}

func (h *ProfileHandler) DisableMFA(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.MFAActivateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.DisableMFA(userID, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "MFA disabled"})
}

// PurgeSessions revokes every session of the caller. Clients use this as
// the recovery path when locally stored session state is corrupt.
func (h *ProfileHandler) PurgeSessions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.PurgeSessions(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sessions purged"})
}
