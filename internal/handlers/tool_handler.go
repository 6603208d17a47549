package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolhub_backend/internal/middleware"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/services"
	"toolhub_backend/internal/services/dto"
)

type ToolHandler struct {
	*BaseHandler
	toolService services.ToolService
}

func NewToolHandler(base *BaseHandler, toolService services.ToolService) *ToolHandler {
	return &ToolHandler{
		BaseHandler: base,
		toolService: toolService,
	}
}

func (h *ToolHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tools := rg.Group("/tools")
	{
		tools.GET("", h.List)
		tools.GET("/:toolId", h.Get)
		tools.POST("", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleOwner), h.Create)
		tools.PUT("/:toolId", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleOwner), h.Update)
		tools.PUT("/:toolId/approval", middleware.RequireRoles(models.UserRoleAdmin), h.SetApprovalStatus)
		tools.DELETE("/:toolId", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleOwner), h.Delete)
	}
}

func (h *ToolHandler) List(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var filter dto.ToolFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	resp, err := h.toolService.List(&filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ToolHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	resp, err := h.toolService.GetByID(c.Param("toolId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ToolHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateToolRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.toolService.Create(userID, h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ToolHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateToolRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.toolService.Update(userID, h.GetRole(c), c.Param("toolId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ToolHandler) SetApprovalStatus(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req struct {
		Status models.ApprovalStatus `json:"status" validate:"required,is-approval-status"`
	}
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.toolService.SetApprovalStatus(h.GetRole(c), c.Param("toolId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ToolHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.toolService.Delete(userID, h.GetRole(c), c.Param("toolId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tool deleted"})
}
