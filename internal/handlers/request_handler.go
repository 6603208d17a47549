package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolhub_backend/internal/middleware"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/services"
	"toolhub_backend/internal/services/dto"
)

type RequestHandler struct {
	*BaseHandler
	requestService services.RequestService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
	}
}

func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	{
		requests.GET("", h.List)
		requests.GET("/:requestId", h.Get)
		requests.POST("", h.Create)
		requests.PUT("/:requestId/status", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleOwner), h.UpdateStatus)
		requests.PUT("/:requestId/assignee", middleware.RequireRoles(models.UserRoleAdmin), h.Assign)
		requests.DELETE("/:requestId", middleware.RequireRoles(models.UserRoleAdmin), h.Delete)

		// Bulk endpoints back the selection bar on the requests table.
		requests.POST("/bulk/status", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleOwner), h.BulkUpdateStatus)
		requests.POST("/bulk/delete", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleOwner), h.BulkDelete)
	}
}

// List shows every request to admins and owners; observers see only
// their own.
func (h *RequestHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var filter dto.RequestFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	var resp *dto.RequestListResponse
	var err error
	if h.GetRole(c) == models.UserRoleObserver {
		resp, err = h.requestService.ListForRequester(userID, &filter)
	} else {
		resp, err = h.requestService.List(&filter)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	resp, err := h.requestService.GetByID(c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.requestService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.requestService.UpdateStatus(userID, c.Param("requestId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) Assign(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req struct {
		AssigneeID string `json:"assignee_id" validate:"required"`
	}
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.requestService.Assign(c.Param("requestId"), req.AssigneeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) Delete(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	if err := h.requestService.Delete(c.Param("requestId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted"})
}

func (h *RequestHandler) BulkUpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BulkStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.requestService.BulkUpdateStatus(userID, h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RequestHandler) BulkDelete(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.BulkDeleteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.requestService.BulkDelete(h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
