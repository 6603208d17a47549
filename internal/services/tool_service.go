package services

import (
	"fmt"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/logger"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/internal/services/dto"
	"toolhub_backend/pkg/apperrors"
)

type ToolService interface {
	Create(creatorID string, creatorRole models.UserRole, req *dto.CreateToolRequest) (*dto.ToolResponse, error)
	GetByID(id string) (*dto.ToolResponse, error)
	List(filter *dto.ToolFilter) (*dto.ToolListResponse, error)
	Update(actorID string, actorRole models.UserRole, toolID string, req *dto.UpdateToolRequest) (*dto.ToolResponse, error)
	SetApprovalStatus(actorRole models.UserRole, toolID string, status models.ApprovalStatus) (*dto.ToolResponse, error)
	Delete(actorID string, actorRole models.UserRole, toolID string) error
}

type ToolServiceImpl struct {
	toolRepo            repositories.ToolRepository
	notificationService NotificationService
}

func NewToolService(
	toolRepo repositories.ToolRepository,
	notificationService NotificationService,
) ToolService {
	return &ToolServiceImpl{
		toolRepo:            toolRepo,
		notificationService: notificationService,
	}
}

func (s *ToolServiceImpl) Create(creatorID string, creatorRole models.UserRole, req *dto.CreateToolRequest) (*dto.ToolResponse, error) {
	if !auth.CanSubmitTools(creatorRole) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	tool := &models.Tool{
		Name:           req.Name,
		Description:    req.Description,
		URL:            req.URL,
		OwnerID:        creatorID,
		CreatedBy:      creatorID,
		ApprovalStatus: models.ApprovalStatusPending,
	}

	if err := s.toolRepo.Create(tool); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildToolResponse(tool), nil
}

func (s *ToolServiceImpl) GetByID(id string) (*dto.ToolResponse, error) {
	tool, err := s.toolRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrToolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildToolResponse(tool), nil
}

func (s *ToolServiceImpl) List(filter *dto.ToolFilter) (*dto.ToolListResponse, error) {
	page, pageSize := normalizePagination(filter.Page, filter.PageSize)

	tools, total, err := s.toolRepo.FindWithFilter(repositories.ToolFilter{
		OwnerID:        filter.OwnerID,
		ApprovalStatus: filter.ApprovalStatus,
		Search:         filter.Search,
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ToolResponse, 0, len(tools))
	for i := range tools {
		responses = append(responses, buildToolResponse(&tools[i]))
	}

	return &dto.ToolListResponse{
		Tools:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

// Update lets the owner or an admin edit the descriptive fields. Approval
// status is never editable here; it only moves through SetApprovalStatus.
func (s *ToolServiceImpl) Update(actorID string, actorRole models.UserRole, toolID string, req *dto.UpdateToolRequest) (*dto.ToolResponse, error) {
	tool, err := s.toolRepo.FindByID(toolID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrToolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if tool.OwnerID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.URL != nil {
		tool.URL = *req.URL
	}

	if err := s.toolRepo.Update(tool); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildToolResponse(tool), nil
}

// SetApprovalStatus moves a tool through the approval lifecycle. Only
// admins may do this; approving your own submission is allowed because
// admin submissions still enter the queue as pending.
func (s *ToolServiceImpl) SetApprovalStatus(actorRole models.UserRole, toolID string, status models.ApprovalStatus) (*dto.ToolResponse, error) {
	if !auth.CanApproveTools(actorRole) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	tool, err := s.toolRepo.FindByID(toolID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrToolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if tool.ApprovalStatus == status {
		return buildToolResponse(tool), nil
	}

	if err := s.toolRepo.UpdateApprovalStatus(toolID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	tool.ApprovalStatus = status

	notifyErr := s.notificationService.Notify(
		tool.OwnerID,
		repositories.NotificationTypeToolApproval,
		"Tool approval updated",
		fmt.Sprintf("Your tool %q is now %s", tool.Name, status),
		map[string]interface{}{"tool_id": tool.ID, "approval_status": string(status)},
	)
	if notifyErr != nil {
		logger.WithError(notifyErr).Warn("failed to record approval notification", "tool_id", tool.ID)
	}

	return buildToolResponse(tool), nil
}

func (s *ToolServiceImpl) Delete(actorID string, actorRole models.UserRole, toolID string) error {
	tool, err := s.toolRepo.FindByID(toolID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrToolNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if tool.OwnerID != actorID && actorRole != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.toolRepo.Delete(toolID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func buildToolResponse(tool *models.Tool) *dto.ToolResponse {
	return &dto.ToolResponse{
		ID:             tool.ID,
		Name:           tool.Name,
		Description:    tool.Description,
		URL:            tool.URL,
		OwnerID:        tool.OwnerID,
		CreatedBy:      tool.CreatedBy,
		ApprovalStatus: tool.ApprovalStatus,
		CreatedAt:      tool.CreatedAt,
	}
}
