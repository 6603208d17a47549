package dto

import (
	"time"

	"toolhub_backend/internal/models"
)

type CreateToolRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=2000"`
	URL         string `json:"url" validate:"omitempty,url"`
}

type UpdateToolRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	URL         *string `json:"url" validate:"omitempty,url"`
}

type ToolResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	URL            string                `json:"url"`
	OwnerID        string                `json:"owner_id"`
	CreatedBy      string                `json:"created_by"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`
	CreatedAt      time.Time             `json:"created_at"`
}

type ToolListResponse struct {
	Tools      []*ToolResponse `json:"tools"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type ToolFilter struct {
	ApprovalStatus models.ApprovalStatus `form:"approval_status" validate:"omitempty,is-approval-status"`
	OwnerID        string                `form:"owner_id"`
	Search         string                `form:"search"`
	Page           int                   `form:"page" validate:"omitempty,min=1"`
	PageSize       int                   `form:"page_size" validate:"omitempty,min=1,max=100"`
}
