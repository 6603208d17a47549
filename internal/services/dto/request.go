package dto

import (
	"time"

	"toolhub_backend/internal/models"
)

type CreateRequestRequest struct {
	ToolName      string `json:"tool_name" validate:"required,min=2,max=200"`
	Justification string `json:"justification" validate:"max=2000"`
}

type UpdateRequestStatusRequest struct {
	Status models.RequestStatus `json:"status" validate:"required,is-request-status"`
}

type RequestResponse struct {
	ID            string               `json:"id"`
	ToolName      string               `json:"tool_name"`
	Justification string               `json:"justification"`
	RequesterID   string               `json:"requester_id"`
	AssigneeID    string               `json:"assignee_id,omitempty"`
	Status        models.RequestStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type RequestListResponse struct {
	Requests   []*RequestResponse `json:"requests"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

type RequestFilter struct {
	Status   models.RequestStatus `form:"status" validate:"omitempty,is-request-status"`
	Search   string               `form:"search"`
	Page     int                  `form:"page" validate:"omitempty,min=1"`
	PageSize int                  `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// BulkStatusRequest carries a selection for a sequential status transition.
type BulkStatusRequest struct {
	IDs    []string             `json:"ids" validate:"required,min=1"`
	Status models.RequestStatus `json:"status" validate:"required,is-request-status"`
}

// BulkDeleteRequest carries a selection for deletion. Confirm must be true:
// deletion is irreversible, and the server enforces the confirmation step
// rather than trusting the dialog in the UI.
type BulkDeleteRequest struct {
	IDs     []string `json:"ids" validate:"required,min=1"`
	Confirm bool     `json:"confirm"`
}

// BulkResult tallies a per-item-isolated bulk operation.
type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
