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

type RequestService interface {
	Create(requesterID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	GetByID(id string) (*dto.RequestResponse, error)
	List(filter *dto.RequestFilter) (*dto.RequestListResponse, error)
	ListForRequester(requesterID string, filter *dto.RequestFilter) (*dto.RequestListResponse, error)
	UpdateStatus(actorID, requestID string, status models.RequestStatus) (*dto.RequestResponse, error)
	Assign(requestID, assigneeID string) (*dto.RequestResponse, error)
	Delete(requestID string) error

	BulkUpdateStatus(actorID string, actorRole models.UserRole, req *dto.BulkStatusRequest) (*dto.BulkResult, error)
	BulkDelete(actorRole models.UserRole, req *dto.BulkDeleteRequest) (*dto.BulkResult, error)
}

type RequestServiceImpl struct {
	requestRepo         repositories.RequestRepository
	notificationService NotificationService
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	notificationService NotificationService,
) RequestService {
	return &RequestServiceImpl{
		requestRepo:         requestRepo,
		notificationService: notificationService,
	}
}

func (s *RequestServiceImpl) Create(requesterID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	request := &models.Request{
		ToolName:      req.ToolName,
		Justification: req.Justification,
		RequesterID:   requesterID,
		Status:        models.RequestStatusPending,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildRequestResponse(request), nil
}

func (s *RequestServiceImpl) GetByID(id string) (*dto.RequestResponse, error) {
	request, err := s.requestRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildRequestResponse(request), nil
}

func (s *RequestServiceImpl) List(filter *dto.RequestFilter) (*dto.RequestListResponse, error) {
	return s.list(repositories.RequestFilter{
		Status: filter.Status,
		Search: filter.Search,
		Page:   filter.Page,
	}, filter.PageSize)
}

// ListForRequester restricts the listing to the caller's own requests,
// used for non-admin views.
func (s *RequestServiceImpl) ListForRequester(requesterID string, filter *dto.RequestFilter) (*dto.RequestListResponse, error) {
	return s.list(repositories.RequestFilter{
		RequesterID: requesterID,
		Status:      filter.Status,
		Search:      filter.Search,
		Page:        filter.Page,
	}, filter.PageSize)
}

func (s *RequestServiceImpl) list(criteria repositories.RequestFilter, pageSize int) (*dto.RequestListResponse, error) {
	criteria.Page, criteria.PageSize = normalizePagination(criteria.Page, pageSize)

	requests, total, err := s.requestRepo.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, buildRequestResponse(&requests[i]))
	}

	return &dto.RequestListResponse{
		Requests:   responses,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: calculateTotalPages(total, criteria.PageSize),
	}, nil
}

func (s *RequestServiceImpl) UpdateStatus(actorID, requestID string, status models.RequestStatus) (*dto.RequestResponse, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !models.ValidRequestTransition(request.Status, status) {
		return nil, apperrors.ErrInvalidStatus("request",
			fmt.Sprintf("Cannot transition request from %s to %s", request.Status, status))
	}

	if request.Status != status {
		if err := s.requestRepo.UpdateStatus(requestID, status); err != nil {
			return nil, apperrors.InternalError(err)
		}
		request.Status = status
		s.notifyStatusChange(request, actorID)
	}

	return buildRequestResponse(request), nil
}

func (s *RequestServiceImpl) Assign(requestID, assigneeID string) (*dto.RequestResponse, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.requestRepo.UpdateAssignee(requestID, assigneeID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	request.AssigneeID = assigneeID

	return buildRequestResponse(request), nil
}

func (s *RequestServiceImpl) Delete(requestID string) error {
	if err := s.requestRepo.Delete(requestID); err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// BulkUpdateStatus applies the transition to each selected request in
// order. A failing item records an error and the loop moves on, so one bad
// row never aborts the rest of the selection. Affected requesters are told
// once per run, not once per row.
func (s *RequestServiceImpl) BulkUpdateStatus(actorID string, actorRole models.UserRole, req *dto.BulkStatusRequest) (*dto.BulkResult, error) {
	if !auth.CanBulkMutateRequests(actorRole) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if len(req.IDs) == 0 {
		return nil, apperrors.ErrEmptySelection
	}

	result := &dto.BulkResult{}
	affected := make(map[string]bool)
	for _, id := range req.IDs {
		request, err := s.requestRepo.FindByID(id)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: not found", id))
			continue
		}

		if !models.ValidRequestTransition(request.Status, req.Status) {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: cannot transition from %s to %s", id, request.Status, req.Status))
			continue
		}

		if request.Status == req.Status {
			result.Succeeded++
			continue
		}

		if err := s.requestRepo.UpdateStatus(id, req.Status); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}

		request.Status = req.Status
		if request.RequesterID != actorID {
			affected[request.RequesterID] = true
		}
		result.Succeeded++
	}

	s.notifyBulkStatusChange(affected, req.Status)
	return result, nil
}

// BulkDelete refuses to run without the explicit confirmation flag. The
// check lives here so every transport path hits it, not just the dialog in
// the dashboard.
func (s *RequestServiceImpl) BulkDelete(actorRole models.UserRole, req *dto.BulkDeleteRequest) (*dto.BulkResult, error) {
	if !auth.CanBulkMutateRequests(actorRole) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if len(req.IDs) == 0 {
		return nil, apperrors.ErrEmptySelection
	}
	if !req.Confirm {
		return nil, apperrors.ErrConfirmationRequired
	}

	result := &dto.BulkResult{}
	for _, id := range req.IDs {
		if err := s.requestRepo.Delete(id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// notifyStatusChange is best effort. The requester is told their request
// moved; the actor mutating their own request is not notified.
func (s *RequestServiceImpl) notifyStatusChange(request *models.Request, actorID string) {
	if request.RequesterID == actorID {
		return
	}
	err := s.notificationService.Notify(
		request.RequesterID,
		repositories.NotificationTypeRequestStatus,
		"Request status updated",
		fmt.Sprintf("Your request for %q is now %s", request.ToolName, request.Status),
		map[string]interface{}{"request_id": request.ID, "status": string(request.Status)},
	)
	if err != nil {
		logger.WithError(err).Warn("failed to record status notification", "request_id", request.ID)
	}
}

// notifyBulkStatusChange records one notification per affected requester
// in a single batch write.
func (s *RequestServiceImpl) notifyBulkStatusChange(affected map[string]bool, status models.RequestStatus) {
	if len(affected) == 0 {
		return
	}

	requesterIDs := make([]string, 0, len(affected))
	for requesterID := range affected {
		requesterIDs = append(requesterIDs, requesterID)
	}

	err := s.notificationService.NotifyMany(
		requesterIDs,
		repositories.NotificationTypeRequestBulk,
		"Requests updated",
		fmt.Sprintf("One or more of your requests are now %s", status),
		map[string]interface{}{"status": string(status)},
	)
	if err != nil {
		logger.WithError(err).Warn("failed to record bulk status notifications")
	}
}

func buildRequestResponse(request *models.Request) *dto.RequestResponse {
	return &dto.RequestResponse{
		ID:            request.ID,
		ToolName:      request.ToolName,
		Justification: request.Justification,
		RequesterID:   request.RequesterID,
		AssigneeID:    request.AssigneeID,
		Status:        request.Status,
		CreatedAt:     request.CreatedAt,
	}
}
