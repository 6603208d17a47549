package repositories

import (
	"errors"

	"gorm.io/gorm"

	"toolhub_backend/internal/models"
)

var ErrRequestNotFound = errors.New("request not found")

type RequestRepository interface {
	Create(request *models.Request) error
	FindByID(id string) (*models.Request, error)
	FindWithFilter(criteria RequestFilter) ([]models.Request, int64, error)
	UpdateStatus(requestID string, status models.RequestStatus) error
	UpdateAssignee(requestID, assigneeID string) error
	Delete(requestID string) error
	CountByStatus() (map[models.RequestStatus]int64, error)
}

type RequestRepositoryImpl struct {
	db *gorm.DB
}

type RequestFilter struct {
	RequesterID string
	Status      models.RequestStatus
	Search      string
	Page        int
	PageSize    int
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &RequestRepositoryImpl{db: db}
}

func (r *RequestRepositoryImpl) Create(request *models.Request) error {
	return r.db.Create(request).Error
}

func (r *RequestRepositoryImpl) FindByID(id string) (*models.Request, error) {
	var request models.Request
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepositoryImpl) FindWithFilter(criteria RequestFilter) ([]models.Request, int64, error) {
	var requests []models.Request
	query := r.db.Model(&models.Request{})

	if criteria.RequesterID != "" {
		query = query.Where("requester_id = ?", criteria.RequesterID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("tool_name ILIKE ? OR justification ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&requests).Error

	return requests, total, err
}

func (r *RequestRepositoryImpl) UpdateStatus(requestID string, status models.RequestStatus) error {
	result := r.db.Model(&models.Request{}).Where("id = ?", requestID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepositoryImpl) UpdateAssignee(requestID, assigneeID string) error {
	result := r.db.Model(&models.Request{}).Where("id = ?", requestID).Update("assignee_id", assigneeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepositoryImpl) Delete(requestID string) error {
	result := r.db.Where("id = ?", requestID).Delete(&models.Request{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepositoryImpl) CountByStatus() (map[models.RequestStatus]int64, error) {
	var rows []struct {
		Status models.RequestStatus
		Count  int64
	}

	err := r.db.Model(&models.Request{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
