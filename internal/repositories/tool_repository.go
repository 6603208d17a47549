package repositories

import (
	"errors"

	"gorm.io/gorm"

	"toolhub_backend/internal/models"
)

var ErrToolNotFound = errors.New("tool not found")

type ToolRepository interface {
	Create(tool *models.Tool) error
	FindByID(id string) (*models.Tool, error)
	FindWithFilter(criteria ToolFilter) ([]models.Tool, int64, error)
	Update(tool *models.Tool) error
	UpdateApprovalStatus(toolID string, status models.ApprovalStatus) error
	Delete(toolID string) error
	CountByApprovalStatus() (map[models.ApprovalStatus]int64, error)
}

type ToolRepositoryImpl struct {
	db *gorm.DB
}

type ToolFilter struct {
	OwnerID        string
	ApprovalStatus models.ApprovalStatus
	Search         string
	Page           int
	PageSize       int
}

func NewToolRepository(db *gorm.DB) ToolRepository {
	return &ToolRepositoryImpl{db: db}
}

func (r *ToolRepositoryImpl) Create(tool *models.Tool) error {
	return r.db.Create(tool).Error
}

func (r *ToolRepositoryImpl) FindByID(id string) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.First(&tool, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}
	return &tool, nil
}

func (r *ToolRepositoryImpl) FindWithFilter(criteria ToolFilter) ([]models.Tool, int64, error) {
	var tools []models.Tool
	query := r.db.Model(&models.Tool{})

	if criteria.OwnerID != "" {
		query = query.Where("owner_id = ?", criteria.OwnerID)
	}
	if criteria.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", criteria.ApprovalStatus)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tools).Error

	return tools, total, err
}

func (r *ToolRepositoryImpl) Update(tool *models.Tool) error {
	result := r.db.Model(tool).Updates(map[string]interface{}{
		"name":        tool.Name,
		"description": tool.Description,
		"url":         tool.URL,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrToolNotFound
	}
	return nil
}

func (r *ToolRepositoryImpl) UpdateApprovalStatus(toolID string, status models.ApprovalStatus) error {
	result := r.db.Model(&models.Tool{}).Where("id = ?", toolID).Update("approval_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrToolNotFound
	}
	return nil
}

func (r *ToolRepositoryImpl) Delete(toolID string) error {
	result := r.db.Where("id = ?", toolID).Delete(&models.Tool{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrToolNotFound
	}
	return nil
}

func (r *ToolRepositoryImpl) CountByApprovalStatus() (map[models.ApprovalStatus]int64, error) {
	var rows []struct {
		ApprovalStatus models.ApprovalStatus
		Count          int64
	}

	err := r.db.Model(&models.Tool{}).
		Select("approval_status, COUNT(*) as count").
		Group("approval_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ApprovalStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.ApprovalStatus] = row.Count
	}
	return counts, nil
}
