package repository

import (
	"errors"

	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"

	"gorm.io/gorm"
)

// QualityCheckRepository 质检记录数据访问接口
type QualityCheckRepository interface {
	Create(check *models.QualityCheck) error
	BulkCreate(checks []models.QualityCheck) error
	GetByID(id uint) (*models.QualityCheck, error)
	GetOpenByTarget(targetType string, targetID uint) (*models.QualityCheck, error)
	List(filter QualityCheckListFilter) ([]models.QualityCheck, int64, error)
	Update(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormQualityCheckRepository
}

// GormQualityCheckRepository GORM 实现
type GormQualityCheckRepository struct {
	db *gorm.DB
}

// NewQualityCheckRepository 创建质检记录仓库
func NewQualityCheckRepository(db *gorm.DB) *GormQualityCheckRepository {
	return &GormQualityCheckRepository{db: db}
}

// WithTx 绑定事务
func (r *GormQualityCheckRepository) WithTx(tx *gorm.DB) *GormQualityCheckRepository {
	if tx == nil {
		return r
	}
	return &GormQualityCheckRepository{db: tx}
}

// Create 创建质检记录
func (r *GormQualityCheckRepository) Create(check *models.QualityCheck) error {
	return r.db.Create(check).Error
}

// BulkCreate 批量创建质检记录
func (r *GormQualityCheckRepository) BulkCreate(checks []models.QualityCheck) error {
	if len(checks) == 0 {
		return nil
	}
	return r.db.Create(&checks).Error
}

// GetByID 根据 ID 获取质检记录
func (r *GormQualityCheckRepository) GetByID(id uint) (*models.QualityCheck, error) {
	var check models.QualityCheck
	if err := r.db.Preload("Employee").First(&check, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &check, nil
}

// GetOpenByTarget 获取指定对象的在检质检记录
func (r *GormQualityCheckRepository) GetOpenByTarget(targetType string, targetID uint) (*models.QualityCheck, error) {
	var check models.QualityCheck
	if err := r.db.
		Where("target_type = ? AND target_id = ? AND status = ?", targetType, targetID, constants.QCStatusInProcess).
		First(&check).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &check, nil
}

// List 查询质检记录列表
func (r *GormQualityCheckRepository) List(filter QualityCheckListFilter) ([]models.QualityCheck, int64, error) {
	query := r.db.Model(&models.QualityCheck{})
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID > 0 {
		query = query.Where("target_id = ?", filter.TargetID)
	}
	if filter.EmployeeID > 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var checks []models.QualityCheck
	if err := applyPagination(query.Preload("Employee").Order("id desc"), filter.Page, filter.PageSize).
		Find(&checks).Error; err != nil {
		return nil, 0, err
	}
	return checks, total, nil
}

// Update 更新质检记录
func (r *GormQualityCheckRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.QualityCheck{}).Where("id = ?", id).Updates(updates).Error
}
