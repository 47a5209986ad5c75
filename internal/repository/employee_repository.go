package repository

import (
	"errors"

	"github.com/gehna-next/internal/models"

	"gorm.io/gorm"
)

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	List(filter EmployeeListFilter) ([]models.Employee, int64, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormEmployeeRepository
}

// GormEmployeeRepository GORM 实现
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository 创建员工仓库
func NewEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEmployeeRepository) WithTx(tx *gorm.DB) *GormEmployeeRepository {
	if tx == nil {
		return r
	}
	return &GormEmployeeRepository{db: tx}
}

// Create 创建员工
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// GetByID 根据 ID 获取员工
func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// List 查询员工列表
func (r *GormEmployeeRepository) List(filter EmployeeListFilter) ([]models.Employee, int64, error) {
	query := r.db.Model(&models.Employee{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []models.Employee
	if err := applyPagination(query.Order("id desc"), filter.Page, filter.PageSize).
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// Update 更新员工信息
func (r *GormEmployeeRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Employee{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除员工（软删除）
func (r *GormEmployeeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Employee{}, id).Error
}
