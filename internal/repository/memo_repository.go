package repository

import (
	"errors"

	"github.com/gehna-next/internal/models"

	"gorm.io/gorm"
)

// MemoRepository 备忘单数据访问接口
type MemoRepository interface {
	Create(memo *models.Memo, details []models.MemoDetail) error
	GetByID(id uint) (*models.Memo, error)
	GetByJangadNumber(jangadNumber string) (*models.Memo, error)
	List(filter MemoListFilter) ([]models.Memo, int64, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	GetDetailByID(id uint) (*models.MemoDetail, error)
	UpdateDetail(id uint, updates map[string]interface{}) error
	ListDetails(memoID uint) ([]models.MemoDetail, error)
	WithTx(tx *gorm.DB) *GormMemoRepository
}

// GormMemoRepository GORM 实现
type GormMemoRepository struct {
	db *gorm.DB
}

// NewMemoRepository 创建备忘单仓库
func NewMemoRepository(db *gorm.DB) *GormMemoRepository {
	return &GormMemoRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMemoRepository) WithTx(tx *gorm.DB) *GormMemoRepository {
	if tx == nil {
		return r
	}
	return &GormMemoRepository{db: tx}
}

// Create 创建备忘单与明细
func (r *GormMemoRepository) Create(memo *models.Memo, details []models.MemoDetail) error {
	if err := r.db.Create(memo).Error; err != nil {
		return err
	}
	for i := range details {
		details[i].MemoID = memo.ID
	}
	if len(details) > 0 {
		if err := r.db.Create(&details).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取备忘单
func (r *GormMemoRepository) GetByID(id uint) (*models.Memo, error) {
	var memo models.Memo
	if err := r.db.Preload("Details").First(&memo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &memo, nil
}

// GetByJangadNumber 根据单号获取备忘单
func (r *GormMemoRepository) GetByJangadNumber(jangadNumber string) (*models.Memo, error) {
	var memo models.Memo
	if err := r.db.Preload("Details").Where("jangad_number = ?", jangadNumber).First(&memo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &memo, nil
}

// List 查询备忘单列表
func (r *GormMemoRepository) List(filter MemoListFilter) ([]models.Memo, int64, error) {
	query := r.db.Model(&models.Memo{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("jangad_number LIKE ? OR party_name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var memos []models.Memo
	if err := applyPagination(query.Preload("Details").Order("id desc"), filter.Page, filter.PageSize).
		Find(&memos).Error; err != nil {
		return nil, 0, err
	}
	return memos, total, nil
}

// Update 更新备忘单
func (r *GormMemoRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Memo{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 软删除备忘单及其明细
func (r *GormMemoRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("memo_id = ?", id).Delete(&models.MemoDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Memo{}, id).Error
	})
}

// GetDetailByID 根据 ID 获取备忘单明细
func (r *GormMemoRepository) GetDetailByID(id uint) (*models.MemoDetail, error) {
	var detail models.MemoDetail
	if err := r.db.First(&detail, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

// UpdateDetail 更新备忘单明细
func (r *GormMemoRepository) UpdateDetail(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.MemoDetail{}).Where("id = ?", id).Updates(updates).Error
}

// ListDetails 查询备忘单全部明细
func (r *GormMemoRepository) ListDetails(memoID uint) ([]models.MemoDetail, error) {
	var details []models.MemoDetail
	if err := r.db.Where("memo_id = ?", memoID).Order("id asc").Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}
