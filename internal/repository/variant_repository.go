package repository

import (
	"errors"

	"github.com/gehna-next/internal/models"

	"gorm.io/gorm"
)

// VariantRepository 商品变体数据访问接口
type VariantRepository interface {
	Create(variant *models.ProductVariant) error
	GetByID(id uint) (*models.ProductVariant, error)
	GetByBarcode(productID uint, barcode string) (*models.ProductVariant, error)
	List(filter VariantListFilter) ([]models.ProductVariant, int64, error)
	Update(id uint, updates map[string]interface{}) error
	DecrementStock(variantID uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) *GormVariantRepository
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建商品变体仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariantRepository) WithTx(tx *gorm.DB) *GormVariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

// Create 创建变体
func (r *GormVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// GetByID 根据 ID 获取变体
func (r *GormVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.Preload("Product").First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetByBarcode 根据商品与条码获取变体
func (r *GormVariantRepository) GetByBarcode(productID uint, barcode string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	query := r.db.Where("barcode = ?", barcode)
	if productID > 0 {
		query = query.Where("product_id = ?", productID)
	}
	if err := query.First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// List 查询变体列表
func (r *GormVariantRepository) List(filter VariantListFilter) ([]models.ProductVariant, int64, error) {
	query := r.db.Model(&models.ProductVariant{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.QCStatus != "" {
		query = query.Where("qc_status = ?", filter.QCStatus)
	}
	if filter.OnlyStock {
		query = query.Where("is_stock = ? AND quantity > 0", true)
	}
	if filter.Search != "" {
		query = query.Where("barcode LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var variants []models.ProductVariant
	if err := applyPagination(query.Preload("Product").Order("id desc"), filter.Page, filter.PageSize).
		Find(&variants).Error; err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

// Update 更新变体
func (r *GormVariantRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.ProductVariant{}).Where("id = ?", id).Updates(updates).Error
}

// DecrementStock 条件扣减库存，仅在余量充足时生效，返回受影响行数。
func (r *GormVariantRepository) DecrementStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND quantity >= ?", variantID, quantity).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
