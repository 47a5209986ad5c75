package repository

import (
	"github.com/gehna-next/internal/models"

	"gorm.io/gorm"
)

// SellingRepository 销售流水数据访问接口
type SellingRepository interface {
	BulkCreate(records []models.Selling) error
	List(filter SellingListFilter) ([]models.Selling, int64, error)
	SumByVariant(filter SellingListFilter) ([]SellingSummaryRow, error)
	WithTx(tx *gorm.DB) *GormSellingRepository
}

// SellingSummaryRow 按变体汇总的销售统计行
type SellingSummaryRow struct {
	VariantID     uint         `json:"variant_id"`
	TotalQuantity int64        `json:"total_quantity"`
	TotalAmount   models.Money `json:"total_amount"`
}

// GormSellingRepository GORM 实现
type GormSellingRepository struct {
	db *gorm.DB
}

// NewSellingRepository 创建销售流水仓库
func NewSellingRepository(db *gorm.DB) *GormSellingRepository {
	return &GormSellingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSellingRepository) WithTx(tx *gorm.DB) *GormSellingRepository {
	if tx == nil {
		return r
	}
	return &GormSellingRepository{db: tx}
}

// BulkCreate 批量写入销售流水
func (r *GormSellingRepository) BulkCreate(records []models.Selling) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Create(&records).Error
}

func (r *GormSellingRepository) applyFilter(query *gorm.DB, filter SellingListFilter) *gorm.DB {
	if filter.VariantID > 0 {
		query = query.Where("variant_id = ?", filter.VariantID)
	}
	if filter.EmployeeID > 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.SoldFrom != nil {
		query = query.Where("sold_at >= ?", *filter.SoldFrom)
	}
	if filter.SoldTo != nil {
		query = query.Where("sold_at < ?", *filter.SoldTo)
	}
	return query
}

// List 查询销售流水
func (r *GormSellingRepository) List(filter SellingListFilter) ([]models.Selling, int64, error) {
	query := r.applyFilter(r.db.Model(&models.Selling{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Selling
	if err := applyPagination(query.Order("id desc"), filter.Page, filter.PageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// SumByVariant 按变体汇总销售数量与金额
func (r *GormSellingRepository) SumByVariant(filter SellingListFilter) ([]SellingSummaryRow, error) {
	query := r.applyFilter(r.db.Model(&models.Selling{}), filter)

	var rows []SellingSummaryRow
	if err := query.
		Select("variant_id, SUM(quantity) AS total_quantity, SUM(total_price) AS total_amount").
		Group("variant_id").
		Order("variant_id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
