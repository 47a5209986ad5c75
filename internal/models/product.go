package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（款式维度，库存与定价挂在变体上）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`              // 主键
	Name        string         `gorm:"not null;index" json:"name"`        // 款式名称
	Category    string         `gorm:"index" json:"category"`             // 品类（戒指/项链等）
	Description string         `gorm:"type:text" json:"description"`      // 描述
	Images      StringArray    `gorm:"type:json" json:"images"`           // 图片路径
	IsActive    bool           `gorm:"default:true;index" json:"is_active"` // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // 变体
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductVariant 商品变体表（价格+库存+质检维度）
type ProductVariant struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ProductID    uint           `gorm:"not null;index;uniqueIndex:idx_variant_barcode" json:"product_id"` // 商品ID
	Barcode      string         `gorm:"column:barcode;type:varchar(64);not null;uniqueIndex:idx_variant_barcode" json:"barcode"` // 条码（同商品内唯一）
	SpecJSON     JSON           `gorm:"type:json" json:"spec"`                                     // 规格（材质/尺寸/克重等）
	PriceAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 单价
	Quantity     int            `gorm:"not null;default:0" json:"quantity"`                        // 库存数量
	IsStock      bool           `gorm:"default:false;index" json:"is_stock"`                       // 是否入库（质检通过后置真）
	QCStatus     string         `gorm:"default:'pending';index" json:"qc_status"`                  // 质检状态
	QCEmployeeID *uint          `gorm:"index" json:"qc_employee_id,omitempty"`                     // 质检员工ID
	Notes        string         `gorm:"type:text" json:"notes"`                                    // 备注（质检意见等）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
