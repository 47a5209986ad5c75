package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	VariantID  uint           `gorm:"index;not null" json:"variant_id"`                         // 变体ID
	TitleSnap  string         `gorm:"type:varchar(300)" json:"title"`                           // 商品标题快照
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价（下单时快照）
	Quantity   int            `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联变体
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
