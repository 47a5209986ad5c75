package models

import "time"

// Selling 销售流水表（支付核验成功后按订单项逐条追加，只增不改）
type Selling struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`                           // 订单ID
	VariantID  uint      `gorm:"index;not null" json:"variant_id"`                         // 变体ID
	EmployeeID *uint     `gorm:"index" json:"employee_id,omitempty"`                       // 经手员工ID
	Quantity   int       `gorm:"not null" json:"quantity"`                                 // 售出数量
	UnitPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 成交单价
	TotalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 成交小计
	SoldAt     time.Time `gorm:"index;not null" json:"sold_at"`                            // 成交时间
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (Selling) TableName() string {
	return "sellings"
}
