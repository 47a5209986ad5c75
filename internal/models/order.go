package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                    uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderNo               string         `gorm:"uniqueIndex;not null" json:"order_no"`                     // 订单编号
	UserID                uint           `gorm:"index;not null" json:"user_id"`                            // 下单用户ID
	CustomerName          string         `gorm:"type:varchar(200)" json:"customer_name"`                   // 客户姓名
	CustomerPhone         string         `gorm:"type:varchar(32)" json:"customer_phone"`                   // 客户电话
	CustomerAddress       string         `gorm:"type:varchar(500)" json:"customer_address"`                // 客户地址
	Status                string         `gorm:"index;not null" json:"status"`                             // 订单状态
	Currency              string         `gorm:"not null" json:"currency"`                                 // 币种
	TotalPrice            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 订单总额（下单时快照）
	ApprovalWindowSeconds int64          `gorm:"not null;default:0" json:"approval_window_seconds"`        // 审批后付款窗口时长（秒）
	IsApproved            bool           `gorm:"default:false;index" json:"is_approved"`                   // 是否已审批通过
	ApprovedAt            *time.Time     `gorm:"index" json:"approved_at"`                                 // 审批通过时间（付款窗口锚点）
	IsPaid                bool           `gorm:"default:false;index" json:"is_paid"`                       // 是否已支付
	PaidAt                *time.Time     `gorm:"index" json:"paid_at"`                                     // 支付时间
	GatewayOrderID        string         `gorm:"index;type:varchar(64)" json:"gateway_order_id"`           // 支付网关订单号
	GatewayPaymentID      string         `gorm:"type:varchar(64)" json:"gateway_payment_id"`               // 支付网关流水号
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt             time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// PaymentWindowOpen 判断此刻是否处于付款窗口内。
// 窗口自审批通过时间起算，未审批或窗口已过均返回 false。
func (o *Order) PaymentWindowOpen(now time.Time) bool {
	if !o.IsApproved || o.ApprovedAt == nil {
		return false
	}
	if o.ApprovalWindowSeconds <= 0 {
		return false
	}
	deadline := o.ApprovedAt.Add(time.Duration(o.ApprovalWindowSeconds) * time.Second)
	return !now.After(deadline)
}
