package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 付款请求通知表。
// 发送人对同一订单至多存在一条待处理记录，接收人为管理员ID集合。
type Notification struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderID      uint           `gorm:"index;not null" json:"order_id"`                              // 订单ID
	SenderID     uint           `gorm:"index;not null" json:"sender_id"`                             // 发送人用户ID
	ReceiverIDs  UintList       `gorm:"type:json" json:"receiver_ids"`                               // 接收人（管理员）ID集合
	TokenPayment Money          `gorm:"type:decimal(20,2);not null;default:0" json:"token_payment"`  // 令牌金额（订单总额的 30%）
	Message      string         `gorm:"type:varchar(500)" json:"message"`                            // 附言
	Status       string         `gorm:"index;not null;default:'pending'" json:"status"`              // 处理状态
	IsAdminRead  bool           `gorm:"default:false" json:"is_admin_read"`                          // 管理员是否已读
	IsRead       bool           `gorm:"default:false" json:"is_read"`                                // 发送人是否已读回执
	DecidedBy    *uint          `gorm:"index" json:"decided_by,omitempty"`                           // 审批人ID
	DecidedAt    *time.Time     `json:"decided_at"`                                                  // 审批时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"` // 关联订单
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
