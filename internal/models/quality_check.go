package models

import (
	"time"

	"gorm.io/gorm"
)

// QualityCheck 质检记录表。
// 质检对象用 TargetType+TargetID 标识，目前支持备忘单明细与商品变体两类。
type QualityCheck struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                                           // 主键
	TargetType string         `gorm:"index:idx_qc_target;not null" json:"target_type"`                                // 质检对象类型
	TargetID   uint           `gorm:"index:idx_qc_target;not null" json:"target_id"`                                  // 质检对象ID
	SenderID   uint           `gorm:"index" json:"sender_id"`                                                         // 指派发起人（管理员用户ID）
	EmployeeID uint           `gorm:"index;not null" json:"employee_id"`                                              // 质检员工ID
	Status     string         `gorm:"index;not null;default:'pending'" json:"status"`                                 // 质检状态
	Notes      string         `gorm:"type:text" json:"notes"`                                                         // 质检意见
	AssignedAt time.Time      `gorm:"index" json:"assigned_at"`                                                       // 指派时间
	ResolvedAt *time.Time     `json:"resolved_at"`                                                                    // 处理时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                                        // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                                        // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                                                 // 软删除时间

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"` // 质检员工
}

// TableName 指定表名
func (QualityCheck) TableName() string {
	return "quality_checks"
}
