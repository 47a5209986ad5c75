package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee 员工表（销售、质检均挂到员工）
type Employee struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // 主键
	Name      string         `gorm:"not null;index" json:"name"`     // 姓名
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`  // 联系电话
	Email     string         `gorm:"type:varchar(200)" json:"email"` // 邮箱
	Address   string         `gorm:"type:varchar(500)" json:"address"` // 地址
	IsActive  bool           `gorm:"default:true;index" json:"is_active"` // 是否在职
	CreatedAt time.Time      `gorm:"index" json:"created_at"`        // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间
}

// TableName 指定表名
func (Employee) TableName() string {
	return "employees"
}
