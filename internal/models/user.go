package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（IsAdmin 为真的用户可审批付款请求、处理质检）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	Username     string         `gorm:"uniqueIndex;not null" json:"username"` // 登录名
	Email        string         `gorm:"index" json:"email"`                   // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	DisplayName  string         `gorm:"default:''" json:"display_name"`      // 昵称
	IsAdmin      bool           `gorm:"default:false;index" json:"is_admin"` // 是否管理员
	LastLoginAt  *time.Time     `json:"last_login_at"`                       // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
