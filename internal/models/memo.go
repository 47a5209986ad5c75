package models

import (
	"time"

	"gorm.io/gorm"
)

// Memo 备忘单（jangad）主表，一批外发待检货品
type Memo struct {
	ID           uint           `gorm:"primarykey" json:"id"`                        // 主键
	JangadNumber string         `gorm:"uniqueIndex;not null" json:"jangad_number"`   // 单号
	PartyName    string         `gorm:"type:varchar(200)" json:"party_name"`         // 往来方名称
	Status       string         `gorm:"index;not null;default:'open'" json:"status"` // 单据状态
	IssuedAt     time.Time      `gorm:"index" json:"issued_at"`                      // 开单时间
	Remark       string         `gorm:"type:varchar(500)" json:"remark"`             // 备注
	QCEmployeeID *uint          `gorm:"index" json:"qc_employee_id,omitempty"`       // 质检员工ID（整单指派时盖章）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间

	Details []MemoDetail `gorm:"foreignKey:MemoID" json:"details,omitempty"` // 明细
}

// TableName 指定表名
func (Memo) TableName() string {
	return "memos"
}

// MemoDetail 备忘单明细表（单件货品，挂接具体变体）
type MemoDetail struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	MemoID       uint           `gorm:"index;not null" json:"memo_id"`                             // 备忘单ID
	VariantID    uint           `gorm:"index;not null" json:"variant_id"`                          // 变体ID
	Description  string         `gorm:"type:varchar(300)" json:"description"`                      // 货品描述
	GrossWeight  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gross_weight"` // 毛重（克）
	NetWeight    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"net_weight"`   // 净重（克）
	Quantity     int            `gorm:"not null;default:1" json:"quantity"`                        // 件数
	QCStatus     string         `gorm:"default:'pending';index" json:"qc_status"`                  // 质检状态（随质检结论同步）
	QCEmployeeID *uint          `gorm:"index" json:"qc_employee_id,omitempty"`                     // 质检员工ID
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联变体
}

// TableName 指定表名
func (MemoDetail) TableName() string {
	return "memo_details"
}
