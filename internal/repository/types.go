package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	IsPaid      *bool
	IsApproved  *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// VariantListFilter 查询商品变体列表的过滤条件
type VariantListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	QCStatus  string
	OnlyStock bool
	Search    string
}

// NotificationListFilter 查询付款请求通知列表的过滤条件
type NotificationListFilter struct {
	Page       int
	PageSize   int
	OrderID    uint
	SenderID   uint
	ReceiverID uint
	Status     string
	UnreadOnly bool
}

// SellingListFilter 查询销售流水列表的过滤条件
type SellingListFilter struct {
	Page       int
	PageSize   int
	VariantID  uint
	EmployeeID uint
	SoldFrom   *time.Time
	SoldTo     *time.Time
}

// MemoListFilter 查询备忘单列表的过滤条件
type MemoListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// QualityCheckListFilter 查询质检记录列表的过滤条件
type QualityCheckListFilter struct {
	Page       int
	PageSize   int
	TargetType string
	TargetID   uint
	EmployeeID uint
	Status     string
}

// EmployeeListFilter 查询员工列表的过滤条件
type EmployeeListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}
