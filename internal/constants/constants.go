package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 付款请求通知状态常量
const (
	NotificationStatusPending  = "pending"
	NotificationStatusApproved = "approved"
	NotificationStatusDeclined = "declined"
)

// 质检状态常量
const (
	QCStatusPending   = "pending"
	QCStatusInProcess = "inprocess"
	QCStatusApproved  = "approved"
	QCStatusRejected  = "rejected"
)

// 质检对象类型常量
const (
	QCTargetMemoDetail = "memo_detail"
	QCTargetVariant    = "variant"
)

// 备忘单状态常量
const (
	MemoStatusOpen   = "open"
	MemoStatusClosed = "closed"
)

// 订单编号前缀
const OrderNoPrefix = "ORD-"

// 付款请求令牌金额占订单总额的比例
const TokenPaymentRate = "0.30"

// 默认结算币种
const DefaultCurrency = "INR"

// 异步任务类型常量
const (
	TaskPaymentRequestEmail = "email:payment_request"
	TaskOrderReceiptEmail   = "email:order_receipt"
)

// 异步队列名称
const QueueDefault = "default"
