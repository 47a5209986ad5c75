package service

import "errors"

// 服务层哨兵错误，处理器按错误映射表转为响应码。
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotOrderOwner        = errors.New("not the order owner")
	ErrInvalidOrderItem     = errors.New("invalid order item")
	ErrOrderAlreadyPaid     = errors.New("order already paid")
	ErrOrderNotApproved     = errors.New("order not approved")
	ErrPaymentWindowClosed  = errors.New("payment window closed")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrSignatureInvalid     = errors.New("payment signature invalid")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrGatewayOrderExists   = errors.New("gateway order already created")
	ErrVariantNotFound      = errors.New("product variant not found")
	ErrVariantNotInStock    = errors.New("product variant not in stock")
	ErrProductNotFound      = errors.New("product not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrMemoNotFound         = errors.New("memo not found")
	ErrMemoDetailNotFound   = errors.New("memo detail not found")
	ErrMemoNumberExists     = errors.New("jangad number already exists")
	ErrQualityCheckNotFound = errors.New("quality check not found")
	ErrAlreadyResolved      = errors.New("quality check already resolved")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicatePending     = errors.New("pending payment request already exists")
	ErrNoAdminUsers         = errors.New("no admin users to receive the request")
	ErrAlreadyDecided       = errors.New("payment request already decided")
	ErrInvalidDuration      = errors.New("invalid duration format")
	ErrNotReceiver          = errors.New("not a receiver of this request")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPermissionDenied     = errors.New("permission denied")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
