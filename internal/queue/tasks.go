package queue

import (
	"encoding/json"

	"github.com/gehna-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentRequestEmail 付款请求邮件通知任务
	TaskPaymentRequestEmail = constants.TaskPaymentRequestEmail
	// TaskOrderReceiptEmail 支付回执邮件任务
	TaskOrderReceiptEmail = constants.TaskOrderReceiptEmail
)

// PaymentRequestEmailPayload 付款请求邮件任务载荷
type PaymentRequestEmailPayload struct {
	NotificationID uint `json:"notification_id"`
	OrderID        uint `json:"order_id"`
}

// OrderReceiptEmailPayload 支付回执邮件任务载荷
type OrderReceiptEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// NewPaymentRequestEmailTask 创建付款请求邮件任务
func NewPaymentRequestEmailTask(payload PaymentRequestEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentRequestEmail, body), nil
}

// NewOrderReceiptEmailTask 创建支付回执邮件任务
func NewOrderReceiptEmailTask(payload OrderReceiptEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderReceiptEmail, body), nil
}
