package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/provider"
	"github.com/gehna-next/internal/queue"
	"github.com/gehna-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPaymentRequestEmail, c.handlePaymentRequestEmail)
	mux.HandleFunc(queue.TaskOrderReceiptEmail, c.handleOrderReceiptEmail)
}

func (c *Consumer) handlePaymentRequestEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_request_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PaymentRequestEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payment_request_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.NotificationID == 0 {
		logger.Debugw("worker_payment_request_email_skip_invalid_payload", "notification_id", payload.NotificationID)
		return nil
	}
	notification, err := c.NotificationRepo.GetByID(payload.NotificationID)
	if err != nil {
		logger.Warnw("worker_payment_request_email_fetch_failed", "notification_id", payload.NotificationID, "error", err)
		return err
	}
	if notification == nil || notification.Order == nil {
		logger.Debugw("worker_payment_request_email_skip_not_found", "notification_id", payload.NotificationID)
		return nil
	}

	sender, err := c.UserRepo.GetByID(notification.SenderID)
	if err != nil {
		logger.Warnw("worker_payment_request_email_fetch_sender_failed", "notification_id", notification.ID, "error", err)
		return err
	}
	senderName := ""
	if sender != nil {
		senderName = sender.DisplayName
		if senderName == "" {
			senderName = sender.Username
		}
	}

	input := service.PaymentRequestEmailInput{
		OrderNo:      notification.Order.OrderNo,
		SenderName:   senderName,
		TokenPayment: notification.TokenPayment,
		TotalPrice:   notification.Order.TotalPrice,
		Currency:     notification.Order.Currency,
		Message:      notification.Message,
	}

	admins, err := c.UserRepo.ListAdmins()
	if err != nil {
		logger.Warnw("worker_payment_request_email_fetch_admins_failed", "notification_id", notification.ID, "error", err)
		return err
	}
	var lastErr error
	sent := 0
	for _, admin := range admins {
		if !notification.ReceiverIDs.Contains(admin.ID) {
			continue
		}
		email := strings.TrimSpace(admin.Email)
		if email == "" {
			continue
		}
		if err := c.EmailService.SendPaymentRequestEmail(email, input); err != nil {
			if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
				logger.Debugw("worker_payment_request_email_skip_disabled", "notification_id", notification.ID)
				return nil
			}
			logger.Warnw("worker_payment_request_email_send_failed",
				"notification_id", notification.ID,
				"receiver_email", email,
				"error", err,
			)
			lastErr = err
			continue
		}
		sent++
	}
	logger.Infow("worker_payment_request_email_done", "notification_id", notification.ID, "sent", sent)
	return lastErr
}

func (c *Consumer) handleOrderReceiptEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_receipt_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderReceiptEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_receipt_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_receipt_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_receipt_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_receipt_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_receipt_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	receiverEmail := ""
	if user != nil {
		receiverEmail = strings.TrimSpace(user.Email)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_receipt_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	input := service.OrderReceiptEmailInput{
		OrderNo:          order.OrderNo,
		TotalPrice:       order.TotalPrice,
		Currency:         order.Currency,
		GatewayPaymentID: order.GatewayPaymentID,
	}
	if err := c.EmailService.SendOrderReceiptEmail(receiverEmail, input); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_receipt_email_skip_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_receipt_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}
