package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/queue"
	"github.com/gehna-next/internal/repository"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NotificationService 付款请求通知服务
type NotificationService struct {
	cfg              *config.Config
	notificationRepo repository.NotificationRepository
	orderRepo        repository.OrderRepository
	userRepo         repository.UserRepository
	queueClient      *queue.Client
}

// NewNotificationService 创建付款请求通知服务
func NewNotificationService(
	cfg *config.Config,
	notificationRepo repository.NotificationRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	queueClient *queue.Client,
) *NotificationService {
	return &NotificationService{
		cfg:              cfg,
		notificationRepo: notificationRepo,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		queueClient:      queueClient,
	}
}

// SendPaymentRequestInput 发起付款请求输入
type SendPaymentRequestInput struct {
	OrderID  uint
	SenderID uint
	Message  string
}

// SendPaymentRequest 发起付款请求。
// 仅订单归属人可发起，令牌金额取订单总额的 30%，接收人为全体管理员。
// 同一发送人对同一订单至多一条待处理请求。
func (s *NotificationService) SendPaymentRequest(input SendPaymentRequestInput) (*models.Notification, error) {
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != input.SenderID {
		return nil, ErrNotOrderOwner
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}

	exists, err := s.notificationRepo.ExistsPending(order.ID, input.SenderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePending
	}

	receiverIDs, err := s.userRepo.ListAdminIDs()
	if err != nil {
		return nil, err
	}
	if len(receiverIDs) == 0 {
		return nil, ErrNoAdminUsers
	}

	rate, _ := decimal.NewFromString(constants.TokenPaymentRate)
	tokenPayment := models.NewMoneyFromDecimal(order.TotalPrice.Decimal.Mul(rate))

	notification := &models.Notification{
		OrderID:      order.ID,
		SenderID:     input.SenderID,
		ReceiverIDs:  models.UintList(receiverIDs),
		TokenPayment: tokenPayment,
		Message:      strings.TrimSpace(input.Message),
		Status:       constants.NotificationStatusPending,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueuePaymentRequestEmail(queue.PaymentRequestEmailPayload{
		NotificationID: notification.ID,
		OrderID:        order.ID,
	}, asynq.MaxRetry(5)); err != nil {
		logger.Warnw("payment_request_email_enqueue_failed",
			"notification_id", notification.ID,
			"order_id", order.ID,
			"error", err,
		)
	}

	logger.Infow("payment_request_sent",
		"notification_id", notification.ID,
		"order_id", order.ID,
		"sender_id", input.SenderID,
		"token_payment", tokenPayment.String(),
		"receivers", len(receiverIDs),
	)
	return notification, nil
}

// Approve 审批通过付款请求并开启付款窗口。
// 窗口时长由管理员在审批时以 HH:MM:SS 给出，自审批时间起算。
func (s *NotificationService) Approve(notificationID, adminID uint, duration string) (*models.Notification, error) {
	windowSeconds, err := parseApprovalDuration(duration)
	if err != nil {
		return nil, err
	}
	return s.decide(notificationID, adminID, constants.NotificationStatusApproved, windowSeconds)
}

// Decline 拒绝付款请求。接收人或发送人本人均可执行。
func (s *NotificationService) Decline(notificationID, actorID uint) (*models.Notification, error) {
	return s.decide(notificationID, actorID, constants.NotificationStatusDeclined, 0)
}

func (s *NotificationService) decide(notificationID, actorID uint, status string, windowSeconds int64) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	// 批准仅限接收人，拒绝另放行发送人撤回
	if !notification.ReceiverIDs.Contains(actorID) {
		if !(status == constants.NotificationStatusDeclined && notification.SenderID == actorID) {
			return nil, ErrNotReceiver
		}
	}
	if notification.Status != constants.NotificationStatusPending {
		return nil, ErrAlreadyDecided
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.notificationRepo.WithTx(tx).Update(notification.ID, map[string]interface{}{
			"status":        status,
			"is_admin_read": true,
			"decided_by":    actorID,
			"decided_at":    now,
		}); err != nil {
			return err
		}
		if status == constants.NotificationStatusApproved {
			return s.orderRepo.WithTx(tx).Update(notification.OrderID, map[string]interface{}{
				"is_approved":             true,
				"approved_at":             now,
				"approval_window_seconds": windowSeconds,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.Status = status
	notification.IsAdminRead = true
	notification.DecidedBy = &actorID
	notification.DecidedAt = &now

	logger.Infow("payment_request_decided",
		"notification_id", notification.ID,
		"order_id", notification.OrderID,
		"actor_id", actorID,
		"status", status,
		"window_seconds", windowSeconds,
	)
	return notification, nil
}

// MarkRead 发送人确认已读回执
func (s *NotificationService) MarkRead(notificationID, senderID uint) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.SenderID != senderID {
		return ErrPermissionDenied
	}
	return s.notificationRepo.Update(notificationID, map[string]interface{}{"is_read": true})
}

// MarkAdminRead 管理员标记已读
func (s *NotificationService) MarkAdminRead(notificationID, adminID uint) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if !notification.ReceiverIDs.Contains(adminID) {
		return ErrNotReceiver
	}
	return s.notificationRepo.Update(notificationID, map[string]interface{}{"is_admin_read": true})
}

// ListForSender 查询发送人的请求列表
func (s *NotificationService) ListForSender(senderID uint, page, pageSize int) ([]models.Notification, int64, error) {
	return s.notificationRepo.List(repository.NotificationListFilter{
		Page:     page,
		PageSize: pageSize,
		SenderID: senderID,
	})
}

// ListForReceiver 查询管理员收到的请求列表
func (s *NotificationService) ListForReceiver(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.notificationRepo.List(filter)
}

// UnreadCountForSender 发送人未读回执数
func (s *NotificationService) UnreadCountForSender(senderID uint) (int64, error) {
	return s.notificationRepo.CountUnreadForSender(senderID)
}

// UnreadCountForReceiver 管理员未处理已读数
func (s *NotificationService) UnreadCountForReceiver(adminID uint) (int64, error) {
	return s.notificationRepo.CountUnreadForReceiver(adminID)
}

// parseApprovalDuration 解析 HH:MM:SS 格式的窗口时长，返回秒数。
func parseApprovalDuration(raw string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return 0, ErrInvalidDuration
	}
	values := make([]int64, 3)
	for i, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, raw)
		}
		values[i] = v
	}
	if values[1] >= 60 || values[2] >= 60 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, raw)
	}
	seconds := values[0]*3600 + values[1]*60 + values[2]
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, raw)
	}
	return seconds, nil
}
