package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestNotificationService(db *gorm.DB) *NotificationService {
	cfg := &config.Config{}
	cfg.Order.Currency = "INR"
	return NewNotificationService(
		cfg,
		repository.NewNotificationRepository(db),
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
}

func createTestAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x", IsAdmin: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return &user
}

func createTestOrder(t *testing.T, db *gorm.DB, orderNo string, userID uint, total int64) *models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:    orderNo,
		UserID:     userID,
		Status:     constants.OrderStatusPending,
		Currency:   "INR",
		TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return &order
}

func TestParseApprovalDuration(t *testing.T) {
	cases := []struct {
		raw     string
		seconds int64
		wantErr bool
	}{
		{"24:00:00", 86400, false},
		{"00:30:00", 1800, false},
		{"01:02:03", 3723, false},
		{"00:00:00", 0, true},
		{"24:00", 0, true},
		{"aa:bb:cc", 0, true},
		{"00:61:00", 0, true},
		{"00:00:-5", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := parseApprovalDuration(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidDuration) {
				t.Fatalf("%s: expected invalid duration, got: %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.raw, err)
		}
		if got != tc.seconds {
			t.Fatalf("%s: expected %d seconds, got %d", tc.raw, tc.seconds, got)
		}
	}
}

func TestSendPaymentRequestTokenAndReceivers(t *testing.T) {
	db := setupServiceTestDB(t, "notification_send")
	admin1 := createTestAdmin(t, db, "admin1")
	admin2 := createTestAdmin(t, db, "admin2")
	order := createTestOrder(t, db, "ORD-TEST0001", 7, 1000)
	svc := newTestNotificationService(db)

	notification, err := svc.SendPaymentRequest(SendPaymentRequestInput{
		OrderID:  order.ID,
		SenderID: 7,
		Message:  "please approve",
	})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}
	if !notification.TokenPayment.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected token payment 300, got %s", notification.TokenPayment.String())
	}
	if len(notification.ReceiverIDs) != 2 {
		t.Fatalf("expected 2 receivers, got %d", len(notification.ReceiverIDs))
	}
	if !notification.ReceiverIDs.Contains(admin1.ID) || !notification.ReceiverIDs.Contains(admin2.ID) {
		t.Fatalf("unexpected receivers: %v", notification.ReceiverIDs)
	}
	if notification.Status != constants.NotificationStatusPending {
		t.Fatalf("expected pending, got %s", notification.Status)
	}

	// 付款窗口在批准前不得开启
	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.IsApproved || reloaded.ApprovalWindowSeconds != 0 {
		t.Fatalf("order must stay unapproved before decision, got %+v", reloaded)
	}
}

func TestSendPaymentRequestRejectsNonOwner(t *testing.T) {
	db := setupServiceTestDB(t, "notification_non_owner")
	createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0002", 7, 500)
	svc := newTestNotificationService(db)

	if _, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 8}); !errors.Is(err, ErrNotOrderOwner) {
		t.Fatalf("expected not order owner, got: %v", err)
	}
}

func TestSendPaymentRequestRequiresAdminReceivers(t *testing.T) {
	db := setupServiceTestDB(t, "notification_no_admins")
	order := createTestOrder(t, db, "ORD-TEST0003", 7, 500)
	svc := newTestNotificationService(db)

	if _, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7}); !errors.Is(err, ErrNoAdminUsers) {
		t.Fatalf("expected no admin users, got: %v", err)
	}
}

func TestSendPaymentRequestRejectsDuplicatePending(t *testing.T) {
	db := setupServiceTestDB(t, "notification_duplicate")
	createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0004", 7, 500)
	svc := newTestNotificationService(db)

	if _, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7}); err != nil {
		t.Fatalf("first SendPaymentRequest error: %v", err)
	}
	if _, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7}); !errors.Is(err, ErrDuplicatePending) {
		t.Fatalf("expected duplicate pending, got: %v", err)
	}
}

func TestApproveOpensPaymentWindow(t *testing.T) {
	db := setupServiceTestDB(t, "notification_approve")
	admin := createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0005", 7, 500)
	svc := newTestNotificationService(db)

	notification, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}

	decided, err := svc.Approve(notification.ID, admin.ID, "24:00:00")
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if decided.Status != constants.NotificationStatusApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if decided.DecidedBy == nil || *decided.DecidedBy != admin.ID {
		t.Fatalf("unexpected decided_by: %v", decided.DecidedBy)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if !reloaded.IsApproved || reloaded.ApprovedAt == nil {
		t.Fatalf("expected order approved with anchor, got %+v", reloaded)
	}
	if reloaded.ApprovalWindowSeconds != 86400 {
		t.Fatalf("expected window 86400, got %d", reloaded.ApprovalWindowSeconds)
	}
	if !reloaded.PaymentWindowOpen(time.Now()) {
		t.Fatalf("expected payment window open right after approval")
	}

	// 已处理的请求不可再次裁决
	if _, err := svc.Decline(notification.ID, admin.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected already decided, got: %v", err)
	}
}

func TestApproveRejectsInvalidDuration(t *testing.T) {
	db := setupServiceTestDB(t, "notification_bad_duration")
	admin := createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0006", 7, 500)
	svc := newTestNotificationService(db)

	notification, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}

	for _, raw := range []string{"", "99:99", "00:00:00"} {
		if _, err := svc.Approve(notification.ID, admin.ID, raw); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("%q: expected invalid duration, got: %v", raw, err)
		}
	}

	var reloadedOrder models.Order
	if err := db.First(&reloadedOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloadedOrder.IsApproved || reloadedOrder.ApprovalWindowSeconds != 0 {
		t.Fatalf("order must stay unapproved after invalid duration, got %+v", reloadedOrder)
	}
	var reloaded models.Notification
	if err := db.First(&reloaded, notification.ID).Error; err != nil {
		t.Fatalf("reload notification failed: %v", err)
	}
	if reloaded.Status != constants.NotificationStatusPending {
		t.Fatalf("notification must stay pending, got %s", reloaded.Status)
	}
}

func TestDecideRejectsNonReceiver(t *testing.T) {
	db := setupServiceTestDB(t, "notification_non_receiver")
	createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0007", 7, 500)
	svc := newTestNotificationService(db)

	notification, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}

	if _, err := svc.Approve(notification.ID, 999, "24:00:00"); !errors.Is(err, ErrNotReceiver) {
		t.Fatalf("expected not receiver, got: %v", err)
	}
	// 发送人只能撤回，不能批准
	if _, err := svc.Approve(notification.ID, 7, "24:00:00"); !errors.Is(err, ErrNotReceiver) {
		t.Fatalf("expected not receiver for sender approve, got: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.IsApproved {
		t.Fatalf("order must stay unapproved after rejected decision")
	}
}

func TestSenderMayWithdrawPendingRequest(t *testing.T) {
	db := setupServiceTestDB(t, "notification_withdraw")
	createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0008", 7, 500)
	svc := newTestNotificationService(db)

	notification, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}

	// 非发送人且非接收人不可撤回
	if _, err := svc.Decline(notification.ID, 8); !errors.Is(err, ErrNotReceiver) {
		t.Fatalf("expected not receiver, got: %v", err)
	}

	withdrawn, err := svc.Decline(notification.ID, 7)
	if err != nil {
		t.Fatalf("sender Decline error: %v", err)
	}
	if withdrawn.Status != constants.NotificationStatusDeclined {
		t.Fatalf("expected declined, got %s", withdrawn.Status)
	}
	if withdrawn.DecidedBy == nil || *withdrawn.DecidedBy != 7 {
		t.Fatalf("unexpected decided_by: %v", withdrawn.DecidedBy)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.IsApproved || reloaded.ApprovedAt != nil {
		t.Fatalf("withdrawn request must not open payment window")
	}
}

func TestDeclineDoesNotOpenWindow(t *testing.T) {
	db := setupServiceTestDB(t, "notification_decline")
	admin := createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0009", 7, 500)
	svc := newTestNotificationService(db)

	notification, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}
	if _, err := svc.Decline(notification.ID, admin.ID); err != nil {
		t.Fatalf("Decline error: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.IsApproved || reloaded.ApprovedAt != nil {
		t.Fatalf("declined request must not open payment window")
	}
}

func TestMarkReadOnlySender(t *testing.T) {
	db := setupServiceTestDB(t, "notification_mark_read")
	createTestAdmin(t, db, "admin1")
	order := createTestOrder(t, db, "ORD-TEST0010", 7, 500)
	svc := newTestNotificationService(db)

	notification, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order.ID, SenderID: 7})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}

	if err := svc.MarkRead(notification.ID, 8); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got: %v", err)
	}
	if err := svc.MarkRead(notification.ID, 7); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}

	var reloaded models.Notification
	if err := db.First(&reloaded, notification.ID).Error; err != nil {
		t.Fatalf("reload notification failed: %v", err)
	}
	if !reloaded.IsRead {
		t.Fatalf("expected is_read true")
	}
}

func TestUnreadCountsPerRole(t *testing.T) {
	db := setupServiceTestDB(t, "notification_unread")
	admin := createTestAdmin(t, db, "admin1")
	order1 := createTestOrder(t, db, "ORD-TEST0011", 7, 500)
	order2 := createTestOrder(t, db, "ORD-TEST0012", 7, 800)
	svc := newTestNotificationService(db)

	n1, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order1.ID, SenderID: 7})
	if err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}
	if _, err := svc.SendPaymentRequest(SendPaymentRequestInput{OrderID: order2.ID, SenderID: 7}); err != nil {
		t.Fatalf("SendPaymentRequest error: %v", err)
	}

	senderCount, err := svc.UnreadCountForSender(7)
	if err != nil {
		t.Fatalf("UnreadCountForSender error: %v", err)
	}
	if senderCount != 2 {
		t.Fatalf("expected sender unread 2, got %d", senderCount)
	}

	adminCount, err := svc.UnreadCountForReceiver(admin.ID)
	if err != nil {
		t.Fatalf("UnreadCountForReceiver error: %v", err)
	}
	if adminCount != 2 {
		t.Fatalf("expected admin unread 2, got %d", adminCount)
	}

	if err := svc.MarkRead(n1.ID, 7); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if err := svc.MarkAdminRead(n1.ID, admin.ID); err != nil {
		t.Fatalf("MarkAdminRead error: %v", err)
	}

	if senderCount, _ = svc.UnreadCountForSender(7); senderCount != 1 {
		t.Fatalf("expected sender unread 1, got %d", senderCount)
	}
	if adminCount, _ = svc.UnreadCountForReceiver(admin.ID); adminCount != 1 {
		t.Fatalf("expected admin unread 1, got %d", adminCount)
	}

	// 其他用户与该请求无关，未读数为 0
	if otherCount, _ := svc.UnreadCountForSender(8); otherCount != 0 {
		t.Fatalf("expected other sender unread 0, got %d", otherCount)
	}
}
