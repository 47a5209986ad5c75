package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/payment/razorpay"
	"github.com/gehna-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testGatewaySecret = "test_key_secret"

func newTestPaymentService(db *gorm.DB) *PaymentService {
	cfg := &config.Config{}
	cfg.Order.Currency = "INR"
	cfg.Razorpay.KeyID = "rzp_test_key"
	cfg.Razorpay.KeySecret = testGatewaySecret
	return NewPaymentService(
		cfg,
		repository.NewOrderRepository(db),
		repository.NewVariantRepository(db),
		repository.NewSellingRepository(db),
		nil,
	)
}

// createApprovedOrder 构造已审批并带网关订单号的待支付订单
func createApprovedOrder(t *testing.T, db *gorm.DB, variant *models.ProductVariant, quantity int, approvedAt time.Time, windowSeconds int64) *models.Order {
	t.Helper()
	unit := variant.PriceAmount
	total := models.NewMoneyFromDecimal(unit.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
	seq := fmt.Sprintf("%s_%d", variant.Barcode, time.Now().UnixNano())
	order := models.Order{
		OrderNo:               "ORD-PAY-" + seq,
		UserID:                1,
		Status:                constants.OrderStatusPending,
		Currency:              "INR",
		TotalPrice:            total,
		ApprovalWindowSeconds: windowSeconds,
		IsApproved:            true,
		ApprovedAt:            &approvedAt,
		GatewayOrderID:        "order_gw_" + seq,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:    order.ID,
		VariantID:  variant.ID,
		TitleSnap:  "测试商品",
		UnitPrice:  unit,
		Quantity:   quantity,
		TotalPrice: total,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	return &order
}

func signedVerifyInput(gatewayOrderID, gatewayPaymentID string) VerifyPaymentInput {
	return VerifyPaymentInput{
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		Signature:        razorpay.SignContent(testGatewaySecret, gatewayOrderID+"|"+gatewayPaymentID),
	}
}

func TestVerifyPaymentCompletesOrder(t *testing.T) {
	db := setupServiceTestDB(t, "payment_verify")
	variant := createTestVariant(t, db, "PAY-001", 28500, 5, true)
	order := createApprovedOrder(t, db, variant, 2, time.Now(), 86400)
	svc := newTestPaymentService(db)

	employeeID := uint(3)
	paid, err := svc.VerifyPayment(signedVerifyInput(order.GatewayOrderID, "pay_123"), &employeeID)
	if err != nil {
		t.Fatalf("VerifyPayment error: %v", err)
	}
	if !paid.IsPaid || paid.PaidAt == nil {
		t.Fatalf("expected order marked paid")
	}
	if paid.GatewayPaymentID != "pay_123" {
		t.Fatalf("unexpected gateway payment id: %s", paid.GatewayPaymentID)
	}

	var reloadedVariant models.ProductVariant
	if err := db.First(&reloadedVariant, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloadedVariant.Quantity != 3 {
		t.Fatalf("expected quantity 3 after decrement, got %d", reloadedVariant.Quantity)
	}

	var sellings []models.Selling
	if err := db.Where("order_id = ?", order.ID).Find(&sellings).Error; err != nil {
		t.Fatalf("load sellings failed: %v", err)
	}
	if len(sellings) != 1 {
		t.Fatalf("expected 1 selling record, got %d", len(sellings))
	}
	if sellings[0].Quantity != 2 || sellings[0].VariantID != variant.ID {
		t.Fatalf("unexpected selling record: %+v", sellings[0])
	}
	if sellings[0].EmployeeID == nil || *sellings[0].EmployeeID != employeeID {
		t.Fatalf("unexpected selling employee: %v", sellings[0].EmployeeID)
	}
	if !sellings[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(28500)) {
		t.Fatalf("unexpected selling unit price: %s", sellings[0].UnitPrice.String())
	}
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	db := setupServiceTestDB(t, "payment_bad_signature")
	variant := createTestVariant(t, db, "PAY-002", 1000, 5, true)
	order := createApprovedOrder(t, db, variant, 1, time.Now(), 86400)
	svc := newTestPaymentService(db)

	_, err := svc.VerifyPayment(VerifyPaymentInput{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "deadbeef",
	}, nil)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid, got: %v", err)
	}

	var reloadedVariant models.ProductVariant
	if err := db.First(&reloadedVariant, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloadedVariant.Quantity != 5 {
		t.Fatalf("stock must not change on failed verification, got %d", reloadedVariant.Quantity)
	}
	var reloadedOrder models.Order
	if err := db.First(&reloadedOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloadedOrder.IsPaid {
		t.Fatalf("order must stay unpaid on failed verification")
	}
}

func TestVerifyPaymentChecksStockBeforeSignature(t *testing.T) {
	db := setupServiceTestDB(t, "payment_stock_precheck")
	variant := createTestVariant(t, db, "PAY-003", 1000, 1, true)
	order := createApprovedOrder(t, db, variant, 2, time.Now(), 86400)
	svc := newTestPaymentService(db)

	// 库存不足时签名无效也应返回库存错误
	_, err := svc.VerifyPayment(VerifyPaymentInput{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "deadbeef",
	}, nil)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
}

func TestVerifyPaymentRejectsClosedWindow(t *testing.T) {
	db := setupServiceTestDB(t, "payment_window")
	variant := createTestVariant(t, db, "PAY-004", 1000, 5, true)
	order := createApprovedOrder(t, db, variant, 1, time.Now().Add(-25*time.Hour), 86400)
	svc := newTestPaymentService(db)

	_, err := svc.VerifyPayment(signedVerifyInput(order.GatewayOrderID, "pay_123"), nil)
	if !errors.Is(err, ErrPaymentWindowClosed) {
		t.Fatalf("expected window closed, got: %v", err)
	}
}

func TestVerifyPaymentRejectsAlreadyPaid(t *testing.T) {
	db := setupServiceTestDB(t, "payment_already_paid")
	variant := createTestVariant(t, db, "PAY-005", 1000, 5, true)
	order := createApprovedOrder(t, db, variant, 1, time.Now(), 86400)
	svc := newTestPaymentService(db)

	if _, err := svc.VerifyPayment(signedVerifyInput(order.GatewayOrderID, "pay_123"), nil); err != nil {
		t.Fatalf("first VerifyPayment error: %v", err)
	}
	if _, err := svc.VerifyPayment(signedVerifyInput(order.GatewayOrderID, "pay_456"), nil); !errors.Is(err, ErrOrderAlreadyPaid) {
		t.Fatalf("expected already paid, got: %v", err)
	}
}

func TestVerifyPaymentExhaustsStockExactly(t *testing.T) {
	db := setupServiceTestDB(t, "payment_exact_stock")
	variant := createTestVariant(t, db, "PAY-006", 1000, 5, true)
	order := createApprovedOrder(t, db, variant, 5, time.Now(), 86400)
	svc := newTestPaymentService(db)

	if _, err := svc.VerifyPayment(signedVerifyInput(order.GatewayOrderID, "pay_123"), nil); err != nil {
		t.Fatalf("VerifyPayment error: %v", err)
	}
	var reloadedVariant models.ProductVariant
	if err := db.First(&reloadedVariant, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloadedVariant.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", reloadedVariant.Quantity)
	}

	second := createApprovedOrder(t, db, variant, 1, time.Now(), 86400)
	if _, err := svc.VerifyPayment(signedVerifyInput(second.GatewayOrderID, "pay_456"), nil); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock on exhausted variant, got: %v", err)
	}
}

func TestCreateGatewayOrderGuards(t *testing.T) {
	db := setupServiceTestDB(t, "payment_gateway_guards")
	variant := createTestVariant(t, db, "PAY-007", 1000, 5, true)
	svc := newTestPaymentService(db)

	unapproved := models.Order{
		OrderNo:    "ORD-UNAPPROVED",
		UserID:     1,
		Status:     constants.OrderStatusPending,
		Currency:   "INR",
		TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
	}
	if err := db.Create(&unapproved).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.CreateGatewayOrder(context.Background(), unapproved.ID, 1); !errors.Is(err, ErrOrderNotApproved) {
		t.Fatalf("expected not approved, got: %v", err)
	}

	expired := createApprovedOrder(t, db, variant, 1, time.Now().Add(-25*time.Hour), 86400)
	if _, err := svc.CreateGatewayOrder(context.Background(), expired.ID, 1); !errors.Is(err, ErrPaymentWindowClosed) {
		t.Fatalf("expected window closed, got: %v", err)
	}

	if _, err := svc.CreateGatewayOrder(context.Background(), 99999, 1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found, got: %v", err)
	}
}

func TestCreateGatewayOrderRejectsNonOwner(t *testing.T) {
	db := setupServiceTestDB(t, "payment_gateway_owner")
	variant := createTestVariant(t, db, "PAY-009", 1000, 5, true)
	order := createApprovedOrder(t, db, variant, 1, time.Now(), 86400)
	svc := newTestPaymentService(db)

	if _, err := svc.CreateGatewayOrder(context.Background(), order.ID, 2); !errors.Is(err, ErrNotOrderOwner) {
		t.Fatalf("expected not order owner, got: %v", err)
	}
}

func TestCreateGatewayOrderIdempotent(t *testing.T) {
	db := setupServiceTestDB(t, "payment_gateway_idempotent")
	variant := createTestVariant(t, db, "PAY-008", 1000, 5, true)
	order := createApprovedOrder(t, db, variant, 1, time.Now(), 86400)
	svc := newTestPaymentService(db)

	// 已有网关订单号时直接复用，不再请求网关
	result, err := svc.CreateGatewayOrder(context.Background(), order.ID, 1)
	if err != nil {
		t.Fatalf("CreateGatewayOrder error: %v", err)
	}
	if result.GatewayOrderID != order.GatewayOrderID {
		t.Fatalf("expected existing gateway order id %s, got %s", order.GatewayOrderID, result.GatewayOrderID)
	}
	if result.KeyID != "rzp_test_key" {
		t.Fatalf("unexpected key id: %s", result.KeyID)
	}
	if !result.Amount.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected amount: %s", result.Amount.String())
	}
}
