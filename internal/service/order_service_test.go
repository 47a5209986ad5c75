package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.Selling{},
		&models.Memo{},
		&models.MemoDetail{},
		&models.QualityCheck{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func createTestVariant(t *testing.T, db *gorm.DB, barcode string, price int64, quantity int, inStock bool) *models.ProductVariant {
	t.Helper()
	product := models.Product{Name: "Gold Ring", Category: "ring", IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		Barcode:     barcode,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Quantity:    quantity,
		IsStock:     inStock,
		QCStatus:    constants.QCStatusApproved,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return &variant
}

func newTestOrderService(db *gorm.DB) *OrderService {
	cfg := &config.Config{}
	cfg.Order.Currency = "INR"
	return NewOrderService(cfg, repository.NewOrderRepository(db), repository.NewVariantRepository(db))
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	db := setupServiceTestDB(t, "order_service_snapshot")
	variant := createTestVariant(t, db, "RING-001", 28500, 5, true)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:       1,
		CustomerName: "Anita Mehta",
		Items: []OrderItemInput{
			{VariantID: variant.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, constants.OrderNoPrefix) {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if len(order.OrderNo) != len(constants.OrderNoPrefix)+8 {
		t.Fatalf("unexpected order no length: %s", order.OrderNo)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.Currency != "INR" {
		t.Fatalf("expected INR currency, got %s", order.Currency)
	}
	if !order.TotalPrice.Decimal.Equal(decimal.NewFromInt(57000)) {
		t.Fatalf("expected total 57000, got %s", order.TotalPrice.String())
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	if !order.Items[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(28500)) {
		t.Fatalf("unexpected unit price snapshot: %s", order.Items[0].UnitPrice.String())
	}

	// 下单不扣库存
	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.Quantity != 5 {
		t.Fatalf("expected quantity unchanged, got %d", reloaded.Quantity)
	}
}

func TestCreateOrderRejectsVariantNotInStock(t *testing.T) {
	db := setupServiceTestDB(t, "order_service_not_in_stock")
	variant := createTestVariant(t, db, "RING-002", 10000, 3, false)
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(CreateOrderInput{
		UserID: 1,
		Items:  []OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrVariantNotInStock) {
		t.Fatalf("expected variant not in stock, got: %v", err)
	}
}

func TestCreateOrderMergesDuplicateItems(t *testing.T) {
	db := setupServiceTestDB(t, "order_service_duplicate")
	variant := createTestVariant(t, db, "RING-003", 10000, 5, true)
	other := createTestVariant(t, db, "RING-004", 2000, 5, true)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID: 1,
		Items: []OrderItemInput{
			{VariantID: variant.ID, Quantity: 1},
			{VariantID: other.ID, Quantity: 1},
			{VariantID: variant.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	// 同一变体的重复条目合并为一行，数量相加
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items after merge, got %d", len(order.Items))
	}
	if order.Items[0].VariantID != variant.ID || order.Items[0].Quantity != 3 {
		t.Fatalf("unexpected merged item: %+v", order.Items[0])
	}
	if !order.Items[0].TotalPrice.Decimal.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("unexpected merged line total: %s", order.Items[0].TotalPrice.String())
	}
	if !order.TotalPrice.Decimal.Equal(decimal.NewFromInt(32000)) {
		t.Fatalf("expected total 32000, got %s", order.TotalPrice.String())
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	db := setupServiceTestDB(t, "order_service_empty")
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(CreateOrderInput{UserID: 1})
	if !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected invalid order item, got: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := setupServiceTestDB(t, "order_service_status")
	svc := newTestOrderService(db)

	_, err := svc.UpdateStatus(1, "teleported")
	if !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected invalid status error, got: %v", err)
	}
}
