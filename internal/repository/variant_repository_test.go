package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func seedVariant(t *testing.T, db *gorm.DB, barcode string, quantity int, inStock bool) *models.ProductVariant {
	t.Helper()
	product := models.Product{Name: "测试商品", Category: "ring", IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		Barcode:     barcode,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Quantity:    quantity,
		IsStock:     inStock,
		QCStatus:    constants.QCStatusApproved,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return &variant
}

func TestDecrementStockConditional(t *testing.T) {
	db := setupRepositoryTestDB(t, "variant_decrement")
	variant := seedVariant(t, db, "DEC-001", 5, true)
	repo := NewVariantRepository(db)

	affected, err := repo.DecrementStock(variant.ID, 5)
	if err != nil {
		t.Fatalf("DecrementStock error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	reloaded, err := repo.GetByID(variant.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if reloaded.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", reloaded.Quantity)
	}

	// 余量不足时不生效也不报错
	affected, err = repo.DecrementStock(variant.ID, 1)
	if err != nil {
		t.Fatalf("DecrementStock error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows on empty stock, got %d", affected)
	}
	reloaded, err = repo.GetByID(variant.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if reloaded.Quantity != 0 {
		t.Fatalf("quantity must not go negative, got %d", reloaded.Quantity)
	}
}

func TestDecrementStockRejectsInvalidParams(t *testing.T) {
	db := setupRepositoryTestDB(t, "variant_params")
	repo := NewVariantRepository(db)

	if _, err := repo.DecrementStock(0, 1); err == nil {
		t.Fatalf("expected error for zero variant id")
	}
	if _, err := repo.DecrementStock(1, 0); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if _, err := repo.DecrementStock(1, -1); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
}

func TestVariantListOnlyStock(t *testing.T) {
	db := setupRepositoryTestDB(t, "variant_list")
	seedVariant(t, db, "LIST-001", 3, true)
	seedVariant(t, db, "LIST-002", 0, true)
	seedVariant(t, db, "LIST-003", 2, false)
	repo := NewVariantRepository(db)

	variants, total, err := repo.List(VariantListFilter{OnlyStock: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(variants) != 1 {
		t.Fatalf("expected 1 sellable variant, got total %d len %d", total, len(variants))
	}
	if variants[0].Barcode != "LIST-001" {
		t.Fatalf("unexpected variant: %s", variants[0].Barcode)
	}
}
