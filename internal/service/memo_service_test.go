package service

import (
	"errors"
	"testing"

	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"

	"gorm.io/gorm"
)

func newTestMemoService(db *gorm.DB) *MemoService {
	return NewMemoService(repository.NewMemoRepository(db), repository.NewVariantRepository(db))
}

func TestCreateMemoLinksDetailsToVariants(t *testing.T) {
	db := setupServiceTestDB(t, "memo_create")
	v1 := createTestVariant(t, db, "MEMO-001", 1000, 1, false)
	v2 := createTestVariant(t, db, "MEMO-002", 2000, 1, false)
	svc := newTestMemoService(db)

	memo, err := svc.CreateMemo(CreateMemoInput{
		JangadNumber: "JG-2026-100",
		PartyName:    "测试供应商",
		Details: []MemoDetailInput{
			{VariantID: v1.ID, Description: "戒指"},
			{VariantID: v2.ID, Description: "手镯", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateMemo error: %v", err)
	}
	if memo.Status != constants.MemoStatusOpen {
		t.Fatalf("expected open memo, got %s", memo.Status)
	}

	details, err := svc.ListMemoDetails(memo.ID)
	if err != nil {
		t.Fatalf("ListMemoDetails error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}
	if details[0].VariantID != v1.ID || details[1].VariantID != v2.ID {
		t.Fatalf("details not linked to variants: %+v", details)
	}
	for _, detail := range details {
		if detail.QCStatus != constants.QCStatusPending {
			t.Fatalf("expected pending detail, got %s", detail.QCStatus)
		}
	}
	if details[0].Quantity != 1 || details[1].Quantity != 2 {
		t.Fatalf("unexpected quantities: %d/%d", details[0].Quantity, details[1].Quantity)
	}
}

func TestCreateMemoRejectsUnknownVariant(t *testing.T) {
	db := setupServiceTestDB(t, "memo_unknown_variant")
	svc := newTestMemoService(db)

	_, err := svc.CreateMemo(CreateMemoInput{
		JangadNumber: "JG-2026-101",
		Details:      []MemoDetailInput{{VariantID: 99999, Description: "戒指"}},
	})
	if !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected variant not found, got: %v", err)
	}
}

func TestCreateMemoRejectsDuplicateJangadNumber(t *testing.T) {
	db := setupServiceTestDB(t, "memo_duplicate_jangad")
	variant := createTestVariant(t, db, "MEMO-003", 1000, 1, false)
	svc := newTestMemoService(db)

	input := CreateMemoInput{
		JangadNumber: "JG-2026-102",
		Details:      []MemoDetailInput{{VariantID: variant.ID, Description: "戒指"}},
	}
	if _, err := svc.CreateMemo(input); err != nil {
		t.Fatalf("CreateMemo error: %v", err)
	}
	if _, err := svc.CreateMemo(input); !errors.Is(err, ErrMemoNumberExists) {
		t.Fatalf("expected jangad number exists, got: %v", err)
	}
}

func TestUpdateMemoPartialFields(t *testing.T) {
	db := setupServiceTestDB(t, "memo_update")
	variant := createTestVariant(t, db, "MEMO-004", 1000, 1, false)
	svc := newTestMemoService(db)

	memo, err := svc.CreateMemo(CreateMemoInput{
		JangadNumber: "JG-2026-103",
		PartyName:    "旧供应商",
		Remark:       "原始备注",
		Details:      []MemoDetailInput{{VariantID: variant.ID, Description: "戒指"}},
	})
	if err != nil {
		t.Fatalf("CreateMemo error: %v", err)
	}

	newParty := "新供应商"
	updated, err := svc.UpdateMemo(memo.ID, UpdateMemoInput{PartyName: &newParty})
	if err != nil {
		t.Fatalf("UpdateMemo error: %v", err)
	}
	if updated.PartyName != "新供应商" {
		t.Fatalf("expected updated party name, got %s", updated.PartyName)
	}
	// 未提供的字段不变更
	if updated.Remark != "原始备注" {
		t.Fatalf("remark must stay unchanged, got %s", updated.Remark)
	}

	if _, err := svc.UpdateMemo(99999, UpdateMemoInput{PartyName: &newParty}); !errors.Is(err, ErrMemoNotFound) {
		t.Fatalf("expected memo not found, got: %v", err)
	}
}

func TestDeleteMemoRemovesDetails(t *testing.T) {
	db := setupServiceTestDB(t, "memo_delete")
	variant := createTestVariant(t, db, "MEMO-005", 1000, 1, false)
	svc := newTestMemoService(db)

	memo, err := svc.CreateMemo(CreateMemoInput{
		JangadNumber: "JG-2026-104",
		Details:      []MemoDetailInput{{VariantID: variant.ID, Description: "戒指"}},
	})
	if err != nil {
		t.Fatalf("CreateMemo error: %v", err)
	}

	if err := svc.DeleteMemo(memo.ID); err != nil {
		t.Fatalf("DeleteMemo error: %v", err)
	}
	if _, err := svc.GetMemo(memo.ID); !errors.Is(err, ErrMemoNotFound) {
		t.Fatalf("expected memo not found after delete, got: %v", err)
	}
	var count int64
	if err := db.Model(&models.MemoDetail{}).Where("memo_id = ?", memo.ID).Count(&count).Error; err != nil {
		t.Fatalf("count details failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected details removed, got %d", count)
	}

	if err := svc.DeleteMemo(memo.ID); !errors.Is(err, ErrMemoNotFound) {
		t.Fatalf("expected memo not found on second delete, got: %v", err)
	}
}

func TestCloseMemoIdempotent(t *testing.T) {
	db := setupServiceTestDB(t, "memo_close")
	variant := createTestVariant(t, db, "MEMO-006", 1000, 1, false)
	svc := newTestMemoService(db)

	memo, err := svc.CreateMemo(CreateMemoInput{
		JangadNumber: "JG-2026-105",
		Details:      []MemoDetailInput{{VariantID: variant.ID, Description: "戒指"}},
	})
	if err != nil {
		t.Fatalf("CreateMemo error: %v", err)
	}

	closed, err := svc.CloseMemo(memo.ID)
	if err != nil {
		t.Fatalf("CloseMemo error: %v", err)
	}
	if closed.Status != constants.MemoStatusClosed {
		t.Fatalf("expected closed, got %s", closed.Status)
	}
	again, err := svc.CloseMemo(memo.ID)
	if err != nil {
		t.Fatalf("second CloseMemo error: %v", err)
	}
	if again.Status != constants.MemoStatusClosed {
		t.Fatalf("expected closed on repeat, got %s", again.Status)
	}
}
