package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"

	"gorm.io/gorm"
)

func newTestQualityCheckService(db *gorm.DB) *QualityCheckService {
	return NewQualityCheckService(
		repository.NewQualityCheckRepository(db),
		repository.NewMemoRepository(db),
		repository.NewVariantRepository(db),
		repository.NewEmployeeRepository(db),
	)
}

func createTestEmployee(t *testing.T, db *gorm.DB, name string) *models.Employee {
	t.Helper()
	employee := models.Employee{Name: name, IsActive: true}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	return &employee
}

// createTestMemo 建备忘单并为每条明细配套一个待检变体
func createTestMemo(t *testing.T, db *gorm.DB, jangad string, detailCount int) *models.Memo {
	t.Helper()
	memo := models.Memo{
		JangadNumber: jangad,
		PartyName:    "测试供应商",
		Status:       constants.MemoStatusOpen,
		IssuedAt:     time.Now(),
	}
	if err := db.Create(&memo).Error; err != nil {
		t.Fatalf("create memo failed: %v", err)
	}
	for i := 0; i < detailCount; i++ {
		variant := createTestVariant(t, db, fmt.Sprintf("%s-V%d", jangad, i), 1000, 1, false)
		if err := db.Model(variant).Updates(map[string]interface{}{"qc_status": constants.QCStatusPending}).Error; err != nil {
			t.Fatalf("prepare variant failed: %v", err)
		}
		detail := models.MemoDetail{
			MemoID:      memo.ID,
			VariantID:   variant.ID,
			Description: "货品",
			Quantity:    1,
			QCStatus:    constants.QCStatusPending,
		}
		if err := db.Create(&detail).Error; err != nil {
			t.Fatalf("create memo detail failed: %v", err)
		}
	}
	return &memo
}

func TestAssignMemoFansOutPerDetail(t *testing.T) {
	db := setupServiceTestDB(t, "qc_assign_memo")
	employee := createTestEmployee(t, db, "质检员A")
	admin := createTestAdmin(t, db, "qc_admin")
	memo := createTestMemo(t, db, "JG-2026-001", 3)
	svc := newTestQualityCheckService(db)

	checks, err := svc.AssignMemo(memo.ID, employee.ID, admin.ID)
	if err != nil {
		t.Fatalf("AssignMemo error: %v", err)
	}
	if len(checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(checks))
	}
	for _, check := range checks {
		if check.TargetType != constants.QCTargetMemoDetail {
			t.Fatalf("unexpected target type: %s", check.TargetType)
		}
		if check.Status != constants.QCStatusInProcess {
			t.Fatalf("unexpected status: %s", check.Status)
		}
		if check.EmployeeID != employee.ID {
			t.Fatalf("unexpected employee: %d", check.EmployeeID)
		}
		if check.SenderID != admin.ID {
			t.Fatalf("unexpected sender: %d", check.SenderID)
		}
	}

	// 备忘单与各明细均盖章质检员工
	var reloadedMemo models.Memo
	if err := db.First(&reloadedMemo, memo.ID).Error; err != nil {
		t.Fatalf("reload memo failed: %v", err)
	}
	if reloadedMemo.QCEmployeeID == nil || *reloadedMemo.QCEmployeeID != employee.ID {
		t.Fatalf("unexpected memo qc employee: %v", reloadedMemo.QCEmployeeID)
	}
	var details []models.MemoDetail
	if err := db.Where("memo_id = ?", memo.ID).Find(&details).Error; err != nil {
		t.Fatalf("list details failed: %v", err)
	}
	for _, detail := range details {
		if detail.QCEmployeeID == nil || *detail.QCEmployeeID != employee.ID {
			t.Fatalf("detail %d missing qc employee", detail.ID)
		}
		if detail.QCStatus != constants.QCStatusInProcess {
			t.Fatalf("detail %d unexpected status: %s", detail.ID, detail.QCStatus)
		}
	}

	// 再次指派不重复生成进行中的记录
	again, err := svc.AssignMemo(memo.ID, employee.ID, admin.ID)
	if err != nil {
		t.Fatalf("second AssignMemo error: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no new checks on re-assign, got %d", len(again))
	}
	var count int64
	if err := db.Model(&models.QualityCheck{}).Count(&count).Error; err != nil {
		t.Fatalf("count checks failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 checks total, got %d", count)
	}
}

func TestAssignMemoRejectsUnknownTargets(t *testing.T) {
	db := setupServiceTestDB(t, "qc_assign_memo_guards")
	employee := createTestEmployee(t, db, "质检员A")
	memo := createTestMemo(t, db, "JG-2026-002", 1)
	svc := newTestQualityCheckService(db)

	if _, err := svc.AssignMemo(99999, employee.ID, 1); !errors.Is(err, ErrMemoNotFound) {
		t.Fatalf("expected memo not found, got: %v", err)
	}
	if _, err := svc.AssignMemo(memo.ID, 99999, 1); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected employee not found, got: %v", err)
	}
}

func TestAssignMemoDetailSingleTarget(t *testing.T) {
	db := setupServiceTestDB(t, "qc_assign_memo_detail")
	employee := createTestEmployee(t, db, "质检员A")
	admin := createTestAdmin(t, db, "qc_admin")
	memo := createTestMemo(t, db, "JG-2026-003", 2)
	svc := newTestQualityCheckService(db)

	var details []models.MemoDetail
	if err := db.Where("memo_id = ?", memo.ID).Order("id").Find(&details).Error; err != nil {
		t.Fatalf("list details failed: %v", err)
	}

	check, err := svc.AssignMemoDetail(details[0].ID, employee.ID, admin.ID)
	if err != nil {
		t.Fatalf("AssignMemoDetail error: %v", err)
	}
	if check.TargetType != constants.QCTargetMemoDetail || check.TargetID != details[0].ID {
		t.Fatalf("unexpected check: %+v", check)
	}
	if check.Status != constants.QCStatusInProcess || check.SenderID != admin.ID {
		t.Fatalf("unexpected check state: %+v", check)
	}

	// 只有被指派的明细进入质检
	var first, second models.MemoDetail
	if err := db.First(&first, details[0].ID).Error; err != nil {
		t.Fatalf("reload detail failed: %v", err)
	}
	if err := db.First(&second, details[1].ID).Error; err != nil {
		t.Fatalf("reload detail failed: %v", err)
	}
	if first.QCStatus != constants.QCStatusInProcess || first.QCEmployeeID == nil {
		t.Fatalf("assigned detail not stamped: %+v", first)
	}
	if second.QCStatus != constants.QCStatusPending || second.QCEmployeeID != nil {
		t.Fatalf("other detail must stay untouched: %+v", second)
	}

	// 幂等返回已有进行中的记录
	again, err := svc.AssignMemoDetail(details[0].ID, employee.ID, admin.ID)
	if err != nil {
		t.Fatalf("second AssignMemoDetail error: %v", err)
	}
	if again.ID != check.ID {
		t.Fatalf("expected existing check %d, got %d", check.ID, again.ID)
	}

	if _, err := svc.AssignMemoDetail(99999, employee.ID, admin.ID); !errors.Is(err, ErrMemoDetailNotFound) {
		t.Fatalf("expected memo detail not found, got: %v", err)
	}
}

func TestAssignVariantMarksInProcess(t *testing.T) {
	db := setupServiceTestDB(t, "qc_assign_variant")
	employee := createTestEmployee(t, db, "质检员A")
	variant := createTestVariant(t, db, "QC-001", 1000, 1, false)
	if err := db.Model(variant).Updates(map[string]interface{}{"qc_status": constants.QCStatusRejected}).Error; err != nil {
		t.Fatalf("prepare variant failed: %v", err)
	}
	svc := newTestQualityCheckService(db)

	check, err := svc.AssignVariant(variant.ID, employee.ID, 1)
	if err != nil {
		t.Fatalf("AssignVariant error: %v", err)
	}
	if check.Status != constants.QCStatusInProcess || check.TargetID != variant.ID {
		t.Fatalf("unexpected check: %+v", check)
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.QCStatus != constants.QCStatusInProcess {
		t.Fatalf("expected variant inprocess, got %s", reloaded.QCStatus)
	}
	if reloaded.QCEmployeeID == nil || *reloaded.QCEmployeeID != employee.ID {
		t.Fatalf("unexpected qc employee: %v", reloaded.QCEmployeeID)
	}

	// 已有进行中的记录时幂等返回
	again, err := svc.AssignVariant(variant.ID, employee.ID, 1)
	if err != nil {
		t.Fatalf("second AssignVariant error: %v", err)
	}
	if again.ID != check.ID {
		t.Fatalf("expected existing check %d, got %d", check.ID, again.ID)
	}
}

func TestAssignVariantRejectsApproved(t *testing.T) {
	db := setupServiceTestDB(t, "qc_assign_approved")
	employee := createTestEmployee(t, db, "质检员A")
	variant := createTestVariant(t, db, "QC-002", 1000, 1, true)
	svc := newTestQualityCheckService(db)

	if _, err := svc.AssignVariant(variant.ID, employee.ID, 1); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected already resolved, got: %v", err)
	}
}

func TestResolveToStockMarksVariantSellable(t *testing.T) {
	db := setupServiceTestDB(t, "qc_resolve_stock")
	employee := createTestEmployee(t, db, "质检员A")
	variant := createTestVariant(t, db, "QC-003", 1000, 1, false)
	if err := db.Model(variant).Updates(map[string]interface{}{"qc_status": constants.QCStatusRejected}).Error; err != nil {
		t.Fatalf("prepare variant failed: %v", err)
	}
	svc := newTestQualityCheckService(db)

	check, err := svc.AssignVariant(variant.ID, employee.ID, 1)
	if err != nil {
		t.Fatalf("AssignVariant error: %v", err)
	}

	resolved, err := svc.ResolveToStock(check.ID, "成色合格")
	if err != nil {
		t.Fatalf("ResolveToStock error: %v", err)
	}
	if resolved.Status != constants.QCStatusApproved || resolved.ResolvedAt == nil {
		t.Fatalf("unexpected resolved check: %+v", resolved)
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if !reloaded.IsStock || reloaded.QCStatus != constants.QCStatusApproved {
		t.Fatalf("expected sellable approved variant, got %+v", reloaded)
	}
	if reloaded.Notes != "成色合格" {
		t.Fatalf("unexpected notes: %s", reloaded.Notes)
	}

	// 已处理的记录不可再次处理
	if _, err := svc.ResolveToPurchase(check.ID, ""); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected already resolved, got: %v", err)
	}
}

func TestResolveToPurchaseBlocksSale(t *testing.T) {
	db := setupServiceTestDB(t, "qc_resolve_purchase")
	employee := createTestEmployee(t, db, "质检员A")
	variant := createTestVariant(t, db, "QC-004", 1000, 1, false)
	if err := db.Model(variant).Updates(map[string]interface{}{"qc_status": constants.QCStatusRejected, "is_stock": true}).Error; err != nil {
		t.Fatalf("prepare variant failed: %v", err)
	}
	svc := newTestQualityCheckService(db)

	check, err := svc.AssignVariant(variant.ID, employee.ID, 1)
	if err != nil {
		t.Fatalf("AssignVariant error: %v", err)
	}
	resolved, err := svc.ResolveToPurchase(check.ID, "划痕退回")
	if err != nil {
		t.Fatalf("ResolveToPurchase error: %v", err)
	}
	if resolved.Status != constants.QCStatusRejected {
		t.Fatalf("unexpected status: %s", resolved.Status)
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.IsStock || reloaded.QCStatus != constants.QCStatusRejected {
		t.Fatalf("rejected variant must not be sellable, got %+v", reloaded)
	}
}

func TestResolveMemoDetailPropagatesToVariant(t *testing.T) {
	db := setupServiceTestDB(t, "qc_resolve_memo_detail")
	employee := createTestEmployee(t, db, "质检员A")
	admin := createTestAdmin(t, db, "qc_admin")
	memo := createTestMemo(t, db, "JG-2026-004", 1)
	svc := newTestQualityCheckService(db)

	checks, err := svc.AssignMemo(memo.ID, employee.ID, admin.ID)
	if err != nil {
		t.Fatalf("AssignMemo error: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("expected 1 check, got %d", len(checks))
	}

	resolved, err := svc.ResolveToStock(checks[0].ID, "整单合格")
	if err != nil {
		t.Fatalf("ResolveToStock error: %v", err)
	}
	if resolved.TargetType != constants.QCTargetMemoDetail || resolved.Status != constants.QCStatusApproved {
		t.Fatalf("unexpected resolved check: %+v", resolved)
	}

	// 明细与其变体同步进入已通过状态，变体可售
	var detail models.MemoDetail
	if err := db.Where("memo_id = ?", memo.ID).First(&detail).Error; err != nil {
		t.Fatalf("reload detail failed: %v", err)
	}
	if detail.QCStatus != constants.QCStatusApproved {
		t.Fatalf("expected detail approved, got %s", detail.QCStatus)
	}
	var variant models.ProductVariant
	if err := db.First(&variant, detail.VariantID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if !variant.IsStock || variant.QCStatus != constants.QCStatusApproved {
		t.Fatalf("expected sellable approved variant, got %+v", variant)
	}
}

func TestResolveMemoDetailRejectionBlocksVariant(t *testing.T) {
	db := setupServiceTestDB(t, "qc_reject_memo_detail")
	employee := createTestEmployee(t, db, "质检员A")
	admin := createTestAdmin(t, db, "qc_admin")
	memo := createTestMemo(t, db, "JG-2026-005", 1)
	svc := newTestQualityCheckService(db)

	checks, err := svc.AssignMemo(memo.ID, employee.ID, admin.ID)
	if err != nil {
		t.Fatalf("AssignMemo error: %v", err)
	}
	if _, err := svc.ResolveToPurchase(checks[0].ID, "工艺瑕疵"); err != nil {
		t.Fatalf("ResolveToPurchase error: %v", err)
	}

	var detail models.MemoDetail
	if err := db.Where("memo_id = ?", memo.ID).First(&detail).Error; err != nil {
		t.Fatalf("reload detail failed: %v", err)
	}
	if detail.QCStatus != constants.QCStatusRejected {
		t.Fatalf("expected detail rejected, got %s", detail.QCStatus)
	}
	var variant models.ProductVariant
	if err := db.First(&variant, detail.VariantID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if variant.IsStock || variant.QCStatus != constants.QCStatusRejected {
		t.Fatalf("rejected variant must not be sellable, got %+v", variant)
	}
}
