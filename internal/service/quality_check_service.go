package service

import (
	"strings"
	"time"

	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"

	"gorm.io/gorm"
)

// QualityCheckService 质检服务
type QualityCheckService struct {
	qcRepo       repository.QualityCheckRepository
	memoRepo     repository.MemoRepository
	variantRepo  repository.VariantRepository
	employeeRepo repository.EmployeeRepository
}

// NewQualityCheckService 创建质检服务实例
func NewQualityCheckService(
	qcRepo repository.QualityCheckRepository,
	memoRepo repository.MemoRepository,
	variantRepo repository.VariantRepository,
	employeeRepo repository.EmployeeRepository,
) *QualityCheckService {
	return &QualityCheckService{
		qcRepo:       qcRepo,
		memoRepo:     memoRepo,
		variantRepo:  variantRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *QualityCheckService) getEmployee(employeeID uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

// AssignMemo 将备忘单整单指派给质检员工，按明细逐条生成质检记录。
// 备忘单与各明细同时盖章质检员工。
func (s *QualityCheckService) AssignMemo(memoID, employeeID, senderID uint) ([]models.QualityCheck, error) {
	memo, err := s.memoRepo.GetByID(memoID)
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, ErrMemoNotFound
	}
	employee, err := s.getEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	details, err := s.memoRepo.ListDetails(memo.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	checks := make([]models.QualityCheck, 0, len(details))
	for _, detail := range details {
		open, err := s.qcRepo.GetOpenByTarget(constants.QCTargetMemoDetail, detail.ID)
		if err != nil {
			return nil, err
		}
		if open != nil {
			continue
		}
		checks = append(checks, models.QualityCheck{
			TargetType: constants.QCTargetMemoDetail,
			TargetID:   detail.ID,
			SenderID:   senderID,
			EmployeeID: employee.ID,
			Status:     constants.QCStatusInProcess,
			AssignedAt: now,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.qcRepo.WithTx(tx).BulkCreate(checks); err != nil {
			return err
		}
		memoRepo := s.memoRepo.WithTx(tx)
		if err := memoRepo.Update(memo.ID, map[string]interface{}{
			"qc_employee_id": employee.ID,
		}); err != nil {
			return err
		}
		for _, detail := range details {
			if err := memoRepo.UpdateDetail(detail.ID, map[string]interface{}{
				"qc_employee_id": employee.ID,
				"qc_status":      constants.QCStatusInProcess,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("memo_assigned_for_qc",
		"memo_id", memo.ID,
		"jangad_number", memo.JangadNumber,
		"employee_id", employee.ID,
		"sender_id", senderID,
		"checks", len(checks),
	)
	return checks, nil
}

// AssignMemoDetail 将单条备忘明细指派给质检员工
func (s *QualityCheckService) AssignMemoDetail(memoDetailID, employeeID, senderID uint) (*models.QualityCheck, error) {
	detail, err := s.memoRepo.GetDetailByID(memoDetailID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrMemoDetailNotFound
	}
	employee, err := s.getEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	open, err := s.qcRepo.GetOpenByTarget(constants.QCTargetMemoDetail, detail.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}

	check := &models.QualityCheck{
		TargetType: constants.QCTargetMemoDetail,
		TargetID:   detail.ID,
		SenderID:   senderID,
		EmployeeID: employee.ID,
		Status:     constants.QCStatusInProcess,
		AssignedAt: time.Now(),
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.qcRepo.WithTx(tx).Create(check); err != nil {
			return err
		}
		return s.memoRepo.WithTx(tx).UpdateDetail(detail.ID, map[string]interface{}{
			"qc_employee_id": employee.ID,
			"qc_status":      constants.QCStatusInProcess,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("memo_detail_assigned_for_qc",
		"memo_detail_id", detail.ID,
		"employee_id", employee.ID,
		"sender_id", senderID,
		"check_id", check.ID,
	)
	return check, nil
}

// AssignVariant 将商品变体指派给质检员工
func (s *QualityCheckService) AssignVariant(variantID, employeeID, senderID uint) (*models.QualityCheck, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	employee, err := s.getEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if variant.QCStatus == constants.QCStatusApproved {
		return nil, ErrAlreadyResolved
	}
	open, err := s.qcRepo.GetOpenByTarget(constants.QCTargetVariant, variant.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}

	check := &models.QualityCheck{
		TargetType: constants.QCTargetVariant,
		TargetID:   variant.ID,
		SenderID:   senderID,
		EmployeeID: employee.ID,
		Status:     constants.QCStatusInProcess,
		AssignedAt: time.Now(),
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.qcRepo.WithTx(tx).Create(check); err != nil {
			return err
		}
		return s.variantRepo.WithTx(tx).Update(variant.ID, map[string]interface{}{
			"qc_status":      constants.QCStatusInProcess,
			"qc_employee_id": employee.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("variant_assigned_for_qc",
		"variant_id", variant.ID,
		"employee_id", employee.ID,
		"sender_id", senderID,
		"check_id", check.ID,
	)
	return check, nil
}

// ResolveToStock 质检通过，货品入库。
// 明细目标会同步明细与其变体的质检状态，变体同时置 is_stock 为真。
func (s *QualityCheckService) ResolveToStock(checkID uint, notes string) (*models.QualityCheck, error) {
	return s.resolve(checkID, constants.QCStatusApproved, notes)
}

// ResolveToPurchase 质检不通过，货品退回采购。
// 变体置 is_stock 为假，不允许销售。
func (s *QualityCheckService) ResolveToPurchase(checkID uint, notes string) (*models.QualityCheck, error) {
	return s.resolve(checkID, constants.QCStatusRejected, notes)
}

func (s *QualityCheckService) resolve(checkID uint, status, notes string) (*models.QualityCheck, error) {
	check, err := s.qcRepo.GetByID(checkID)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, ErrQualityCheckNotFound
	}
	if check.Status != constants.QCStatusInProcess {
		return nil, ErrAlreadyResolved
	}

	// 变体目标直接取、明细目标经由明细定位
	variantID := check.TargetID
	var detail *models.MemoDetail
	if check.TargetType == constants.QCTargetMemoDetail {
		detail, err = s.memoRepo.GetDetailByID(check.TargetID)
		if err != nil {
			return nil, err
		}
		if detail == nil {
			return nil, ErrMemoDetailNotFound
		}
		variantID = detail.VariantID
	}

	now := time.Now()
	notes = strings.TrimSpace(notes)
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.qcRepo.WithTx(tx).Update(check.ID, map[string]interface{}{
			"status":      status,
			"notes":       notes,
			"resolved_at": now,
		}); err != nil {
			return err
		}
		if detail != nil {
			if err := s.memoRepo.WithTx(tx).UpdateDetail(detail.ID, map[string]interface{}{
				"qc_status": status,
			}); err != nil {
				return err
			}
		}
		return s.variantRepo.WithTx(tx).Update(variantID, map[string]interface{}{
			"qc_status": status,
			"is_stock":  status == constants.QCStatusApproved,
			"notes":     notes,
		})
	})
	if err != nil {
		return nil, err
	}

	check.Status = status
	check.Notes = notes
	check.ResolvedAt = &now

	logger.Infow("quality_check_resolved",
		"check_id", check.ID,
		"target_type", check.TargetType,
		"target_id", check.TargetID,
		"variant_id", variantID,
		"status", status,
	)
	return check, nil
}

// ListChecks 查询质检记录
func (s *QualityCheckService) ListChecks(filter repository.QualityCheckListFilter) ([]models.QualityCheck, int64, error) {
	return s.qcRepo.List(filter)
}
