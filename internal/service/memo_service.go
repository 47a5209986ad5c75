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

// MemoService 备忘单服务
type MemoService struct {
	memoRepo    repository.MemoRepository
	variantRepo repository.VariantRepository
}

// NewMemoService 创建备忘单服务实例
func NewMemoService(memoRepo repository.MemoRepository, variantRepo repository.VariantRepository) *MemoService {
	return &MemoService{memoRepo: memoRepo, variantRepo: variantRepo}
}

// MemoDetailInput 备忘单明细输入
type MemoDetailInput struct {
	VariantID   uint         `json:"variant_id" binding:"required"`
	Description string       `json:"description" binding:"required"`
	GrossWeight models.Money `json:"gross_weight"`
	NetWeight   models.Money `json:"net_weight"`
	Quantity    int          `json:"quantity"`
}

// CreateMemoInput 开单输入
type CreateMemoInput struct {
	JangadNumber string            `json:"jangad_number" binding:"required"`
	PartyName    string            `json:"party_name"`
	Remark       string            `json:"remark"`
	Details      []MemoDetailInput `json:"details" binding:"required"`
}

// CreateMemo 创建备忘单及其明细。每条明细必须挂接既有变体。
func (s *MemoService) CreateMemo(input CreateMemoInput) (*models.Memo, error) {
	jangadNumber := strings.TrimSpace(input.JangadNumber)
	if jangadNumber == "" || len(input.Details) == 0 {
		return nil, ErrMemoDetailNotFound
	}

	existing, err := s.memoRepo.GetByJangadNumber(jangadNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemoNumberExists
	}

	memo := &models.Memo{
		JangadNumber: jangadNumber,
		PartyName:    strings.TrimSpace(input.PartyName),
		Status:       constants.MemoStatusOpen,
		IssuedAt:     time.Now(),
		Remark:       strings.TrimSpace(input.Remark),
	}
	details := make([]models.MemoDetail, 0, len(input.Details))
	for _, detail := range input.Details {
		variant, err := s.variantRepo.GetByID(detail.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, ErrVariantNotFound
		}
		quantity := detail.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		details = append(details, models.MemoDetail{
			VariantID:   variant.ID,
			Description: strings.TrimSpace(detail.Description),
			GrossWeight: detail.GrossWeight,
			NetWeight:   detail.NetWeight,
			Quantity:    quantity,
			QCStatus:    constants.QCStatusPending,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.memoRepo.WithTx(tx).Create(memo, details)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("memo_created",
		"memo_id", memo.ID,
		"jangad_number", memo.JangadNumber,
		"details", len(details),
	)
	return s.GetMemo(memo.ID)
}

// GetMemo 获取备忘单详情
func (s *MemoService) GetMemo(id uint) (*models.Memo, error) {
	memo, err := s.memoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, ErrMemoNotFound
	}
	return memo, nil
}

// ListMemos 查询备忘单列表
func (s *MemoService) ListMemos(filter repository.MemoListFilter) ([]models.Memo, int64, error) {
	return s.memoRepo.List(filter)
}

// ListMemoDetails 查询备忘单全部明细
func (s *MemoService) ListMemoDetails(memoID uint) ([]models.MemoDetail, error) {
	if _, err := s.GetMemo(memoID); err != nil {
		return nil, err
	}
	return s.memoRepo.ListDetails(memoID)
}

// UpdateMemoInput 备忘单修改输入，空指针字段不变更
type UpdateMemoInput struct {
	PartyName *string `json:"party_name"`
	Remark    *string `json:"remark"`
}

// UpdateMemo 修改备忘单抬头信息
func (s *MemoService) UpdateMemo(id uint, input UpdateMemoInput) (*models.Memo, error) {
	memo, err := s.GetMemo(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.PartyName != nil {
		updates["party_name"] = strings.TrimSpace(*input.PartyName)
	}
	if input.Remark != nil {
		updates["remark"] = strings.TrimSpace(*input.Remark)
	}
	if len(updates) == 0 {
		return memo, nil
	}
	if err := s.memoRepo.Update(memo.ID, updates); err != nil {
		return nil, err
	}
	logger.Infow("memo_updated", "memo_id", memo.ID, "jangad_number", memo.JangadNumber)
	return s.GetMemo(memo.ID)
}

// DeleteMemo 删除备忘单及其明细
func (s *MemoService) DeleteMemo(id uint) error {
	memo, err := s.GetMemo(id)
	if err != nil {
		return err
	}
	if err := s.memoRepo.Delete(memo.ID); err != nil {
		return err
	}
	logger.Infow("memo_deleted", "memo_id", memo.ID, "jangad_number", memo.JangadNumber)
	return nil
}

// CloseMemo 关闭备忘单
func (s *MemoService) CloseMemo(id uint) (*models.Memo, error) {
	memo, err := s.GetMemo(id)
	if err != nil {
		return nil, err
	}
	if memo.Status == constants.MemoStatusClosed {
		return memo, nil
	}
	if err := s.memoRepo.Update(memo.ID, map[string]interface{}{
		"status": constants.MemoStatusClosed,
	}); err != nil {
		return nil, err
	}
	memo.Status = constants.MemoStatusClosed
	logger.Infow("memo_closed", "memo_id", memo.ID, "jangad_number", memo.JangadNumber)
	return memo, nil
}
