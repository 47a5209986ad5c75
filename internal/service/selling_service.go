package service

import (
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"
)

// SellingService 销售流水查询与统计服务
type SellingService struct {
	sellingRepo repository.SellingRepository
}

// NewSellingService 创建销售流水服务实例
func NewSellingService(sellingRepo repository.SellingRepository) *SellingService {
	return &SellingService{sellingRepo: sellingRepo}
}

// ListSellings 查询销售流水
func (s *SellingService) ListSellings(filter repository.SellingListFilter) ([]models.Selling, int64, error) {
	return s.sellingRepo.List(filter)
}

// SummaryByVariant 按变体汇总销售数量与金额
func (s *SellingService) SummaryByVariant(filter repository.SellingListFilter) ([]repository.SellingSummaryRow, error) {
	return s.sellingRepo.SumByVariant(filter)
}
