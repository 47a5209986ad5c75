package service

import (
	"strings"
	"time"

	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
}

// NewOrderService 创建订单服务实例
func NewOrderService(cfg *config.Config, orderRepo repository.OrderRepository, variantRepo repository.VariantRepository) *OrderService {
	return &OrderService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
	}
}

// OrderItemInput 下单条目输入
type OrderItemInput struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	UserID          uint
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []OrderItemInput
}

// CreateOrder 创建订单。
// 单价与总额在下单时快照，库存在支付核验时才扣减。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrInvalidOrderItem
	}

	currency := strings.ToUpper(strings.TrimSpace(s.cfg.Order.Currency))
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	// 同一变体的重复条目合并数量，保留首次出现的顺序
	merged := make([]OrderItemInput, 0, len(input.Items))
	index := make(map[uint]int, len(input.Items))
	for _, item := range input.Items {
		if item.VariantID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		if at, ok := index[item.VariantID]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[item.VariantID] = len(merged)
		merged = append(merged, item)
	}

	items := make([]models.OrderItem, 0, len(merged))
	total := decimal.Zero
	for _, item := range merged {
		variant, err := s.variantRepo.GetByID(item.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, ErrVariantNotFound
		}
		if !variant.IsStock {
			return nil, ErrVariantNotInStock
		}

		lineTotal := variant.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)

		title := ""
		if variant.Product != nil {
			title = variant.Product.Name
		}
		items = append(items, models.OrderItem{
			VariantID:  variant.ID,
			TitleSnap:  title,
			UnitPrice:  variant.PriceAmount,
			Quantity:   item.Quantity,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          input.UserID,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		CustomerAddress: strings.TrimSpace(input.CustomerAddress),
		Status:          constants.OrderStatusPending,
		Currency:        currency,
		TotalPrice:      models.NewMoneyFromDecimal(total),
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total_price", order.TotalPrice.String(),
		"items", len(items),
	)

	created, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return order, nil
	}
	return created, nil
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 查询订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// UpdateStatus 更新订单流转状态
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	switch status {
	case constants.OrderStatusPending, constants.OrderStatusShipped,
		constants.OrderStatusDelivered, constants.OrderStatusCanceled:
	default:
		return nil, ErrInvalidOrderItem
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.orderRepo.Update(id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}); err != nil {
		return nil, err
	}
	order.Status = status
	logger.Infow("order_status_updated", "order_id", id, "status", status)
	return order, nil
}

// generateOrderNo 生成订单编号（固定前缀 + UUID 前 8 位十六进制）
func generateOrderNo() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return constants.OrderNoPrefix + strings.ToUpper(raw[:8])
}
