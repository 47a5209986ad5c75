package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/logger"
	"github.com/gehna-next/internal/metrics"
	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/payment/razorpay"
	"github.com/gehna-next/internal/queue"
	"github.com/gehna-next/internal/repository"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// PaymentService 支付服务
type PaymentService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
	sellingRepo repository.SellingRepository
	queueClient *queue.Client
}

// NewPaymentService 创建支付服务实例
func NewPaymentService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	variantRepo repository.VariantRepository,
	sellingRepo repository.SellingRepository,
	queueClient *queue.Client,
) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
		sellingRepo: sellingRepo,
		queueClient: queueClient,
	}
}

// GatewayOrderResult 网关下单结果
type GatewayOrderResult struct {
	OrderID        uint         `json:"order_id"`
	OrderNo        string       `json:"order_no"`
	GatewayOrderID string       `json:"gateway_order_id"`
	Amount         models.Money `json:"amount"`
	Currency       string       `json:"currency"`
	KeyID          string       `json:"key_id"`
}

func (s *PaymentService) gatewayConfig() *razorpay.Config {
	return &razorpay.Config{
		KeyID:     s.cfg.Razorpay.KeyID,
		KeySecret: s.cfg.Razorpay.KeySecret,
		APIBase:   s.cfg.Razorpay.APIBase,
		TimeoutMS: s.cfg.Razorpay.TimeoutMS,
	}
}

// CreateGatewayOrder 在支付网关侧创建订单。
// 仅订单归属人可发起；已创建过网关订单时幂等返回既有结果，不会重复下单。
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, orderID, userID uint) (*GatewayOrderResult, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if !order.IsApproved {
		return nil, ErrOrderNotApproved
	}
	if !order.PaymentWindowOpen(time.Now()) {
		return nil, ErrPaymentWindowClosed
	}

	if strings.TrimSpace(order.GatewayOrderID) != "" {
		return &GatewayOrderResult{
			OrderID:        order.ID,
			OrderNo:        order.OrderNo,
			GatewayOrderID: order.GatewayOrderID,
			Amount:         order.TotalPrice,
			Currency:       order.Currency,
			KeyID:          s.cfg.Razorpay.KeyID,
		}, nil
	}

	result, err := razorpay.CreateOrder(ctx, s.gatewayConfig(), razorpay.CreateOrderInput{
		Amount:   order.TotalPrice.Decimal,
		Currency: order.Currency,
		Receipt:  fmt.Sprintf("order_%d", order.ID),
		Notes:    map[string]string{"order_no": order.OrderNo},
	})
	if err != nil {
		logger.Errorw("gateway_order_create_failed", "order_id", order.ID, "error", err)
		metrics.RecordPaymentOperation("create_gateway_order", false)
		return nil, ErrGatewayUnavailable
	}
	metrics.RecordPaymentOperation("create_gateway_order", true)

	if err := s.orderRepo.Update(order.ID, map[string]interface{}{
		"gateway_order_id": result.OrderID,
	}); err != nil {
		return nil, err
	}

	logger.Infow("gateway_order_created",
		"order_id", order.ID,
		"gateway_order_id", result.OrderID,
		"amount_due", result.AmountDue,
	)
	return &GatewayOrderResult{
		OrderID:        order.ID,
		OrderNo:        order.OrderNo,
		GatewayOrderID: result.OrderID,
		Amount:         order.TotalPrice,
		Currency:       order.Currency,
		KeyID:          s.cfg.Razorpay.KeyID,
	}, nil
}

// VerifyPaymentInput 支付核验输入
type VerifyPaymentInput struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// VerifyPayment 核验支付回执并完成订单。
// 库存采用条件扣减，扣减失败即整体回滚，不产生部分出库。
func (s *PaymentService) VerifyPayment(input VerifyPaymentInput, employeeID *uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByGatewayOrderID(strings.TrimSpace(input.GatewayOrderID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if !order.PaymentWindowOpen(time.Now()) {
		return nil, ErrPaymentWindowClosed
	}

	// 先做只读余量预检，库存不足时不触发签名校验
	for _, item := range order.Items {
		variant, err := s.variantRepo.GetByID(item.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, ErrVariantNotFound
		}
		if variant.Quantity < item.Quantity {
			return nil, ErrInsufficientStock
		}
	}

	if err := razorpay.VerifySignature(s.gatewayConfig(), input.GatewayOrderID, input.GatewayPaymentID, input.Signature); err != nil {
		logger.Warnw("payment_signature_invalid",
			"order_id", order.ID,
			"gateway_order_id", input.GatewayOrderID,
			"gateway_payment_id", input.GatewayPaymentID,
		)
		metrics.RecordPaymentOperation("verify_payment", false)
		return nil, ErrSignatureInvalid
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		sellings := make([]models.Selling, 0, len(order.Items))
		for _, item := range order.Items {
			affected, err := variantRepo.DecrementStock(item.VariantID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
			sellings = append(sellings, models.Selling{
				OrderID:    order.ID,
				VariantID:  item.VariantID,
				EmployeeID: employeeID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
				SoldAt:     now,
			})
		}
		if err := s.sellingRepo.WithTx(tx).BulkCreate(sellings); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).Update(order.ID, map[string]interface{}{
			"is_paid":            true,
			"paid_at":            now,
			"gateway_payment_id": strings.TrimSpace(input.GatewayPaymentID),
		})
	})
	if err != nil {
		return nil, err
	}

	order.IsPaid = true
	order.PaidAt = &now
	order.GatewayPaymentID = strings.TrimSpace(input.GatewayPaymentID)
	metrics.RecordPaymentOperation("verify_payment", true)

	if err := s.queueClient.EnqueueOrderReceiptEmail(queue.OrderReceiptEmailPayload{
		OrderID: order.ID,
	}, asynq.MaxRetry(5)); err != nil {
		logger.Warnw("order_receipt_email_enqueue_failed", "order_id", order.ID, "error", err)
	}

	logger.Infow("payment_verified",
		"order_id", order.ID,
		"gateway_order_id", order.GatewayOrderID,
		"gateway_payment_id", order.GatewayPaymentID,
		"items", len(order.Items),
	)
	return order, nil
}
