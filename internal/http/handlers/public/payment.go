package public

import (
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateGatewayOrderRequest 创建网关订单请求
type CreateGatewayOrderRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

// CreateGatewayOrder 在支付网关创建收款订单
func (h *Handler) CreateGatewayOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateGatewayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	result, err := h.PaymentService.CreateGatewayOrder(c.Request.Context(), req.OrderID, uid)
	if err != nil {
		respondWithMappedError(c, err, gatewayOrderErrorRules, response.CodeInternal, "创建网关订单失败")
		return
	}

	response.Success(c, result)
}

// VerifyPaymentRequest 支付核验请求
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
	EmployeeID       *uint  `json:"employee_id"`
}

// VerifyPayment 核验支付回执并完成订单
func (h *Handler) VerifyPayment(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	order, err := h.PaymentService.VerifyPayment(service.VerifyPaymentInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	}, req.EmployeeID)
	if err != nil {
		respondWithMappedError(c, err, paymentVerifyErrorRules, response.CodeInternal, "支付核验失败")
		return
	}

	response.Success(c, order)
}
