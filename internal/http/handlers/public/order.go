package public

import (
	"strconv"
	"strings"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"
	"github.com/gehna-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 订单项请求
type OrderItemRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	var items []service.OrderItemInput
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:          uid,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Items:           items,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "创建订单失败")
		return
	}

	response.Success(c, order)
}

// ListOrders 获取当前用户的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := strings.TrimSpace(c.Query("is_paid")); raw != "" {
		if isPaid, err := strconv.ParseBool(raw); err == nil {
			filter.IsPaid = &isPaid
		}
	}

	orders, total, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(id))
	if err != nil {
		respondWithMappedError(c, err, orderGetErrorRules, response.CodeInternal, "获取订单失败")
		return
	}

	response.Success(c, order)
}

// GetOrderByOrderNo 按订单号获取订单
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号无效", nil)
		return
	}

	order, err := h.OrderRepo.GetByOrderNo(orderNo)
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单失败", err)
		return
	}
	if order == nil {
		respondError(c, response.CodeNotFound, "订单不存在", nil)
		return
	}

	response.Success(c, order)
}
