package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminListOrders 获取订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if userID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(userID)
		}
	}
	if raw := strings.TrimSpace(c.Query("is_paid")); raw != "" {
		if isPaid, err := strconv.ParseBool(raw); err == nil {
			filter.IsPaid = &isPaid
		}
	}
	if raw := strings.TrimSpace(c.Query("is_approved")); raw != "" {
		if isApproved, err := strconv.ParseBool(raw); err == nil {
			filter.IsApproved = &isApproved
		}
	}

	orders, total, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 获取订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(id))
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "获取订单失败")
		return
	}

	response.Success(c, order)
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus 更新订单履约状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(uint(id), strings.TrimSpace(req.Status))
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules, response.CodeInternal, "更新订单状态失败")
		return
	}

	response.Success(c, order)
}
