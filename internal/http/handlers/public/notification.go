package public

import (
	"strconv"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SendPaymentRequestRequest 发起付款请求的请求体
type SendPaymentRequestRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Message string `json:"message"`
}

// SendPaymentRequest 发起付款请求
func (h *Handler) SendPaymentRequest(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req SendPaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	notification, err := h.NotificationService.SendPaymentRequest(service.SendPaymentRequestInput{
		OrderID:  req.OrderID,
		SenderID: uid,
		Message:  req.Message,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentRequestErrorRules, response.CodeInternal, "发起付款请求失败")
		return
	}

	response.Success(c, notification)
}

// ListMyNotifications 获取当前用户发起的付款请求列表
func (h *Handler) ListMyNotifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	notifications, total, err := h.NotificationService.ListForSender(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取付款请求列表失败", err)
		return
	}

	response.SuccessWithPage(c, notifications, response.BuildPagination(page, pageSize, total))
}

// UnreadNotificationCount 获取当前用户未读回执数
func (h *Handler) UnreadNotificationCount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	count, err := h.NotificationService.UnreadCountForSender(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "获取未读数失败", err)
		return
	}

	response.Success(c, gin.H{"unread": count})
}

// WithdrawPaymentRequest 发送人撤回待处理的付款请求
func (h *Handler) WithdrawPaymentRequest(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "付款请求 ID 无效", nil)
		return
	}

	notification, err := h.NotificationService.Decline(uint(id), uid)
	if err != nil {
		respondWithMappedError(c, err, notificationDecideErrorRules, response.CodeInternal, "撤回付款请求失败")
		return
	}

	response.Success(c, notification)
}

// MarkNotificationRead 发送人标记付款请求已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "付款请求 ID 无效", nil)
		return
	}

	if err := h.NotificationService.MarkRead(uint(id), uid); err != nil {
		respondWithMappedError(c, err, notificationReadErrorRules, response.CodeInternal, "标记已读失败")
		return
	}

	response.Success(c, nil)
}
