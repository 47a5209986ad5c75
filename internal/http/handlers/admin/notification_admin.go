package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListNotifications 获取发给当前管理员的付款请求列表
func (h *Handler) ListNotifications(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.NotificationListFilter{
		Page:       page,
		PageSize:   pageSize,
		ReceiverID: adminID,
		Status:     strings.TrimSpace(c.Query("status")),
		UnreadOnly: c.Query("unread_only") == "true",
	}

	notifications, total, err := h.NotificationService.ListForReceiver(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取付款请求列表失败", err)
		return
	}

	response.SuccessWithPage(c, notifications, response.BuildPagination(page, pageSize, total))
}

// ApproveNotificationRequest 批准付款请求的请求体
type ApproveNotificationRequest struct {
	Duration string `json:"duration" binding:"required"`
}

// ApproveNotification 批准付款请求并设定付款窗口时长
func (h *Handler) ApproveNotification(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "付款请求 ID 无效", nil)
		return
	}

	var req ApproveNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	notification, err := h.NotificationService.Approve(uint(id), adminID, req.Duration)
	if err != nil {
		respondWithMappedError(c, err, notificationDecideErrorRules, response.CodeInternal, "批准付款请求失败")
		return
	}

	response.Success(c, notification)
}

// DeclineNotification 拒绝付款请求
func (h *Handler) DeclineNotification(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "付款请求 ID 无效", nil)
		return
	}

	notification, err := h.NotificationService.Decline(uint(id), adminID)
	if err != nil {
		respondWithMappedError(c, err, notificationDecideErrorRules, response.CodeInternal, "拒绝付款请求失败")
		return
	}

	response.Success(c, notification)
}

// UnreadNotificationCount 获取当前管理员未读付款请求数
func (h *Handler) UnreadNotificationCount(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	count, err := h.NotificationService.UnreadCountForReceiver(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取未读数失败", err)
		return
	}

	response.Success(c, gin.H{"unread": count})
}

// MarkNotificationAdminRead 管理员标记付款请求已读
func (h *Handler) MarkNotificationAdminRead(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "付款请求 ID 无效", nil)
		return
	}

	if err := h.NotificationService.MarkAdminRead(uint(id), adminID); err != nil {
		respondWithMappedError(c, err, notificationReadErrorRules, response.CodeInternal, "标记已读失败")
		return
	}

	response.Success(c, nil)
}
