package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"
	"github.com/gehna-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateMemo 创建备忘单（Jangad）
func (h *Handler) CreateMemo(c *gin.Context) {
	var req service.CreateMemoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	memo, err := h.MemoService.CreateMemo(req)
	if err != nil {
		respondWithMappedError(c, err, memoErrorRules, response.CodeInternal, "创建备忘单失败")
		return
	}

	response.Success(c, memo)
}

// ListMemos 获取备忘单列表
func (h *Handler) ListMemos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	memos, total, err := h.MemoService.ListMemos(repository.MemoListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取备忘单列表失败", err)
		return
	}

	response.SuccessWithPage(c, memos, response.BuildPagination(page, pageSize, total))
}

// GetMemo 获取备忘单详情
func (h *Handler) GetMemo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "备忘单 ID 无效", nil)
		return
	}

	memo, err := h.MemoService.GetMemo(uint(id))
	if err != nil {
		respondWithMappedError(c, err, memoErrorRules, response.CodeInternal, "获取备忘单失败")
		return
	}

	response.Success(c, memo)
}

// ListMemoDetails 获取备忘单的明细列表
func (h *Handler) ListMemoDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "备忘单 ID 无效", nil)
		return
	}

	details, err := h.MemoService.ListMemoDetails(uint(id))
	if err != nil {
		respondWithMappedError(c, err, memoErrorRules, response.CodeInternal, "获取备忘明细失败")
		return
	}

	response.Success(c, details)
}

// UpdateMemo 更新备忘单抬头信息
func (h *Handler) UpdateMemo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "备忘单 ID 无效", nil)
		return
	}

	var req service.UpdateMemoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	memo, err := h.MemoService.UpdateMemo(uint(id), req)
	if err != nil {
		respondWithMappedError(c, err, memoErrorRules, response.CodeInternal, "更新备忘单失败")
		return
	}

	response.Success(c, memo)
}

// DeleteMemo 删除备忘单及其明细
func (h *Handler) DeleteMemo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "备忘单 ID 无效", nil)
		return
	}

	if err := h.MemoService.DeleteMemo(uint(id)); err != nil {
		respondWithMappedError(c, err, memoErrorRules, response.CodeInternal, "删除备忘单失败")
		return
	}

	response.Success(c, nil)
}

// CloseMemo 关闭备忘单
func (h *Handler) CloseMemo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "备忘单 ID 无效", nil)
		return
	}

	memo, err := h.MemoService.CloseMemo(uint(id))
	if err != nil {
		respondWithMappedError(c, err, memoErrorRules, response.CodeInternal, "关闭备忘单失败")
		return
	}

	response.Success(c, memo)
}
