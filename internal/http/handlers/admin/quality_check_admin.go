package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// AssignMemoQCRequest 整单质检指派请求
type AssignMemoQCRequest struct {
	MemoID     uint `json:"memo_id" binding:"required"`
	EmployeeID uint `json:"employee_id" binding:"required"`
}

// AssignMemoQualityCheck 按备忘单批量指派质检
func (h *Handler) AssignMemoQualityCheck(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req AssignMemoQCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	checks, err := h.QualityCheckService.AssignMemo(req.MemoID, req.EmployeeID, adminID)
	if err != nil {
		respondWithMappedError(c, err, qualityCheckErrorRules, response.CodeInternal, "指派质检失败")
		return
	}

	response.Success(c, checks)
}

// AssignMemoDetailQCRequest 备忘明细质检指派请求
type AssignMemoDetailQCRequest struct {
	MemoDetailID uint `json:"memo_detail_id" binding:"required"`
	EmployeeID   uint `json:"employee_id" binding:"required"`
}

// AssignMemoDetailQualityCheck 指派单条备忘明细的质检
func (h *Handler) AssignMemoDetailQualityCheck(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req AssignMemoDetailQCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	check, err := h.QualityCheckService.AssignMemoDetail(req.MemoDetailID, req.EmployeeID, adminID)
	if err != nil {
		respondWithMappedError(c, err, qualityCheckErrorRules, response.CodeInternal, "指派质检失败")
		return
	}

	response.Success(c, check)
}

// AssignVariantQCRequest 变体质检指派请求
type AssignVariantQCRequest struct {
	VariantID  uint `json:"variant_id" binding:"required"`
	EmployeeID uint `json:"employee_id" binding:"required"`
}

// AssignVariantQualityCheck 指派单个变体的质检
func (h *Handler) AssignVariantQualityCheck(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req AssignVariantQCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	check, err := h.QualityCheckService.AssignVariant(req.VariantID, req.EmployeeID, adminID)
	if err != nil {
		respondWithMappedError(c, err, qualityCheckErrorRules, response.CodeInternal, "指派质检失败")
		return
	}

	response.Success(c, check)
}

// ResolveQCRequest 质检结案请求
type ResolveQCRequest struct {
	Notes string `json:"notes"`
}

// ApproveQualityCheck 质检通过，目标入库可售
func (h *Handler) ApproveQualityCheck(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "质检记录 ID 无效", nil)
		return
	}

	var req ResolveQCRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	check, err := h.QualityCheckService.ResolveToStock(uint(id), req.Notes)
	if err != nil {
		respondWithMappedError(c, err, qualityCheckErrorRules, response.CodeInternal, "质检结案失败")
		return
	}

	response.Success(c, check)
}

// RejectQualityCheck 质检不通过，目标退回采购
func (h *Handler) RejectQualityCheck(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "质检记录 ID 无效", nil)
		return
	}

	var req ResolveQCRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	check, err := h.QualityCheckService.ResolveToPurchase(uint(id), req.Notes)
	if err != nil {
		respondWithMappedError(c, err, qualityCheckErrorRules, response.CodeInternal, "质检结案失败")
		return
	}

	response.Success(c, check)
}

// ListQualityChecks 获取质检记录列表
func (h *Handler) ListQualityChecks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.QualityCheckListFilter{
		Page:       page,
		PageSize:   pageSize,
		TargetType: strings.TrimSpace(c.Query("target_type")),
		Status:     strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("target_id")); raw != "" {
		if targetID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.TargetID = uint(targetID)
		}
	}
	if raw := strings.TrimSpace(c.Query("employee_id")); raw != "" {
		if employeeID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.EmployeeID = uint(employeeID)
		}
	}

	checks, total, err := h.QualityCheckService.ListChecks(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取质检记录失败", err)
		return
	}

	response.SuccessWithPage(c, checks, response.BuildPagination(page, pageSize, total))
}
