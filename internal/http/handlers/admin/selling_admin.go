package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func parseSellingFilter(c *gin.Context) repository.SellingListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.SellingListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if raw := strings.TrimSpace(c.Query("variant_id")); raw != "" {
		if variantID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.VariantID = uint(variantID)
		}
	}
	if raw := strings.TrimSpace(c.Query("employee_id")); raw != "" {
		if employeeID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.EmployeeID = uint(employeeID)
		}
	}
	if raw := strings.TrimSpace(c.Query("sold_from")); raw != "" {
		if soldFrom, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.SoldFrom = &soldFrom
		}
	}
	if raw := strings.TrimSpace(c.Query("sold_to")); raw != "" {
		if soldTo, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.SoldTo = &soldTo
		}
	}
	return filter
}

// ListSellings 获取销售流水列表
func (h *Handler) ListSellings(c *gin.Context) {
	filter := parseSellingFilter(c)

	sellings, total, err := h.SellingService.ListSellings(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取销售流水失败", err)
		return
	}

	response.SuccessWithPage(c, sellings, response.BuildPagination(filter.Page, filter.PageSize, total))
}

// SellingSummary 按变体汇总销售数据
func (h *Handler) SellingSummary(c *gin.Context) {
	filter := parseSellingFilter(c)

	rows, err := h.SellingService.SummaryByVariant(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "汇总销售数据失败", err)
		return
	}

	response.Success(c, rows)
}
