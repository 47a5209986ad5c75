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

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	product, err := h.CatalogService.CreateProduct(req)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "创建商品失败")
		return
	}

	response.Success(c, product)
}

// CreateVariant 创建商品变体
func (h *Handler) CreateVariant(c *gin.Context) {
	var req service.CreateVariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	variant, err := h.CatalogService.CreateVariant(req)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "创建变体失败")
		return
	}

	response.Success(c, variant)
}

// AdminListVariants 获取商品变体列表
func (h *Handler) AdminListVariants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.VariantListFilter{
		Page:      page,
		PageSize:  pageSize,
		QCStatus:  strings.TrimSpace(c.Query("qc_status")),
		OnlyStock: c.Query("only_stock") == "true",
		Search:    strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		if productID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.ProductID = uint(productID)
		}
	}

	variants, total, err := h.CatalogService.ListVariants(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取变体列表失败", err)
		return
	}

	response.SuccessWithPage(c, variants, response.BuildPagination(page, pageSize, total))
}
