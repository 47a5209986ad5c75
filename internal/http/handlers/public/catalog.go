package public

import (
	"strconv"
	"strings"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListProducts 获取商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 无效", nil)
		return
	}

	product, err := h.CatalogService.GetProduct(uint(id))
	if err != nil {
		respondWithMappedError(c, err, catalogGetErrorRules, response.CodeInternal, "获取商品失败")
		return
	}

	response.Success(c, product)
}

// ListInStockVariants 获取可售商品变体列表
func (h *Handler) ListInStockVariants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	variants, total, err := h.CatalogService.ListInStock(page, pageSize, strings.TrimSpace(c.Query("search")))
	if err != nil {
		respondError(c, response.CodeInternal, "获取可售变体列表失败", err)
		return
	}

	response.SuccessWithPage(c, variants, response.BuildPagination(page, pageSize, total))
}

// GetVariant 获取商品变体详情
func (h *Handler) GetVariant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "变体 ID 无效", nil)
		return
	}

	variant, err := h.CatalogService.GetVariant(uint(id))
	if err != nil {
		respondWithMappedError(c, err, catalogGetErrorRules, response.CodeInternal, "获取变体失败")
		return
	}

	response.Success(c, variant)
}
