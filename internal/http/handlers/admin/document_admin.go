package admin

import (
	"strconv"

	"github.com/gehna-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOrderInvoice 获取订单发票数据
func (h *Handler) GetOrderInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}

	invoice, err := h.DocumentService.BuildInvoice(uint(id))
	if err != nil {
		respondWithMappedError(c, err, documentErrorRules, response.CodeInternal, "生成发票数据失败")
		return
	}

	response.Success(c, invoice)
}

// GetVariantBarcode 获取变体条码数据
func (h *Handler) GetVariantBarcode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "变体 ID 无效", nil)
		return
	}

	barcode, err := h.DocumentService.BuildBarcode(uint(id))
	if err != nil {
		respondWithMappedError(c, err, documentErrorRules, response.CodeInternal, "生成条码数据失败")
		return
	}

	response.Success(c, barcode)
}
