package admin

import (
	"errors"

	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var notificationDecideErrorRules = []mappedHandlerError{
	{target: service.ErrNotificationNotFound, code: response.CodeNotFound, msg: "付款请求不存在"},
	{target: service.ErrNotReceiver, code: response.CodeForbidden, msg: "不在该付款请求的接收人范围"},
	{target: service.ErrAlreadyDecided, code: response.CodeConflict, msg: "付款请求已处理"},
	{target: service.ErrInvalidDuration, code: response.CodeBadRequest, msg: "付款窗口时长格式无效"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
}

var notificationReadErrorRules = []mappedHandlerError{
	{target: service.ErrNotificationNotFound, code: response.CodeNotFound, msg: "付款请求不存在"},
	{target: service.ErrPermissionDenied, code: response.CodeForbidden, msg: "无权操作该付款请求"},
}

var orderStatusErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "订单状态无效"},
}

var memoErrorRules = []mappedHandlerError{
	{target: service.ErrMemoNotFound, code: response.CodeNotFound, msg: "备忘单不存在"},
	{target: service.ErrMemoNumberExists, code: response.CodeConflict, msg: "Jangad 编号已存在"},
	{target: service.ErrMemoDetailNotFound, code: response.CodeBadRequest, msg: "备忘明细无效"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "商品变体不存在"},
}

var qualityCheckErrorRules = []mappedHandlerError{
	{target: service.ErrQualityCheckNotFound, code: response.CodeNotFound, msg: "质检记录不存在"},
	{target: service.ErrMemoNotFound, code: response.CodeNotFound, msg: "备忘单不存在"},
	{target: service.ErrMemoDetailNotFound, code: response.CodeNotFound, msg: "备忘明细不存在"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "商品变体不存在"},
	{target: service.ErrEmployeeNotFound, code: response.CodeNotFound, msg: "员工不存在"},
	{target: service.ErrAlreadyResolved, code: response.CodeConflict, msg: "质检记录已处理"},
}

var employeeErrorRules = []mappedHandlerError{
	{target: service.ErrEmployeeNotFound, code: response.CodeNotFound, msg: "员工不存在"},
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "商品不存在"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "商品变体不存在"},
}

var documentErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "商品变体不存在"},
}
