package public

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

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "订单项无效"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "商品变体不存在"},
	{target: service.ErrVariantNotInStock, code: response.CodeBadRequest, msg: "商品变体不可销售"},
}

var orderGetErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
}

var paymentRequestErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
	{target: service.ErrNotOrderOwner, code: response.CodeForbidden, msg: "只能为本人订单发起付款请求"},
	{target: service.ErrOrderAlreadyPaid, code: response.CodeConflict, msg: "订单已支付"},
	{target: service.ErrDuplicatePending, code: response.CodeConflict, msg: "已有待处理的付款请求"},
	{target: service.ErrNoAdminUsers, code: response.CodeNotFound, msg: "没有可接收请求的管理员"},
}

var notificationDecideErrorRules = []mappedHandlerError{
	{target: service.ErrNotificationNotFound, code: response.CodeNotFound, msg: "付款请求不存在"},
	{target: service.ErrNotReceiver, code: response.CodeForbidden, msg: "无权操作该付款请求"},
	{target: service.ErrAlreadyDecided, code: response.CodeConflict, msg: "付款请求已处理"},
}

var notificationReadErrorRules = []mappedHandlerError{
	{target: service.ErrNotificationNotFound, code: response.CodeNotFound, msg: "付款请求不存在"},
	{target: service.ErrPermissionDenied, code: response.CodeForbidden, msg: "无权操作该付款请求"},
}

var gatewayOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
	{target: service.ErrNotOrderOwner, code: response.CodeForbidden, msg: "只能为本人订单发起支付"},
	{target: service.ErrOrderAlreadyPaid, code: response.CodeConflict, msg: "订单已支付"},
	{target: service.ErrOrderNotApproved, code: response.CodeBadRequest, msg: "付款请求尚未批准"},
	{target: service.ErrPaymentWindowClosed, code: response.CodeBadRequest, msg: "付款窗口已关闭"},
	{target: service.ErrGatewayUnavailable, code: response.CodeInternal, msg: "支付网关暂不可用"},
}

var paymentVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
	{target: service.ErrOrderAlreadyPaid, code: response.CodeConflict, msg: "订单已支付"},
	{target: service.ErrOrderNotApproved, code: response.CodeBadRequest, msg: "付款请求尚未批准"},
	{target: service.ErrPaymentWindowClosed, code: response.CodeBadRequest, msg: "付款窗口已关闭"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, msg: "库存不足"},
	{target: service.ErrSignatureInvalid, code: response.CodeBadRequest, msg: "支付签名校验失败"},
}

var catalogGetErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "商品不存在"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "商品变体不存在"},
}
