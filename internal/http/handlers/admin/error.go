package admin

import (
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mappedHandlerError = handlershared.MappedHandlerError

var productErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrProductInUse, Code: response.CodeConflict, Key: "error.product_in_use"},
}

var orderStatusErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusTransitionInvalid, Code: response.CodeBadRequest, Key: "error.order_status_transition_invalid"},
}

var analyticsErrorRules = []mappedHandlerError{
	{Target: service.ErrPeriodInvalid, Code: response.CodeBadRequest, Key: "error.period_invalid"},
	{Target: service.ErrDateRangeInvalid, Code: response.CodeBadRequest, Key: "error.date_range_invalid"},
}

var subscriberErrorRules = []mappedHandlerError{
	{Target: service.ErrSubscriberNotFound, Code: response.CodeNotFound, Key: "error.subscriber_not_found"},
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	handlershared.RespondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
}
