package public

import (
	"errors"

	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedHandlerError

var captchaErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
}

var signupErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
}

var loginErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
}

var passwordResetRequestErrorRules = []mappedHandlerError{
	{Target: service.ErrEmailNotFound, Code: response.CodeBadRequest, Key: "error.email_not_found"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_not_found"},
}

var passwordResetErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidResetToken, Code: response.CodeBadRequest, Key: "error.reset_token_invalid"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
}

var passwordChangeErrorRules = []mappedHandlerError{
	{Target: service.ErrUserNotFound, Code: response.CodeBadRequest, Key: "error.user_not_found"},
	{Target: service.ErrOldPasswordIncorrect, Code: response.CodeBadRequest, Key: "error.old_password_incorrect"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
}

var usernameChangeErrorRules = []mappedHandlerError{
	{Target: service.ErrUserNotFound, Code: response.CodeBadRequest, Key: "error.user_not_found"},
	{Target: service.ErrUsernameInvalid, Code: response.CodeBadRequest, Key: "error.username_invalid"},
}

var profileErrorRules = []mappedHandlerError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderItemsEmpty, Code: response.CodeBadRequest, Key: "error.order_items_empty"},
	{Target: service.ErrOrderItemInvalid, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrShippingInfoInvalid, Code: response.CodeBadRequest, Key: "error.shipping_info_invalid"},
}

var shippingInfoErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrShippingInfoInvalid, Code: response.CodeBadRequest, Key: "error.shipping_info_invalid"},
	{Target: service.ErrShippingInfoExists, Code: response.CodeConflict, Key: "error.shipping_info_exists"},
}

var subscribeErrorRules = []mappedHandlerError{
	{Target: service.ErrSubscriberEmailRequired, Code: response.CodeBadRequest, Key: "error.subscriber_email_required"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrSubscriberExists, Code: response.CodeConflict, Key: "error.subscriber_exists"},
}

var contactErrorRules = []mappedHandlerError{
	{Target: service.ErrContactFieldsRequired, Code: response.CodeBadRequest, Key: "error.contact_fields_required"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	handlershared.RespondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
}

// respondOrderCreateError 未知商品沿用 "Product {id} not found" 文案
func respondOrderCreateError(c *gin.Context, err error) {
	var notFound *service.ProductNotFoundError
	if errors.As(err, &notFound) {
		respondErrorWithMsg(c, response.CodeNotFound, notFound.Error(), nil)
		return
	}
	respondWithMappedError(c, err, orderCreateErrorRules)
}

// verifyCaptcha 校验场景验证码，失败时写入响应并返回 false
func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload handlershared.CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	if err := h.CaptchaService.Verify(scene, payload.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, captchaErrorRules)
		return false
	}
	return true
}
