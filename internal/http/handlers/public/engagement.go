package public

import (
	"github.com/furniture-shop/internal/constants"
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscribeRequest 订阅请求
type SubscribeRequest struct {
	Email string `json:"email"`
}

// ContactRequest 联系表单请求
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	handlershared.CaptchaPayloadRequest
}

// Subscribe 订阅邮件
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	subscriber, err := h.SubscriberService.Subscribe(req.Email)
	if err != nil {
		respondWithMappedError(c, err, subscribeErrorRules)
		return
	}
	response.Created(c, subscriber)
}

// Contact 提交联系表单
func (h *Handler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneContact, req.CaptchaPayloadRequest) {
		return
	}
	if _, err := h.ContactService.HandleMessage(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		respondWithMappedError(c, err, contactErrorRules)
		return
	}
	response.Success(c, gin.H{"success": true})
}

// GetCaptcha 获取图片验证码挑战
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		respondError(c, response.CodeNotFound, "error.captcha_disabled", nil)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, challenge)
}
