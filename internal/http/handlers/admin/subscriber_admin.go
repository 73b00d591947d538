package admin

import (
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ListSubscribers 订阅列表
func (h *Handler) ListSubscribers(c *gin.Context) {
	subscribers, err := h.SubscriberService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, subscribers)
}

// DeleteSubscriber 删除订阅
func (h *Handler) DeleteSubscriber(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SubscriberService.Unsubscribe(id); err != nil {
		respondWithMappedError(c, err, subscriberErrorRules)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.subscriber_deleted"), gin.H{"id": id})
}
