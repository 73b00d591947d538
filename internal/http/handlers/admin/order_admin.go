package admin

import (
	"errors"
	"fmt"
	"strings"

	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// adminOrderView 后台订单视图，用户仅暴露摘要
type adminOrderView struct {
	models.Order
	User *models.UserSummary `json:"user,omitempty"`
}

func toAdminOrderViews(orders []models.Order) []adminOrderView {
	views := make([]adminOrderView, 0, len(orders))
	for _, order := range orders {
		view := adminOrderView{Order: order}
		if order.User != nil {
			view.User = &models.UserSummary{
				ID:    order.User.ID,
				Email: order.User.Email,
				Name:  order.User.Name,
			}
		}
		views = append(views, view)
	}
	return views
}

// ListOrders 后台订单列表，可按 status 过滤；未传分页参数时返回全部
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize, paged := handlershared.ReadOptionalPagination(c)
	status := strings.TrimSpace(c.Query("status"))
	orders, total, err := h.OrderService.ListAdmin(status, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrOrderStatusInvalid) {
			respondErrorWithMsg(c, response.CodeBadRequest, fmt.Sprintf("Invalid status: %s", status), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	handlershared.RespondList(c, toAdminOrderViews(orders), page, pageSize, total, paged)
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderStatusInvalid) {
			respondErrorWithMsg(c, response.CodeBadRequest, fmt.Sprintf("Invalid status: %s", req.Status), nil)
			return
		}
		respondWithMappedError(c, err, orderStatusErrorRules)
		return
	}
	requestLog(c).Infow("admin_order_status_updated", "order_id", order.ID, "status", order.Status)
	response.Success(c, order)
}

// GetOrderStatusHistory 订单状态流水
func (h *Handler) GetOrderStatusHistory(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := h.OrderService.FindStatusHistory(id)
	if err != nil {
		respondWithMappedError(c, err, orderStatusErrorRules)
		return
	}
	response.Success(c, history)
}
