package public

import (
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 下单商品
type OrderItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// ShippingInfoRequest 收货信息
type ShippingInfoRequest struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Address1   string  `json:"address1"`
	Address2   *string `json:"address2"`
	City       string  `json:"city"`
	State      *string `json:"state"`
	PostalCode string  `json:"postalCode"`
	Country    string  `json:"country"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items        []OrderItemRequest  `json:"items"`
	ShippingInfo ShippingInfoRequest `json:"shippingInfo"`
}

// AttachShippingInfoRequest 补充收货信息请求
type AttachShippingInfoRequest struct {
	OrderID uint `json:"orderId"`
	ShippingInfoRequest
}

func (r ShippingInfoRequest) toServiceInput() service.ShippingInfoInput {
	return service.ShippingInfoInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Address1:   r.Address1,
		Address2:   r.Address2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	order, err := h.OrderService.Create(service.CreateOrderInput{
		UserID:       userID,
		Items:        items,
		ShippingInfo: req.ShippingInfo.toServiceInput(),
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Created(c, order)
}

// AttachShippingInfo 为已有订单补充收货信息
func (h *Handler) AttachShippingInfo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AttachShippingInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.OrderID == 0 {
		respondError(c, response.CodeBadRequest, "error.shipping_info_invalid", nil)
		return
	}
	info, err := h.OrderService.AttachShippingInfo(userID, req.OrderID, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, shippingInfoErrorRules)
		return
	}
	response.Created(c, info)
}

// ListMyOrders 当前用户订单
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize, paged := handlershared.ReadOptionalPagination(c)
	orders, total, err := h.OrderService.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	handlershared.RespondList(c, orders, page, pageSize, total, paged)
}
