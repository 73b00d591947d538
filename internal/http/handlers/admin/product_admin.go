package admin

import (
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/i18n"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 创建/更新商品请求，更新时缺省字段保持不变
type ProductRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	ImageURL    *string       `json:"imageUrl"`
	Category    *string       `json:"category"`
	Price       *models.Money `json:"price"`
	Archived    *bool         `json:"archived"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	return service.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Price:       r.Price,
		Archived:    r.Archived,
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID)
	response.Created(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（被订单引用时拒绝）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.product_deleted"), gin.H{"id": id})
}

// ArchiveProduct 归档商品
func (h *Handler) ArchiveProduct(c *gin.Context) {
	h.setProductArchived(c, true)
}

// UnarchiveProduct 取消归档
func (h *Handler) UnarchiveProduct(c *gin.Context) {
	h.setProductArchived(c, false)
}

func (h *Handler) setProductArchived(c *gin.Context, archived bool) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	action := h.ProductService.Unarchive
	if archived {
		action = h.ProductService.Archive
	}
	product, err := action(id)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	response.Success(c, product)
}
