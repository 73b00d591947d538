package public

import (
	"strconv"
	"strings"

	"github.com/furniture-shop/internal/constants"
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
)

var productFetchErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

// ListProducts 商品列表
// 管理员可通过 include_archived=true 查看归档商品。
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize, paged := handlershared.ReadOptionalPagination(c)
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))
	includeArchived, _ := strconv.ParseBool(c.Query("include_archived"))

	list := h.ProductService.ListPublic
	if includeArchived && handlershared.GetUserRole(c) == constants.RoleAdmin {
		list = h.ProductService.ListAdmin
	}
	products, total, err := list(search, category, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	handlershared.RespondList(c, products, page, pageSize, total, paged)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, productFetchErrorRules)
		return
	}
	response.Success(c, product)
}
