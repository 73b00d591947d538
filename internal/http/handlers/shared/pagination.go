package shared

import (
	"strconv"

	"github.com/furniture-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// ReadPagination 读取 page / page_size 查询参数。
func ReadPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return NormalizePagination(page, pageSize)
}

// ReadOptionalPagination 仅在携带 page 或 page_size 时分页，否则返回全部记录（pageSize 为 0）。
func ReadOptionalPagination(c *gin.Context) (int, int, bool) {
	_, hasPage := c.GetQuery("page")
	_, hasPageSize := c.GetQuery("page_size")
	if !hasPage && !hasPageSize {
		return 1, 0, false
	}
	page, pageSize := ReadPagination(c)
	return page, pageSize, true
}

// RespondList 按是否分页输出列表
func RespondList(c *gin.Context, data interface{}, page, pageSize int, total int64, paged bool) {
	if !paged {
		response.Success(c, data)
		return
	}
	response.SuccessWithPage(c, data, BuildPagination(page, pageSize, total))
}

// BuildPagination 构造分页信息。
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
