package admin

import (
	"strconv"

	"github.com/furniture-shop/internal/constants"
	handlershared "github.com/furniture-shop/internal/http/handlers/shared"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetStatusCount 各状态订单数
func (h *Handler) GetStatusCount(c *gin.Context) {
	rows, err := h.AnalyticsService.StatusCount()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}

// GetTopProducts 销量排行
func (h *Handler) GetTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.AnalyticsService.TopProducts(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}

// GetRevenueSummary 营收汇总
func (h *Handler) GetRevenueSummary(c *gin.Context) {
	summary, err := h.AnalyticsService.RevenueSummary()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, summary)
}

// RevenueByPeriod 返回按粒度聚合营收的处理函数
func (h *Handler) RevenueByPeriod(period string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.AnalyticsService.RevenueByPeriod(period)
		if err != nil {
			respondWithMappedError(c, err, analyticsErrorRules)
			return
		}
		response.Success(c, rows)
	}
}

// GetRevenueByDay 按天营收
func (h *Handler) GetRevenueByDay(c *gin.Context) {
	h.RevenueByPeriod(constants.PeriodDay)(c)
}

// GetRevenueByMonth 按月营收
func (h *Handler) GetRevenueByMonth(c *gin.Context) {
	h.RevenueByPeriod(constants.PeriodMonth)(c)
}

// GetRevenueByYear 按年营收
func (h *Handler) GetRevenueByYear(c *gin.Context) {
	h.RevenueByPeriod(constants.PeriodYear)(c)
}

func readDateRange(c *gin.Context) (service.DateRange, bool) {
	rng, err := service.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		respondWithMappedError(c, err, analyticsErrorRules)
		return service.DateRange{}, false
	}
	return rng, true
}

// ListVisitors 访客记录分页
func (h *Handler) ListVisitors(c *gin.Context) {
	rng, ok := readDateRange(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ReadPagination(c)
	visitors, total, err := h.AnalyticsService.ListVisitors(rng, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, visitors, handlershared.BuildPagination(page, pageSize, total))
}

// GetVisitorsByCountry 按国家统计访客
func (h *Handler) GetVisitorsByCountry(c *gin.Context) {
	rng, ok := readDateRange(c)
	if !ok {
		return
	}
	rows, err := h.AnalyticsService.VisitorsByCountry(rng)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}

// GetVisitorsByUserAgent 按 UA 统计访客
func (h *Handler) GetVisitorsByUserAgent(c *gin.Context) {
	rng, ok := readDateRange(c)
	if !ok {
		return
	}
	rows, err := h.AnalyticsService.VisitorsByUserAgent(rng)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}
