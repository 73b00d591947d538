package repository

import (
	"fmt"
	"time"

	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

// VisitorGroupColumn 访客聚合允许的分组列
type VisitorGroupColumn string

const (
	VisitorGroupCountry   VisitorGroupColumn = "country"
	VisitorGroupUserAgent VisitorGroupColumn = "user_agent"
)

// AnalyticsRepository 后台统计聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type AnalyticsRepository interface {
	CountOrdersByStatus() ([]StatusCountRow, error)
	TopProducts(limit int) ([]TopProductRow, error)
	RevenueSummary() (RevenueSummaryRow, error)
	RevenueByPeriod(period string) ([]RevenuePeriodRow, error)
	CountVisitorsBy(column VisitorGroupColumn, from, to *time.Time) ([]KeyCountRow, error)
}

// GormAnalyticsRepository GORM 统计实现
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建统计仓库
func NewAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// CountOrdersByStatus 按状态统计订单数
func (r *GormAnalyticsRepository) CountOrdersByStatus() ([]StatusCountRow, error) {
	rows := make([]StatusCountRow, 0)
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

// TopProducts 按销量排行（已删除的商品标题为空）
func (r *GormAnalyticsRepository) TopProducts(limit int) ([]TopProductRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]TopProductRow, 0)
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, products.title AS title, SUM(order_items.quantity) AS total_quantity").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.title").
		Order("total_quantity DESC, order_items.product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// RevenueSummary 全部订单的营收与数量
func (r *GormAnalyticsRepository) RevenueSummary() (RevenueSummaryRow, error) {
	var row RevenueSummaryRow
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error
	return row, err
}

// RevenueByPeriod 按日/月/年聚合营收，周期升序
func (r *GormAnalyticsRepository) RevenueByPeriod(period string) ([]RevenuePeriodRow, error) {
	expr, err := periodKeyExprByDialect(dbDialectName(r.db), "created_at", period)
	if err != nil {
		return nil, err
	}
	rows := make([]RevenuePeriodRow, 0)
	err = r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s AS period, COALESCE(SUM(total), 0) AS total", expr)).
		Group(expr).
		Order("period ASC").
		Scan(&rows).Error
	return rows, err
}

// CountVisitorsBy 按国家或 UA 统计访问次数
// 说明：分组列仅允许白名单取值，时间条件全部参数绑定。
func (r *GormAnalyticsRepository) CountVisitorsBy(column VisitorGroupColumn, from, to *time.Time) ([]KeyCountRow, error) {
	switch column {
	case VisitorGroupCountry, VisitorGroupUserAgent:
	default:
		return nil, fmt.Errorf("unsupported visitor group column: %s", column)
	}
	query := applyCreatedRange(r.db.Model(&models.Visitor{}), "created_at", from, to)
	rows := make([]KeyCountRow, 0)
	err := query.
		Select(fmt.Sprintf("%s AS group_key, COUNT(*) AS count", column)).
		Group(string(column)).
		Order("count DESC, group_key ASC").
		Scan(&rows).Error
	return rows, err
}
