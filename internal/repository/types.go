package repository

import (
	"time"

	"github.com/furniture-shop/internal/models"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page            int
	PageSize        int
	Search          string
	Category        string
	IncludeArchived bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	WithUser    bool
	WithProduct bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// VisitorListFilter 查询访客记录的过滤条件
type VisitorListFilter struct {
	Page        int
	PageSize    int
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// StatusCountRow 订单状态计数
type StatusCountRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopProductRow 销量排行原始行
type TopProductRow struct {
	ProductID uint    `json:"productId"`
	Title     *string `json:"-"`
	Quantity  int64   `gorm:"column:total_quantity" json:"quantity"`
}

// RevenueSummaryRow 营收汇总
type RevenueSummaryRow struct {
	Total models.Money `json:"total"`
	Count int64        `json:"count"`
}

// RevenuePeriodRow 按周期聚合的营收
type RevenuePeriodRow struct {
	Period string       `json:"period"`
	Total  models.Money `json:"total"`
}

// KeyCountRow 按字段聚合的计数
type KeyCountRow struct {
	Key   *string `gorm:"column:group_key" json:"key"`
	Count int64   `json:"count"`
}
