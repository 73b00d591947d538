package service

import (
	"strings"
	"time"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"
)

const (
	defaultTopProductsLimit = 5
	maxTopProductsLimit     = 50
	unknownProductTitle     = "Unknown"
)

// AnalyticsService 后台统计服务（只读）
type AnalyticsService struct {
	repo        repository.AnalyticsRepository
	visitorRepo repository.VisitorRepository
}

// NewAnalyticsService 创建统计服务
func NewAnalyticsService(repo repository.AnalyticsRepository, visitorRepo repository.VisitorRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, visitorRepo: visitorRepo}
}

// TopProduct 销量排行项
type TopProduct struct {
	ProductID uint   `json:"productId"`
	Title     string `json:"title"`
	Quantity  int64  `json:"quantity"`
}

// DateRange 统计时间范围（from 含，to 不含）
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// StatusCount 按状态统计订单数
func (s *AnalyticsService) StatusCount() ([]repository.StatusCountRow, error) {
	return s.repo.CountOrdersByStatus()
}

// TopProducts 销量前 N 的商品，已删除商品标题显示为 Unknown
func (s *AnalyticsService) TopProducts(limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = defaultTopProductsLimit
	}
	if limit > maxTopProductsLimit {
		limit = maxTopProductsLimit
	}
	rows, err := s.repo.TopProducts(limit)
	if err != nil {
		return nil, err
	}
	result := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		title := unknownProductTitle
		if row.Title != nil && strings.TrimSpace(*row.Title) != "" {
			title = *row.Title
		}
		result = append(result, TopProduct{
			ProductID: row.ProductID,
			Title:     title,
			Quantity:  row.Quantity,
		})
	}
	return result, nil
}

// RevenueSummary 营收汇总
func (s *AnalyticsService) RevenueSummary() (repository.RevenueSummaryRow, error) {
	row, err := s.repo.RevenueSummary()
	if err != nil {
		return repository.RevenueSummaryRow{}, err
	}
	row.Total = models.NewMoneyFromDecimal(row.Total.Decimal)
	return row, nil
}

// RevenueByPeriod 按日/月/年聚合营收
func (s *AnalyticsService) RevenueByPeriod(period string) ([]repository.RevenuePeriodRow, error) {
	switch period {
	case constants.PeriodDay, constants.PeriodMonth, constants.PeriodYear:
	default:
		return nil, ErrPeriodInvalid
	}
	return s.repo.RevenueByPeriod(period)
}

// VisitorsByCountry 按国家统计访问次数
func (s *AnalyticsService) VisitorsByCountry(rng DateRange) ([]repository.KeyCountRow, error) {
	return s.repo.CountVisitorsBy(repository.VisitorGroupCountry, rng.From, rng.To)
}

// VisitorsByUserAgent 按 UA 统计访问次数
func (s *AnalyticsService) VisitorsByUserAgent(rng DateRange) ([]repository.KeyCountRow, error) {
	return s.repo.CountVisitorsBy(repository.VisitorGroupUserAgent, rng.From, rng.To)
}

// ListVisitors 分页查询访问记录（按时间倒序）
func (s *AnalyticsService) ListVisitors(rng DateRange, page, pageSize int) ([]models.Visitor, int64, error) {
	return s.visitorRepo.List(repository.VisitorListFilter{
		Page:        page,
		PageSize:    pageSize,
		CreatedFrom: rng.From,
		CreatedTo:   rng.To,
	})
}

// ParseDateRange 解析 from/to 查询参数
// 支持 2006-01-02 与 RFC3339；纯日期的 to 包含当天。
func ParseDateRange(fromRaw, toRaw string) (DateRange, error) {
	from, _, err := parseRangeTime(fromRaw)
	if err != nil {
		return DateRange{}, ErrDateRangeInvalid
	}
	to, dateOnly, err := parseRangeTime(toRaw)
	if err != nil {
		return DateRange{}, ErrDateRangeInvalid
	}
	if to != nil && dateOnly {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	if from != nil && to != nil && !from.Before(*to) {
		return DateRange{}, ErrDateRangeInvalid
	}
	return DateRange{From: from, To: to}, nil
}

func parseRangeTime(raw string) (*time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, false, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, false, err
	}
	return &t, true, nil
}
