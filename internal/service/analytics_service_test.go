package service

import (
	"errors"
	"testing"
	"time"

	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyticsRepo struct {
	repository.AnalyticsRepository
	topRows    []repository.TopProductRow
	topLimit   int
	periodRows []repository.RevenuePeriodRow
	lastPeriod string
	err        error
}

func (s *stubAnalyticsRepo) TopProducts(limit int) ([]repository.TopProductRow, error) {
	s.topLimit = limit
	return s.topRows, s.err
}

func (s *stubAnalyticsRepo) RevenueByPeriod(period string) ([]repository.RevenuePeriodRow, error) {
	s.lastPeriod = period
	return s.periodRows, s.err
}

func TestTopProductsUnknownFallbackAndLimit(t *testing.T) {
	title := "Oak Table"
	repo := &stubAnalyticsRepo{topRows: []repository.TopProductRow{
		{ProductID: 1, Title: &title, Quantity: 9},
		{ProductID: 2, Title: nil, Quantity: 4},
	}}
	svc := NewAnalyticsService(repo, nil)

	got, err := svc.TopProducts(0)
	require.NoError(t, err)
	assert.Equal(t, defaultTopProductsLimit, repo.topLimit)
	assert.Equal(t, []TopProduct{
		{ProductID: 1, Title: "Oak Table", Quantity: 9},
		{ProductID: 2, Title: "Unknown", Quantity: 4},
	}, got)

	_, err = svc.TopProducts(1000)
	require.NoError(t, err)
	assert.Equal(t, maxTopProductsLimit, repo.topLimit)

	repo.err = errors.New("db down")
	_, err = svc.TopProducts(3)
	assert.Error(t, err)
}

func TestRevenueByPeriodValidatesPeriod(t *testing.T) {
	repo := &stubAnalyticsRepo{periodRows: []repository.RevenuePeriodRow{{Period: "2026-04-10", Total: models.MustMoney("150")}}}
	svc := NewAnalyticsService(repo, nil)

	rows, err := svc.RevenueByPeriod("day")
	require.NoError(t, err)
	assert.Equal(t, "day", repo.lastPeriod)
	require.Len(t, rows, 1)
	assert.Equal(t, "150.00", rows[0].Total.String())

	_, err = svc.RevenueByPeriod("week")
	assert.ErrorIs(t, err, ErrPeriodInvalid)
	_, err = svc.RevenueByPeriod("day; DROP TABLE orders")
	assert.ErrorIs(t, err, ErrPeriodInvalid)
}

func TestAnalyticsAgainstDatabase(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewAnalyticsService(repository.NewAnalyticsRepository(db), repository.NewVisitorRepository(db))
	user := seedUser(t, db, "stats@example.com")
	day := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	for _, total := range []string{"100", "50"} {
		order := &models.Order{UserID: user.ID, Total: models.MustMoney(total), Status: "paid", CreatedAt: day}
		require.NoError(t, db.Create(order).Error)
		day = day.Add(3 * time.Hour)
	}

	rows, err := svc.RevenueByPeriod("day")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-04-10", rows[0].Period)
	assert.Equal(t, "150.00", rows[0].Total.String())

	summary, err := svc.RevenueSummary()
	require.NoError(t, err)
	assert.Equal(t, "150.00", summary.Total.String())
	assert.Equal(t, int64(2), summary.Count)

	counts, err := svc.StatusCount()
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(2), counts[0].Count)
}

func TestParseDateRange(t *testing.T) {
	rng, err := ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, rng.From)
	assert.Nil(t, rng.To)

	rng, err = ParseDateRange("2026-04-01", "2026-04-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *rng.From)
	assert.Equal(t, time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC), *rng.To)

	rng, err = ParseDateRange("2026-04-01T10:00:00Z", "2026-04-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, rng.To.Sub(*rng.From))

	_, err = ParseDateRange("2026-04-10' OR '1'='1", "")
	assert.ErrorIs(t, err, ErrDateRangeInvalid)
	_, err = ParseDateRange("2026-04-10", "2026-04-01")
	assert.ErrorIs(t, err, ErrDateRangeInvalid)
}
