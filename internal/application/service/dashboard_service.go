package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	statsRepo   repository.StatsRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	loc         *time.Location
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service. Calendar periods
// such as "today" are taken in loc.
func NewDashboardService(
	statsRepo repository.StatsRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		statsRepo:   statsRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// WithClock replaces the time source, for tests
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// DashboardSummary is the headline figures of the dashboard
type DashboardSummary struct {
	Today         metrics.ChartPoint     `json:"today"`
	Month         metrics.ChartPoint     `json:"month"`
	Year          metrics.ChartPoint     `json:"year"`
	Stock         *StockValue            `json:"stock"`
	LowStockCount int                    `json:"low_stock_count"`
	PaymentModes  []metrics.PaymentShare `json:"payment_modes"`
	Timezone      string                 `json:"timezone"`
	GeneratedAt   time.Time              `json:"generated_at"`
}

// DashboardChart is a series of chart points at one granularity
type DashboardChart struct {
	Granularity metrics.Granularity  `json:"granularity"`
	Points      []metrics.ChartPoint `json:"points"`
}

// today returns the local start of the current day and of the next one
func (s *DashboardService) today() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// GetSummary returns today, this month and this year for the caller, plus
// stock value and today's takings per payment mode. Sellers see figures for
// their own sales only.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}

	start, end := s.today()

	daily, err := s.statsRepo.DailyBuckets(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily buckets: %w", err)
	}
	monthly, err := s.statsRepo.MonthlyBuckets(ctx, start.Year())
	if err != nil {
		return nil, fmt.Errorf("monthly buckets: %w", err)
	}
	yearly, err := s.statsRepo.YearlyBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("yearly buckets: %w", err)
	}

	products, err := s.productRepo.ListAll(ctx, &repository.ProductFilterParams{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	lowStock := 0
	for i := range products {
		if products[i].IsLowStock() {
			lowStock++
		}
	}

	sales, err := s.saleRepo.Between(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("today's sales: %w", err)
	}

	return &DashboardSummary{
		Today:         metrics.PointOf(metrics.Daily, metrics.Lookup(daily, metrics.PeriodOf(start, metrics.Daily))),
		Month:         metrics.PointOf(metrics.Monthly, metrics.Lookup(monthly, metrics.PeriodOf(start, metrics.Monthly))),
		Year:          metrics.PointOf(metrics.Yearly, metrics.Lookup(yearly, metrics.PeriodOf(start, metrics.Yearly))),
		Stock:         stockValueOf(products),
		LowStockCount: lowStock,
		PaymentModes:  paymentBreakdown(sales),
		Timezone:      s.loc.String(),
		GeneratedAt:   s.now().In(s.loc),
	}, nil
}

// GetChart returns chart points for granularity. A daily chart has at most
// one point, today.
func (s *DashboardService) GetChart(ctx context.Context, granularity string) (*DashboardChart, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}

	g, ok := metrics.ParseGranularity(granularity)
	if !ok {
		return nil, apperror.NewFieldError("granularity", "must be one of daily, monthly, yearly")
	}

	start, end := s.today()

	var (
		buckets []metrics.StatBucket
		err     error
	)
	switch g {
	case metrics.Daily:
		buckets, err = s.statsRepo.DailyBuckets(ctx, start, end)
	case metrics.Monthly:
		buckets, err = s.statsRepo.MonthlyBuckets(ctx, start.Year())
	default:
		buckets, err = s.statsRepo.YearlyBuckets(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s buckets: %w", g, err)
	}

	return &DashboardChart{
		Granularity: g,
		Points:      metrics.Shape(g, buckets),
	}, nil
}

// paymentBreakdown lists every payment mode with its rounded takings
func paymentBreakdown(sales []entity.Sale) []metrics.PaymentShare {
	lines := make([]metrics.SaleLine, 0, len(sales))
	for _, sale := range sales {
		lines = append(lines, saleLineOf(sale))
	}

	modes := make([]string, 0, len(enum.PaymentModes()))
	for _, m := range enum.PaymentModes() {
		modes = append(modes, string(m))
	}

	shares := metrics.PaymentBreakdown(lines, modes)
	for i := range shares {
		shares[i].Amount = metrics.Round2(shares[i].Amount)
		shares[i].Share = metrics.Round2(shares[i].Share)
	}
	return shares
}
