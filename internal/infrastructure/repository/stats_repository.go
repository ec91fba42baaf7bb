package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	domainRepo "github.com/sangkips/stockboard-api/internal/domain/repository"
	"gorm.io/gorm"
)

type statsRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewStatsRepository creates a stats repository that groups timestamps by
// the calendar of loc.
func NewStatsRepository(db *gorm.DB, loc *time.Location) domainRepo.StatsRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &statsRepository{db: db, loc: loc}
}

// periodRow is one GROUP BY row. Unused key columns stay zero.
type periodRow struct {
	Year   int
	Month  int
	Day    int
	Amount float64
	Profit float64
	Count  int64
}

func (p periodRow) period() metrics.Period {
	return metrics.Period{Year: p.Year, Month: p.Month, Day: p.Day}
}

// source describes one table feeding the buckets
type source struct {
	model    interface{}
	owner    string // owner column for the visibility scope
	dateExpr string // timestamp or date column, before the key is extracted
	zoned    bool   // dateExpr is a timestamptz and needs AT TIME ZONE
	measures string
}

var (
	salesSource = source{
		model:    &entity.Sale{},
		owner:    "user_id",
		dateExpr: "created_at",
		zoned:    true,
		measures: "SUM(selling_price * quantity) / 100.0 AS amount, " +
			"SUM((selling_price - product_price) * quantity) / 100.0 AS profit, " +
			"COUNT(*) AS count",
	}
	expensesSource = source{
		model:    &entity.Expense{},
		owner:    "user_id",
		dateExpr: `"date"`,
		measures: "SUM(amount) / 100.0 AS amount",
	}
	purchasesSource = source{
		model:    &entity.Purchase{},
		owner:    "seller_id",
		dateExpr: "created_at",
		zoned:    true,
		measures: "SUM(total_price) / 100.0 AS amount",
	}
)

// keyParts lists the calendar fields a granularity groups by
func keyParts(g metrics.Granularity) []string {
	switch g {
	case metrics.Daily:
		return []string{"year", "month", "day"}
	case metrics.Monthly:
		return []string{"year", "month"}
	default:
		return []string{"year"}
	}
}

// localExpr returns the SQL expression of the source date in the repository
// timezone, and the bind args it needs.
func (r *statsRepository) localExpr(src source) (string, []interface{}) {
	if !src.zoned {
		return src.dateExpr, nil
	}
	return "(" + src.dateExpr + " AT TIME ZONE ?)", []interface{}{r.loc.String()}
}

func (r *statsRepository) group(ctx context.Context, src source, g metrics.Granularity, filter func(*gorm.DB, string, []interface{}) *gorm.DB) ([]periodRow, error) {
	expr, exprArgs := r.localExpr(src)
	parts := keyParts(g)

	cols := make([]string, 0, len(parts)+1)
	var args []interface{}
	for _, part := range parts {
		cols = append(cols, fmt.Sprintf("EXTRACT(%s FROM %s)::int AS %s", strings.ToUpper(part), expr, part))
		args = append(args, exprArgs...)
	}
	cols = append(cols, src.measures)
	keys := strings.Join(parts, ", ")

	query := r.db.WithContext(ctx).Model(src.model).
		Scopes(OwnerScope(ctx, src.owner)).
		Select(strings.Join(cols, ", "), args...)
	if filter != nil {
		query = filter(query, expr, exprArgs)
	}

	var rows []periodRow
	err := query.Group(keys).Order(keys).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group %T by %s: %w", src.model, g, err)
	}
	return rows, nil
}

// collect runs the three grouped queries and merges them into buckets
// ordered by period.
func (r *statsRepository) collect(ctx context.Context, g metrics.Granularity, filter func(*gorm.DB, string, []interface{}) *gorm.DB) ([]metrics.StatBucket, error) {
	sales, err := r.group(ctx, salesSource, g, filter)
	if err != nil {
		return nil, err
	}
	expenses, err := r.group(ctx, expensesSource, g, filter)
	if err != nil {
		return nil, err
	}
	purchases, err := r.group(ctx, purchasesSource, g, filter)
	if err != nil {
		return nil, err
	}
	return mergeBuckets(sales, expenses, purchases), nil
}

// mergeBuckets builds one bucket per period found in any source. A field
// stays nil when its source has no row for that period.
func mergeBuckets(sales, expenses, purchases []periodRow) []metrics.StatBucket {
	byPeriod := make(map[metrics.Period]*metrics.StatBucket)
	bucket := func(p metrics.Period) *metrics.StatBucket {
		b, ok := byPeriod[p]
		if !ok {
			b = &metrics.StatBucket{Period: p}
			byPeriod[p] = b
		}
		return b
	}

	for _, row := range sales {
		b := bucket(row.period())
		revenue, profit, count := row.Amount, row.Profit, row.Count
		b.Revenue, b.Profit, b.SalesCount = &revenue, &profit, &count
	}
	for _, row := range expenses {
		amount := row.Amount
		bucket(row.period()).Expenses = &amount
	}
	for _, row := range purchases {
		amount := row.Amount
		bucket(row.period()).Purchases = &amount
	}

	buckets := make([]metrics.StatBucket, 0, len(byPeriod))
	for _, b := range byPeriod {
		buckets = append(buckets, *b)
	}
	sortBuckets(buckets)
	return buckets
}

func sortBuckets(buckets []metrics.StatBucket) {
	sort.Slice(buckets, func(i, j int) bool {
		a, b := buckets[i].Period, buckets[j].Period
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Day < b.Day
	})
}

func (r *statsRepository) DailyBuckets(ctx context.Context, from, to time.Time) ([]metrics.StatBucket, error) {
	// Compare in local calendar days so a date column and a timestamp agree
	start, end := from.In(r.loc).Format("2006-01-02"), to.In(r.loc).Format("2006-01-02")
	return r.collect(ctx, metrics.Daily, func(db *gorm.DB, expr string, args []interface{}) *gorm.DB {
		bound := make([]interface{}, 0, 2*len(args)+2)
		bound = append(bound, args...)
		bound = append(bound, start)
		bound = append(bound, args...)
		bound = append(bound, end)
		return db.Where("("+expr+")::date >= ? AND ("+expr+")::date < ?", bound...)
	})
}

func (r *statsRepository) MonthlyBuckets(ctx context.Context, year int) ([]metrics.StatBucket, error) {
	return r.collect(ctx, metrics.Monthly, func(db *gorm.DB, expr string, args []interface{}) *gorm.DB {
		bound := append(append([]interface{}{}, args...), year)
		return db.Where("EXTRACT(YEAR FROM "+expr+")::int = ?", bound...)
	})
}

func (r *statsRepository) YearlyBuckets(ctx context.Context) ([]metrics.StatBucket, error) {
	return r.collect(ctx, metrics.Yearly, nil)
}
