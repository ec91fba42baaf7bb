package repository

import (
	"context"
	"time"

	"github.com/sangkips/stockboard-api/internal/domain/metrics"
)

// StatsRepository pre-aggregates sales, expenses and purchases into
// period buckets. Buckets come back in chronological order and only for
// periods that have at least one record.
type StatsRepository interface {
	// DailyBuckets returns one bucket per day in [from, to)
	DailyBuckets(ctx context.Context, from, to time.Time) ([]metrics.StatBucket, error)
	// MonthlyBuckets returns one bucket per month of year
	MonthlyBuckets(ctx context.Context, year int) ([]metrics.StatBucket, error)
	// YearlyBuckets returns one bucket per year on record
	YearlyBuckets(ctx context.Context) ([]metrics.StatBucket, error)
}
