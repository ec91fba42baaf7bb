package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func n(v int64) *int64     { return &v }

func dailyBuckets() []StatBucket {
	return []StatBucket{
		{Period: Period{Year: 2024, Month: 3, Day: 1}, Revenue: f(100), Profit: f(40), Expenses: f(10), SalesCount: n(2)},
		{Period: Period{Year: 2024, Month: 3, Day: 2}, Revenue: f(200), Profit: f(80)},
		{Period: Period{Year: 2024, Month: 3, Day: 3}, Revenue: f(300), Profit: f(120), Expenses: f(20)},
		{Period: Period{Year: 2024, Month: 4, Day: 1}, Revenue: f(400)},
		{Period: Period{Year: 2025, Month: 3, Day: 1}, Revenue: f(500), Profit: f(1)},
	}
}

func TestParseGranularity(t *testing.T) {
	for _, s := range []string{"daily", "monthly", "yearly"} {
		g, ok := ParseGranularity(s)
		assert.True(t, ok, s)
		assert.Equal(t, Granularity(s), g)
	}
	_, ok := ParseGranularity("weekly")
	assert.False(t, ok)
}

func TestPeriodOf(t *testing.T) {
	ts := time.Date(2024, time.March, 9, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, Period{Year: 2024, Month: 3, Day: 9}, PeriodOf(ts, Daily))
	assert.Equal(t, Period{Year: 2024, Month: 3}, PeriodOf(ts, Monthly))
	assert.Equal(t, Period{Year: 2024}, PeriodOf(ts, Yearly))
}

func TestPeriodMatches(t *testing.T) {
	key := Period{Year: 2024, Month: 3, Day: 2}

	tests := []struct {
		name   string
		target Period
		want   bool
	}{
		{"exact day", Period{2024, 3, 2}, true},
		{"month only", Period{2024, 3, 0}, true},
		{"year only", Period{2024, 0, 0}, true},
		{"other day", Period{2024, 3, 3}, false},
		{"other month", Period{2024, 4, 0}, false},
		{"other year", Period{2023, 0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Matches(key))
		})
	}
}

func TestLookup_Match(t *testing.T) {
	got := Lookup(dailyBuckets(), Period{Year: 2024, Month: 3, Day: 3})

	assert.Equal(t, Period{Year: 2024, Month: 3, Day: 3}, got.Period)
	assert.Equal(t, 300.0, got.Revenue)
	assert.Equal(t, 120.0, got.Profit)
	assert.Equal(t, 20.0, got.Expenses)
	assert.Equal(t, 100.0, got.NetProfit)
}

func TestLookup_MissingFieldsAreZero(t *testing.T) {
	got := Lookup(dailyBuckets(), Period{Year: 2024, Month: 4, Day: 1})

	assert.Equal(t, 400.0, got.Revenue)
	assert.Zero(t, got.Profit)
	assert.Zero(t, got.Expenses)
	assert.Zero(t, got.Purchases)
	assert.Zero(t, got.SalesCount)
	assert.Zero(t, got.NetProfit)
}

func TestLookup_NoMatchReturnsZeroAndLeavesInputAlone(t *testing.T) {
	buckets := dailyBuckets()
	before := make([]StatBucket, len(buckets))
	copy(before, buckets)

	target := Period{Year: 2024, Month: 3, Day: 31}
	got := Lookup(buckets, target)

	assert.Equal(t, Totals{Period: target}, got)
	require.Len(t, buckets, 5)
	assert.Equal(t, before, buckets)
}

func TestLookup_EmptyInput(t *testing.T) {
	assert.Equal(t, Totals{Period: Period{Year: 2024}}, Lookup(nil, Period{Year: 2024}))
}

func TestLookup_FirstMatchWins(t *testing.T) {
	buckets := []StatBucket{
		{Period: Period{Year: 2024, Month: 1}, Revenue: f(1)},
		{Period: Period{Year: 2024, Month: 1}, Revenue: f(2)},
	}

	assert.Equal(t, 1.0, Lookup(buckets, Period{Year: 2024, Month: 1}).Revenue)
}

func TestFind_MonthlyTargetIgnoresDay(t *testing.T) {
	b, ok := Find(dailyBuckets(), Period{Year: 2024, Month: 4})

	require.True(t, ok)
	assert.Equal(t, Period{Year: 2024, Month: 4, Day: 1}, b.Period)
}

func TestLookup_Totality(t *testing.T) {
	buckets := dailyBuckets()
	for year := 2023; year <= 2025; year++ {
		for month := 0; month <= 12; month++ {
			for day := 0; day <= 31; day++ {
				target := Period{Year: year, Month: month, Day: day}
				got := Lookup(buckets, target)
				if b, ok := Find(buckets, target); ok {
					assert.True(t, target.Matches(b.Period))
					assert.Equal(t, b.Totals(), got)
				} else {
					assert.Equal(t, Totals{Period: target}, got)
				}
			}
		}
	}
}
