package repository

import (
	"testing"
	"time"

	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/stretchr/testify/assert"
)

func TestSortBuckets(t *testing.T) {
	buckets := []metrics.StatBucket{
		{Period: metrics.Period{Year: 2024, Month: 3, Day: 2}},
		{Period: metrics.Period{Year: 2023, Month: 12, Day: 31}},
		{Period: metrics.Period{Year: 2024, Month: 3, Day: 1}},
		{Period: metrics.Period{Year: 2024, Month: 1, Day: 15}},
	}

	sortBuckets(buckets)

	got := make([]metrics.Period, len(buckets))
	for i, b := range buckets {
		got[i] = b.Period
	}
	assert.Equal(t, []metrics.Period{
		{Year: 2023, Month: 12, Day: 31},
		{Year: 2024, Month: 1, Day: 15},
		{Year: 2024, Month: 3, Day: 1},
		{Year: 2024, Month: 3, Day: 2},
	}, got)
}

func TestKeyParts(t *testing.T) {
	assert.Equal(t, []string{"year", "month", "day"}, keyParts(metrics.Daily))
	assert.Equal(t, []string{"year", "month"}, keyParts(metrics.Monthly))
	assert.Equal(t, []string{"year"}, keyParts(metrics.Yearly))
}

func TestLocalExpr(t *testing.T) {
	r := &statsRepository{loc: time.FixedZone("EAT", 3*3600)}

	expr, args := r.localExpr(salesSource)
	assert.Equal(t, "(created_at AT TIME ZONE ?)", expr)
	assert.Equal(t, []interface{}{"EAT"}, args)

	// Expense dates are calendar days already
	expr, args = r.localExpr(expensesSource)
	assert.Equal(t, `"date"`, expr)
	assert.Nil(t, args)
}

func TestPeriodRow_Period(t *testing.T) {
	row := periodRow{Year: 2024, Month: 2, Amount: 10}
	assert.Equal(t, metrics.Period{Year: 2024, Month: 2}, row.period())
}

func ref[T any](v T) *T { return &v }

func TestMergeBuckets(t *testing.T) {
	feb := metrics.Period{Year: 2024, Month: 2}
	mar := metrics.Period{Year: 2024, Month: 3}
	apr := metrics.Period{Year: 2024, Month: 4}

	tests := []struct {
		name      string
		sales     []periodRow
		expenses  []periodRow
		purchases []periodRow
		want      []metrics.StatBucket
	}{
		{
			name: "no rows",
			want: []metrics.StatBucket{},
		},
		{
			name:      "same period from every source",
			sales:     []periodRow{{Year: 2024, Month: 3, Amount: 120.5, Profit: 30, Count: 4}},
			expenses:  []periodRow{{Year: 2024, Month: 3, Amount: 12}},
			purchases: []periodRow{{Year: 2024, Month: 3, Amount: 60}},
			want: []metrics.StatBucket{
				{Period: mar, Revenue: ref(120.5), Profit: ref(30.0), SalesCount: ref(int64(4)), Expenses: ref(12.0), Purchases: ref(60.0)},
			},
		},
		{
			name:      "missing sources stay nil",
			sales:     []periodRow{{Year: 2024, Month: 4, Amount: 80, Count: 1}},
			expenses:  []periodRow{{Year: 2024, Month: 2, Amount: 5}},
			purchases: []periodRow{{Year: 2024, Month: 3, Amount: 40}, {Year: 2024, Month: 4, Amount: 9}},
			want: []metrics.StatBucket{
				{Period: feb, Expenses: ref(5.0)},
				{Period: mar, Purchases: ref(40.0)},
				{Period: apr, Revenue: ref(80.0), Profit: ref(0.0), SalesCount: ref(int64(1)), Purchases: ref(9.0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeBuckets(tt.sales, tt.expenses, tt.purchases))
		})
	}
}
