// Package metrics turns raw sale, expense and purchase records and the
// pre-aggregated stat buckets produced by the stats repository into the
// figures the dashboard displays.
//
// Every function here is pure: inputs are never mutated, nothing blocks and
// missing numbers are read as zero.
package metrics

import "time"

// Granularity is the time resolution a bucket or chart is expressed in.
type Granularity string

const (
	Daily   Granularity = "daily"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// ParseGranularity accepts "daily", "monthly" or "yearly".
func ParseGranularity(s string) (Granularity, bool) {
	switch g := Granularity(s); g {
	case Daily, Monthly, Yearly:
		return g, true
	}
	return "", false
}

// Period is a bucket key. Month and Day are zero when the granularity does
// not carry them.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// PeriodOf returns the key of the bucket containing t at granularity g.
func PeriodOf(t time.Time, g Granularity) Period {
	switch g {
	case Daily:
		return Period{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	case Monthly:
		return Period{Year: t.Year(), Month: int(t.Month())}
	default:
		return Period{Year: t.Year()}
	}
}

// Matches reports whether key has the same components as p. Components that
// are zero in p are not compared.
func (p Period) Matches(key Period) bool {
	if p.Year != key.Year {
		return false
	}
	if p.Month != 0 && p.Month != key.Month {
		return false
	}
	if p.Day != 0 && p.Day != key.Day {
		return false
	}
	return true
}

// StatBucket is one pre-summed period as delivered by the stats repository.
// Nil fields are values the source did not provide.
type StatBucket struct {
	Period
	Revenue    *float64 `json:"revenue"`
	Profit     *float64 `json:"profit"`
	Expenses   *float64 `json:"expenses"`
	Purchases  *float64 `json:"purchases"`
	SalesCount *int64   `json:"sales_count"`
}

// Totals is a StatBucket with every field resolved to a number.
type Totals struct {
	Period     Period  `json:"period"`
	Revenue    float64 `json:"revenue"`
	Profit     float64 `json:"profit"`
	Expenses   float64 `json:"expenses"`
	Purchases  float64 `json:"purchases"`
	NetProfit  float64 `json:"net_profit"`
	SalesCount int64   `json:"sales_count"`
}

// Totals resolves missing fields to zero and derives the net profit.
func (b StatBucket) Totals() Totals {
	t := Totals{
		Period:    b.Period,
		Revenue:   OrZero(b.Revenue),
		Profit:    OrZero(b.Profit),
		Expenses:  OrZero(b.Expenses),
		Purchases: OrZero(b.Purchases),
	}
	if b.SalesCount != nil {
		t.SalesCount = *b.SalesCount
	}
	t.NetProfit = NetProfit(t.Profit, t.Expenses)
	return t
}

// Find returns the first bucket whose key matches target.
func Find(buckets []StatBucket, target Period) (StatBucket, bool) {
	for _, b := range buckets {
		if target.Matches(b.Period) {
			return b, true
		}
	}
	return StatBucket{}, false
}

// Lookup returns the totals of the bucket matching target, or all-zero
// totals keyed on target when there is none.
func Lookup(buckets []StatBucket, target Period) Totals {
	b, ok := Find(buckets, target)
	if !ok {
		return Totals{Period: target}
	}
	return b.Totals()
}

// OrZero dereferences v, reading nil as 0.
func OrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
