package metrics

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TodayLabel is the label of the single point a daily chart shows.
const TodayLabel = "Today"

// ChartPoint is one labelled point of a dashboard chart.
type ChartPoint struct {
	Label      string  `json:"label"`
	Revenue    float64 `json:"revenue"`
	Profit     float64 `json:"profit"`
	Expenses   float64 `json:"expenses"`
	Purchases  float64 `json:"purchases"`
	NetProfit  float64 `json:"net_profit"`
	SalesCount int64   `json:"sales_count"`
}

// Label formats p for granularity g: "2024" for yearly, "March 2024" for
// monthly and "Today" for daily.
func Label(g Granularity, p Period) string {
	switch g {
	case Daily:
		return TodayLabel
	case Monthly:
		if p.Month < 1 || p.Month > 12 {
			return strconv.Itoa(p.Year)
		}
		return time.Month(p.Month).String() + " " + strconv.Itoa(p.Year)
	default:
		return strconv.Itoa(p.Year)
	}
}

// Shape converts buckets into chart points in the order given. Amounts are
// rounded to two decimal places.
func Shape(g Granularity, buckets []StatBucket) []ChartPoint {
	points := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, PointOf(g, b.Totals()))
	}
	return points
}

// PointOf converts resolved totals into a chart point.
func PointOf(g Granularity, t Totals) ChartPoint {
	return ChartPoint{
		Label:      Label(g, t.Period),
		Revenue:    Round2(t.Revenue),
		Profit:     Round2(t.Profit),
		Expenses:   Round2(t.Expenses),
		Purchases:  Round2(t.Purchases),
		NetProfit:  Round2(t.NetProfit),
		SalesCount: t.SalesCount,
	}
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
