package metrics

// SaleLine is the part of a sale record the aggregator reads.
type SaleLine struct {
	PaymentMode  string
	SellingPrice float64
	CostPrice    float64
	Quantity     int
}

// Total is SellingPrice × Quantity.
func (s SaleLine) Total() float64 {
	return s.SellingPrice * float64(s.Quantity)
}

// Margin is (SellingPrice − CostPrice) × Quantity.
func (s SaleLine) Margin() float64 {
	return (s.SellingPrice - s.CostPrice) * float64(s.Quantity)
}

// SaleSummary totals a set of sales.
type SaleSummary struct {
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
	Quantity int     `json:"quantity"`
	Count    int     `json:"count"`
}

// SummarizeSales sums revenue, margin and quantity over sales.
func SummarizeSales(sales []SaleLine) SaleSummary {
	var s SaleSummary
	for _, line := range sales {
		s.Revenue += line.Total()
		s.Profit += line.Margin()
		s.Quantity += line.Quantity
		s.Count++
	}
	return s
}

// PaymentShare is the revenue taken through one payment mode.
type PaymentShare struct {
	Mode   string  `json:"mode"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"`
}

// PaymentBreakdown groups sales revenue by payment mode. The result has one
// entry per mode in modes, in that order, followed by any mode found in
// sales but not listed, in order of first appearance.
func PaymentBreakdown(sales []SaleLine, modes []string) []PaymentShare {
	out := make([]PaymentShare, 0, len(modes))
	index := make(map[string]int, len(modes))
	for _, m := range modes {
		if _, dup := index[m]; dup {
			continue
		}
		index[m] = len(out)
		out = append(out, PaymentShare{Mode: m})
	}

	for _, s := range sales {
		i, ok := index[s.PaymentMode]
		if !ok {
			i = len(out)
			index[s.PaymentMode] = i
			out = append(out, PaymentShare{Mode: s.PaymentMode})
		}
		out[i].Amount += s.Total()
		out[i].Count++
	}

	amounts := make([]float64, len(out))
	for i := range out {
		amounts[i] = out[i].Amount
	}
	for i, share := range Shares(amounts) {
		out[i].Share = share
	}
	return out
}
