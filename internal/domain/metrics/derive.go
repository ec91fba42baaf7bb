package metrics

// NetProfit is the margin left after the period's expenses. It is not
// floored at zero.
func NetProfit(grossProfit, totalExpenses float64) float64 {
	return grossProfit - totalExpenses
}

// CreditAmount is what a customer still owes after the down payment.
// Negative results are passed through.
func CreditAmount(totalAmount, downPayment float64) float64 {
	return totalAmount - downPayment
}

// RemainingAmount is what is still owed on a debit after paidAmount.
// Negative results are passed through.
func RemainingAmount(totalAmount, paidAmount float64) float64 {
	return totalAmount - paidAmount
}

// StockLine is one product as seen by the stock value display.
type StockLine struct {
	Price float64
	Stock int
}

// Value is Price × Stock.
func (l StockLine) Value() float64 {
	return l.Price * float64(l.Stock)
}

// StockValue sums Price × Stock over lines.
func StockValue(lines []StockLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Value()
	}
	return total
}

// Shares returns each value as a percentage of the sum of values. A zero
// sum yields a zero share for every value.
func Shares(values []float64) []float64 {
	shares := make([]float64, len(values))
	var total float64
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return shares
	}
	for i, v := range values {
		shares[i] = v / total * 100
	}
	return shares
}
