// Package money converts between the cent amounts stored in the database and
// the decimal amounts exchanged with clients.
package money

import "github.com/shopspring/decimal"

// ToCents converts a decimal amount to cents, rounding half away from zero
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

// FromCents converts cents to a decimal amount
func FromCents(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// Multiply returns cents × quantity
func Multiply(cents int64, quantity int) int64 {
	return cents * int64(quantity)
}
