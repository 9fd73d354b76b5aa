package utils

import "github.com/shopspring/decimal"

// RoundMoney rounds half-up to two decimal places.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ToMinorUnits rounds to cents first and only then scales, so 19.999 becomes 2000.
func ToMinorUnits(v float64) int64 {
	return decimal.NewFromFloat(v).Round(2).Shift(2).IntPart()
}

func FromMinorUnits(v int64) float64 {
	return decimal.New(v, -2).InexactFloat64()
}

func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
