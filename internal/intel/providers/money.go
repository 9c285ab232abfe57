package providers

import (
	"strings"

	"github.com/shopspring/decimal"
)

var moneyReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// ParseMoney parses registry money strings such as "$1,234.50". Unparseable
// input yields 0.
func ParseMoney(s string) float64 {
	s = moneyReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// Thousands converts a figure reported in thousands of currency units to whole units.
func Thousands(v float64) float64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(1000)).InexactFloat64()
}

// RoundTo rounds v to the given number of decimal places, half away from zero.
func RoundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
