package report

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money renders v with two decimals. Halves round away from zero on the
// shortest decimal form of v, so 1.005 gives "1.01" where a binary toFixed
// would give "1.00".
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Percent renders a 0..1 rate as "62.5%".
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate*100).StringFixed(1) + "%"
}

// Ratio renders a ratio with two decimals, or ∞ for the infinite sentinel.
func Ratio(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
