package costing

import (
	"math"

	"github.com/shopspring/decimal"
)

// NotApplicable is the display value for a figure that does not apply.
const NotApplicable = "N/A"

// Fixed2 formats v with exactly two decimals, rounding half away from zero.
// Non-finite values have no decimal form and format as NotApplicable.
func Fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotApplicable
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Money prefixes a two-decimal amount with a currency label.
func Money(label string, v float64) string {
	if label == "" {
		return Fixed2(v)
	}
	return label + " " + Fixed2(v)
}

// OptionalMoney formats v like Money, or returns NotApplicable when v is nil.
func OptionalMoney(label string, v *float64) string {
	if v == nil {
		return NotApplicable
	}
	return Money(label, *v)
}
