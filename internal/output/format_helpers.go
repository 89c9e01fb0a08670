package output

import (
	"math"
	"strconv"

	"github.com/rpgo/cyclesim/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with symbol and thousands separators in the
// given ISO currency (USD when empty). Non-finite values render as "n/a".
func FormatCurrency(amount float64, currency string) string {
	if !finite(amount) {
		return "n/a"
	}
	return decimal.NewMoneyIn(amount, currency).Format()
}

// FormatMoney formats an exact amount like FormatCurrency.
func FormatMoney(amount stddec.Decimal, currency string) string {
	return decimal.NewMoneyFromDecimal(amount, currency).Format()
}

// FormatPercentage formats a fraction as a percentage with 2 decimals (0.95 is "95.00%").
func FormatPercentage(fraction float64) string {
	if !finite(fraction) {
		return "n/a"
	}
	return stddec.NewFromFloat(fraction).Shift(2).StringFixed(2) + "%"
}

// FormatRatio formats an exact fraction like FormatPercentage.
func FormatRatio(fraction stddec.Decimal) string {
	return fraction.Shift(2).StringFixed(2) + "%"
}

// FormatYear renders an optional calendar year; nil renders as "-".
func FormatYear(year *int) string {
	if year == nil {
		return "-"
	}
	return intToString(*year)
}

// fixed renders a CSV cell rounded to places decimals.
func fixed(v float64, places int32) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return stddec.NewFromFloat(v).StringFixed(places)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
