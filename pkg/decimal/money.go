package decimal

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is given.
const DefaultCurrency = money.USD

// Money represents a monetary amount in a currency
type Money struct {
	decimal.Decimal
	cur string
}

// NewMoneyIn creates a new Money instance in the given ISO currency code.
// The value must be finite.
func NewMoneyIn(value float64, currency string) Money {
	return Money{Decimal: decimal.NewFromFloat(value), cur: normalizeCurrency(currency)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal, currency string) Money {
	return Money{Decimal: d, cur: normalizeCurrency(currency)}
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// currency never returns nil; unknown codes get a generic currency.
func (m Money) currency() money.Currency {
	return *money.New(0, normalizeCurrency(m.cur)).Currency()
}

// Currency returns the ISO code of the amount.
func (m Money) Currency() string { return normalizeCurrency(m.cur) }

// Round rounds the amount to the currency's minor unit (cents for USD).
func (m Money) Round() Money {
	return Money{Decimal: m.Decimal.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// String returns the amount fixed to the currency's minor unit, without symbol.
func (m Money) String() string {
	return m.Decimal.StringFixed(int32(m.currency().Fraction))
}

// Format renders the amount with the currency symbol and thousands separators,
// e.g. $1,234,567.89.
func (m Money) Format() string {
	cur := m.currency()
	minor := m.Round().Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
