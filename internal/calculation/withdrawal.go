package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/cyclesim/internal/domain"
)

// Withdrawal is one year's withdrawal in nominal and cycle-start dollars.
type Withdrawal struct {
	Actual            decimal.Decimal `json:"actual"`
	InflationAdjusted decimal.Decimal `json:"inflation_adjusted"`
}

// CalculateWithdrawal evaluates a withdrawal policy for a year that starts with
// portfolioStart and has seen cumulativeInflation since the cycle began.
// A depleted (zero or negative) portfolio is not special-cased.
func CalculateWithdrawal(policy domain.WithdrawalPolicy, portfolioStart, cumulativeInflation decimal.Decimal) Withdrawal {
	switch p := policy.(type) {
	case domain.NominalWithdrawal:
		return Withdrawal{
			Actual:            p.StaticAmount,
			InflationAdjusted: p.StaticAmount.Div(cumulativeInflation),
		}
	case domain.InflationAdjustedWithdrawal:
		return Withdrawal{
			Actual:            p.StaticAmount.Mul(cumulativeInflation),
			InflationAdjusted: p.StaticAmount,
		}
	case domain.PercentPortfolioWithdrawal:
		actual := p.Percentage.Mul(portfolioStart)
		return Withdrawal{
			Actual:            actual,
			InflationAdjusted: actual.Div(cumulativeInflation),
		}
	case domain.ClampedPercentWithdrawal:
		spend := p.Percentage.Mul(portfolioStart.Div(cumulativeInflation))
		spend = decimal.Min(decimal.Max(spend, p.Floor), p.Ceiling)
		return Withdrawal{
			Actual:            spend.Mul(cumulativeInflation),
			InflationAdjusted: spend,
		}
	default:
		return Withdrawal{Actual: decimal.Zero, InflationAdjusted: decimal.Zero}
	}
}
