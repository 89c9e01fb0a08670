package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/cyclesim/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a run, built from
// the actual options. ms is set for Monte Carlo runs.
func GenerateAssumptions(opts domain.PortfolioOptions, ms *domain.MarketDataStats, currency string) []string {
	out := []string{
		fmt.Sprintf("Cycle length: %d years, starting balance %s", opts.SimulationYearsLength, FormatMoney(opts.StartBalance, currency)),
		DescribeWithdrawal(opts.Withdrawal, currency),
		fmt.Sprintf("Allocation: %s equities / %s bonds, rebalanced every year",
			FormatRatio(opts.EquitiesRatio), FormatRatio(decimal.NewFromInt(1).Sub(opts.EquitiesRatio))),
		fmt.Sprintf("Investment expenses: %s of the year-end balance", FormatRatio(opts.InvestmentExpenseRatio)),
		"Withdrawals are taken at the start of each year; the last year grows with the following year's price",
	}
	if ms != nil {
		out = append(out, fmt.Sprintf("Synthetic equities returns: mean %s, standard deviation %s per year",
			FormatPercentage(ms.MeanAnnualMarketChange), FormatPercentage(ms.StdDevAnnualMarketChange)))
	}
	return out
}

// DescribeWithdrawal renders a withdrawal policy in one line with amounts in
// currency (USD when empty).
func DescribeWithdrawal(policy domain.WithdrawalPolicy, currency string) string {
	switch p := policy.(type) {
	case domain.NominalWithdrawal:
		return fmt.Sprintf("Withdrawal: %s per year, never adjusted for inflation", FormatMoney(p.StaticAmount, currency))
	case domain.InflationAdjustedWithdrawal:
		return fmt.Sprintf("Withdrawal: %s per year in cycle-start dollars, grown with inflation", FormatMoney(p.StaticAmount, currency))
	case domain.PercentPortfolioWithdrawal:
		return fmt.Sprintf("Withdrawal: %s of the balance at the start of each year", FormatRatio(p.Percentage))
	case domain.ClampedPercentWithdrawal:
		return fmt.Sprintf("Withdrawal: %s of the real balance, kept between %s and %s in cycle-start dollars",
			FormatRatio(p.Percentage), FormatMoney(p.Floor, currency), FormatMoney(p.Ceiling, currency))
	}
	return "Withdrawal: none"
}
