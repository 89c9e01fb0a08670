package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/cyclesim/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// balancePlaces bounds the scale of the balance carried from year to year.
const balancePlaces = 16

// YearStep is one computed year of a cycle in exact decimal arithmetic.
type YearStep struct {
	CumulativeInflation decimal.Decimal
	BalanceStart        decimal.Decimal
	BalanceInfAdjStart  decimal.Decimal
	BalanceEnd          decimal.Decimal
	BalanceInfAdjEnd    decimal.Decimal
	Withdrawal          Withdrawal
	Equities            decimal.Decimal
	Bonds               decimal.Decimal
	EquitiesGrowth      decimal.Decimal
	DividendsGrowth     decimal.Decimal
	BondsGrowth         decimal.Decimal
	Fees                decimal.Decimal
}

// Row converts the step to the float64 row used for statistics and reports.
// Cycle labels are left for the caller.
func (s YearStep) Row() domain.CycleYearData {
	return domain.CycleYearData{
		CumulativeInflation: s.CumulativeInflation.InexactFloat64(),
		BalanceStart:        s.BalanceStart.InexactFloat64(),
		BalanceInfAdjStart:  s.BalanceInfAdjStart.InexactFloat64(),
		BalanceEnd:          s.BalanceEnd.InexactFloat64(),
		BalanceInfAdjEnd:    s.BalanceInfAdjEnd.InexactFloat64(),
		Withdrawal:          s.Withdrawal.Actual.InexactFloat64(),
		WithdrawalInfAdj:    s.Withdrawal.InflationAdjusted.InexactFloat64(),
		Equities:            s.Equities.InexactFloat64(),
		Bonds:               s.Bonds.InexactFloat64(),
		EquitiesGrowth:      s.EquitiesGrowth.InexactFloat64(),
		DividendsGrowth:     s.DividendsGrowth.InexactFloat64(),
		BondsGrowth:         s.BondsGrowth.InexactFloat64(),
		Fees:                s.Fees.InexactFloat64(),
	}
}

// CalculateYearData computes one year of a cycle. The withdrawal is taken at
// the start of the year, the remainder is split between equities and bonds,
// grown with the current year's price change, dividend yield and fixed income
// rate, and charged the expense ratio at year end.
func CalculateYearData(opts domain.PortfolioOptions, startingBalance decimal.Decimal, current, next domain.MarketYearData, cycleStartCPI float64, firstYear bool) YearStep {
	cumulativeInflation := decimal.NewFromInt(1)
	if !firstYear {
		cumulativeInflation = decimal.NewFromFloat(current.InflationIndex).Div(decimal.NewFromFloat(cycleStartCPI))
	}

	withdrawal := CalculateWithdrawal(opts.Withdrawal, startingBalance, cumulativeInflation)
	yearStartSubtotal := startingBalance.Sub(withdrawal.Actual)

	equities := yearStartSubtotal.Mul(opts.EquitiesRatio)
	bonds := yearStartSubtotal.Mul(decimal.NewFromInt(1).Sub(opts.EquitiesRatio))

	price := decimal.NewFromFloat(current.EquitiesPrice)
	nextPrice := decimal.NewFromFloat(next.EquitiesPrice)
	equitiesGrowth := equities.Mul(nextPrice.Sub(price)).Div(price)
	dividendsGrowth := equities.Mul(decimal.NewFromFloat(current.EquitiesDividend)).Div(price)
	bondsGrowth := bonds.Mul(decimal.NewFromFloat(current.FixedIncomeInterest)).Div(hundred)

	endSubtotal := decimal.Sum(equities, bonds, equitiesGrowth, dividendsGrowth, bondsGrowth)
	fees := endSubtotal.Mul(opts.InvestmentExpenseRatio)
	balanceEnd := endSubtotal.Sub(fees).Round(balancePlaces)

	return YearStep{
		CumulativeInflation: cumulativeInflation,
		BalanceStart:        startingBalance,
		BalanceInfAdjStart:  startingBalance.Div(cumulativeInflation),
		BalanceEnd:          balanceEnd,
		BalanceInfAdjEnd:    balanceEnd.Div(cumulativeInflation),
		Withdrawal:          withdrawal,
		Equities:            equities,
		Bonds:               bonds,
		EquitiesGrowth:      equitiesGrowth,
		DividendsGrowth:     dividendsGrowth,
		BondsGrowth:         bondsGrowth,
		Fees:                fees,
	}
}
