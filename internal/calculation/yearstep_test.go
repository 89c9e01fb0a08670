package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/cyclesim/internal/domain"
)

func TestCalculateYearData(t *testing.T) {
	opts, err := domain.NewPortfolioOptions(1, dec("10000"), dec("0.01"), dec("0.5"), domain.NominalWithdrawal{StaticAmount: dec("1000")})
	require.NoError(t, err)

	current := domain.MarketYearData{Year: 2000, EquitiesPrice: 100, EquitiesDividend: 2, InflationIndex: 100, FixedIncomeInterest: 4}
	next := domain.MarketYearData{Year: 2001, EquitiesPrice: 110, EquitiesDividend: 2, InflationIndex: 103, FixedIncomeInterest: 4}

	t.Run("first year ignores index", func(t *testing.T) {
		step := CalculateYearData(opts, dec("10000"), current, next, 50, true)

		assert.Equal(t, "1", step.CumulativeInflation.String())
		assert.Equal(t, "1000", step.Withdrawal.Actual.String())
		assert.Equal(t, "4500", step.Equities.String())
		assert.Equal(t, "4500", step.Bonds.String())
		assert.Equal(t, "450", step.EquitiesGrowth.String())
		assert.Equal(t, "90", step.DividendsGrowth.String())
		assert.Equal(t, "180", step.BondsGrowth.String())
		assert.Equal(t, "97.2", step.Fees.String())
		assert.Equal(t, "9622.8", step.BalanceEnd.String())
		assert.Equal(t, "9622.8", step.BalanceInfAdjEnd.String())
		assert.Equal(t, "10000", step.BalanceStart.String())
	})

	t.Run("later year deflates by cycle start index", func(t *testing.T) {
		step := CalculateYearData(opts, dec("10000"), current, next, 80, false)

		assert.Equal(t, "1.25", step.CumulativeInflation.String())
		assert.Equal(t, "1000", step.Withdrawal.Actual.String())
		assert.Equal(t, "800", step.Withdrawal.InflationAdjusted.String())
		assert.Equal(t, "8000", step.BalanceInfAdjStart.String())
		assert.Equal(t, "9622.8", step.BalanceEnd.String())
		assert.Equal(t, "7698.24", step.BalanceInfAdjEnd.String())
	})

	t.Run("row conversion leaves labels to the cycle engine", func(t *testing.T) {
		row := CalculateYearData(opts, dec("10000"), current, next, 80, false).Row()
		assert.Zero(t, row.CycleYear)
		assert.Zero(t, row.CycleStartYear)
		assert.Equal(t, 1.25, row.CumulativeInflation)
		assert.Equal(t, 9622.8, row.BalanceEnd)
		assert.Equal(t, 7698.24, row.BalanceInfAdjEnd)
		assert.Equal(t, 800.0, row.WithdrawalInfAdj)
		assert.Equal(t, 97.2, row.Fees)
	})
}

func TestCalculateYearDataAllBonds(t *testing.T) {
	opts, err := domain.NewPortfolioOptions(1, dec("1000"), dec("0"), dec("0"), domain.PercentPortfolioWithdrawal{Percentage: dec("0.1")})
	require.NoError(t, err)

	current := domain.MarketYearData{Year: 2000, EquitiesPrice: 100, EquitiesDividend: 5, InflationIndex: 100, FixedIncomeInterest: 5}
	next := domain.MarketYearData{Year: 2001, EquitiesPrice: 50, InflationIndex: 100, FixedIncomeInterest: 5}

	step := CalculateYearData(opts, dec("1000"), current, next, 100, true)
	assert.Equal(t, "100", step.Withdrawal.Actual.String())
	assert.True(t, step.Equities.IsZero())
	assert.True(t, step.EquitiesGrowth.IsZero())
	assert.Equal(t, "45", step.BondsGrowth.String())
	assert.Equal(t, "945", step.BalanceEnd.String())
}

func TestCalculateYearDataCarriesBoundedScale(t *testing.T) {
	opts, err := domain.NewPortfolioOptions(1, dec("1000000"), dec("0.0025"), dec("0.9"), domain.InflationAdjustedWithdrawal{StaticAmount: dec("40000")})
	require.NoError(t, err)

	current := domain.MarketYearData{Year: 2000, EquitiesPrice: 3, EquitiesDividend: 0.07, InflationIndex: 7, FixedIncomeInterest: 3.3}
	next := domain.MarketYearData{Year: 2001, EquitiesPrice: 3.1, InflationIndex: 7.3}

	balance := dec("1000000")
	for i := 0; i < 60; i++ {
		step := CalculateYearData(opts, balance, current, next, 6.1, i == 0)
		assert.LessOrEqual(t, -step.BalanceEnd.Exponent(), int32(balancePlaces))
		balance = step.BalanceEnd
	}
}
