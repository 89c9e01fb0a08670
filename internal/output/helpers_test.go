package output

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/cyclesim/internal/calculation"
	"github.com/rpgo/cyclesim/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

func yearRow(start, year int, end float64) domain.CycleYearData {
	return domain.CycleYearData{
		CycleYear:           year,
		CycleStartYear:      start,
		CumulativeInflation: 1,
		BalanceStart:        1000,
		BalanceInfAdjStart:  1000,
		BalanceEnd:          end,
		BalanceInfAdjEnd:    end,
		Withdrawal:          40,
		WithdrawalInfAdj:    40,
	}
}

// buildTestReport returns a historical report with one surviving and one failed cycle.
func buildTestReport(t *testing.T) *Report {
	t.Helper()
	opts, err := domain.NewPortfolioOptions(2, dec("1000"), dec("0.0025"), dec("0.6"), domain.NominalWithdrawal{StaticAmount: dec("40")})
	require.NoError(t, err)

	cycles := []domain.CycleData{
		{
			CycleStartYear: 1990,
			YearData:       []domain.CycleYearData{yearRow(1990, 1990, 1100), yearRow(1990, 1991, 1234567.891)},
		},
		{
			CycleStartYear: 1991,
			YearData:       []domain.CycleYearData{yearRow(1991, 1991, 300), yearRow(1991, 1992, -500)},
		},
	}
	for i := range cycles {
		cycles[i].Stats = calculation.CrunchSingleCycleStats(calculation.PivotCycle(cycles[i].YearData))
	}
	result := &domain.PortfolioResult{Cycles: cycles, Stats: calculation.CrunchAllPortfolioStats(cycles)}

	report := NewHistoricalReport("market.csv", opts, result)
	report.GeneratedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return report
}

// buildMonteCarloReport runs a small seeded Monte Carlo simulation.
func buildMonteCarloReport(t *testing.T) *Report {
	t.Helper()
	series := make([]domain.MarketYearData, 12)
	price, cpi := 100.0, 100.0
	for i := range series {
		series[i] = domain.MarketYearData{Year: 2000 + i, EquitiesPrice: price, EquitiesDividend: price * 0.02, InflationIndex: cpi, FixedIncomeInterest: 3}
		if i%2 == 0 {
			price *= 1.15
		} else {
			price *= 0.95
		}
		cpi *= 1.025
	}
	opts, err := domain.NewPortfolioOptions(4, dec("100000"), dec("0.001"), dec("0.7"), domain.InflationAdjustedWithdrawal{StaticAmount: dec("4000")})
	require.NoError(t, err)

	mcs, err := calculation.NewMonteCarloSimulator(series, opts, calculation.MonteCarloConfig{DesiredSimulations: 30, Seed: 7, Workers: 2})
	require.NoError(t, err)
	result, err := mcs.Run(context.Background())
	require.NoError(t, err)
	return NewMonteCarloReport("synthetic", opts, result)
}
