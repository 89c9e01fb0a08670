package calculation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/cyclesim/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testSeries builds a consecutive market series with constant rates.
func testSeries(startYear, n int, priceGrowth, dividendYield, inflation, interest float64) []domain.MarketYearData {
	series := make([]domain.MarketYearData, n)
	for i := range series {
		price := 100 * math.Pow(1+priceGrowth, float64(i))
		series[i] = domain.MarketYearData{
			Year:                startYear + i,
			EquitiesPrice:       price,
			EquitiesDividend:    price * dividendYield,
			InflationIndex:      100 * math.Pow(1+inflation, float64(i)),
			FixedIncomeInterest: interest,
		}
	}
	return series
}

// zigzagSeries alternates good and bad years so cycles differ from each other.
func zigzagSeries(startYear, n int) []domain.MarketYearData {
	series := make([]domain.MarketYearData, n)
	price, cpi := 100.0, 100.0
	for i := range series {
		series[i] = domain.MarketYearData{
			Year:                startYear + i,
			EquitiesPrice:       price,
			EquitiesDividend:    price * 0.03,
			InflationIndex:      cpi,
			FixedIncomeInterest: 2 + float64(i%3),
		}
		if i%2 == 0 {
			price *= 1.18
		} else {
			price *= 0.91
		}
		cpi *= 1.02 + 0.01*float64(i%2)
	}
	return series
}

func starterOptions(t *testing.T, years int, withdrawal domain.WithdrawalPolicy) domain.PortfolioOptions {
	t.Helper()
	opts, err := domain.NewPortfolioOptions(years, dec("1000000"), dec("0.0025"), dec("0.9"), withdrawal)
	require.NoError(t, err)
	return opts
}
