package domain

import (
	"fmt"
	"math"
)

// MarketYearData represents a single year of market history
type MarketYearData struct {
	Year                int     `json:"year" yaml:"year"`
	EquitiesPrice       float64 `json:"equities_price" yaml:"equities_price"`
	EquitiesDividend    float64 `json:"equities_dividend" yaml:"equities_dividend"`
	InflationIndex      float64 `json:"inflation_index" yaml:"inflation_index"`
	FixedIncomeInterest float64 `json:"fixed_income_interest" yaml:"fixed_income_interest"` // percent, e.g. 4.5
}

// MarketDataStats summarizes the annual equities price change of a series.
// It is the input of the Monte Carlo generator.
type MarketDataStats struct {
	MeanAnnualMarketChange   float64 `json:"mean_annual_market_change"`
	StdDevAnnualMarketChange float64 `json:"std_dev_annual_market_change"`
}

// ValidateMarketSeries checks that a series is non-empty, consecutive by year
// and free of values the engine cannot divide by or propagate.
func ValidateMarketSeries(series []MarketYearData) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: empty series", ErrInvalidMarketData)
	}
	for i, rec := range series {
		if i > 0 && rec.Year != series[i-1].Year+1 {
			return fmt.Errorf("%w: year %d follows %d (series must be consecutive)", ErrInvalidMarketData, rec.Year, series[i-1].Year)
		}
		if err := validateRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

func validateRecord(rec MarketYearData) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"equities price", rec.EquitiesPrice},
		{"equities dividend", rec.EquitiesDividend},
		{"inflation index", rec.InflationIndex},
		{"fixed income interest", rec.FixedIncomeInterest},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: year %d has non-finite %s", ErrInvalidMarketData, rec.Year, f.name)
		}
	}
	if rec.EquitiesPrice <= 0 {
		return fmt.Errorf("%w: year %d has non-positive equities price %g", ErrInvalidMarketData, rec.Year, rec.EquitiesPrice)
	}
	if rec.EquitiesDividend < 0 {
		return fmt.Errorf("%w: year %d has negative equities dividend %g", ErrInvalidMarketData, rec.Year, rec.EquitiesDividend)
	}
	if rec.InflationIndex <= 0 {
		return fmt.Errorf("%w: year %d has non-positive inflation index %g", ErrInvalidMarketData, rec.Year, rec.InflationIndex)
	}
	return nil
}
