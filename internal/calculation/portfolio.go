package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rpgo/cyclesim/internal/domain"
)

// CyclePortfolio runs withdrawal cycles over one market series. It holds no
// mutable state after construction, so its methods may be called repeatedly
// and concurrently.
type CyclePortfolio struct {
	marketData []domain.MarketYearData
	options    domain.PortfolioOptions
	logger     Logger
}

// NewCyclePortfolio validates the series and options and returns an engine.
// The series is copied; later changes to the caller's slice are not observed.
func NewCyclePortfolio(marketData []domain.MarketYearData, options domain.PortfolioOptions, opts ...Option) (*CyclePortfolio, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateMarketSeries(marketData); err != nil {
		return nil, err
	}
	eo := applyOptions(opts)
	data := make([]domain.MarketYearData, len(marketData))
	copy(data, marketData)
	return &CyclePortfolio{
		marketData: data,
		options:    options,
		logger:     eo.logger,
	}, nil
}

// Options returns the portfolio options the engine was built with.
func (cp *CyclePortfolio) Options() domain.PortfolioOptions {
	return cp.options
}

// FirstYear returns the first calendar year of the market series.
func (cp *CyclePortfolio) FirstYear() int {
	return cp.marketData[0].Year
}

// LastYear returns the last calendar year of the market series.
func (cp *CyclePortfolio) LastYear() int {
	return cp.marketData[len(cp.marketData)-1].Year
}

// YearIndex returns the offset of year from the first year of the series.
// The result is not bounds-checked.
func (cp *CyclePortfolio) YearIndex(year int) int {
	return year - cp.FirstYear()
}

// MaxSimulationCycles returns how many start years have a full window plus
// the one-year lookahead inside the series. It is zero or negative when the
// series is too short for the configured length.
func (cp *CyclePortfolio) MaxSimulationCycles() int {
	return (cp.LastYear() - cp.options.SimulationYearsLength) - cp.FirstYear() + 1
}

// CrunchSingleCycleData runs one cycle starting at the first year of the series.
func (cp *CyclePortfolio) CrunchSingleCycleData() (domain.CycleData, error) {
	return cp.CrunchCycle(cp.FirstYear())
}

// CrunchCycle simulates SimulationYearsLength years starting at cycleStartYear.
// The last simulated year grows with the following year's equities price, so
// the series must extend one year past the window.
func (cp *CyclePortfolio) CrunchCycle(cycleStartYear int) (domain.CycleData, error) {
	startIdx := cp.YearIndex(cycleStartYear)
	length := cp.options.SimulationYearsLength
	if startIdx < 0 || startIdx >= len(cp.marketData) {
		return domain.CycleData{}, fmt.Errorf("%w: cycle start year %d is outside %d-%d", domain.ErrInsufficientData, cycleStartYear, cp.FirstYear(), cp.LastYear())
	}
	if startIdx+length >= len(cp.marketData) {
		return domain.CycleData{}, fmt.Errorf("%w: a %d-year cycle starting in %d needs data through %d, series ends in %d",
			domain.ErrInsufficientData, length, cycleStartYear, cycleStartYear+length, cp.LastYear())
	}

	firstYearCPI := cp.marketData[startIdx].InflationIndex
	rows := make([]domain.CycleYearData, 0, length)
	balance := cp.options.StartBalance

	for i := 0; i < length; i++ {
		idx := startIdx + i
		current := cp.marketData[idx]
		step := CalculateYearData(cp.options, balance, current, cp.marketData[idx+1], firstYearCPI, i == 0)
		row := step.Row()
		if math.IsInf(row.BalanceEnd, 0) || math.IsInf(row.BalanceInfAdjEnd, 0) {
			return domain.CycleData{}, fmt.Errorf("%w: cycle %d balance in %d is out of float64 range", domain.ErrNumericDegeneracy, cycleStartYear, current.Year)
		}
		row.CycleYear = current.Year
		row.CycleStartYear = cycleStartYear
		rows = append(rows, row)
		balance = step.BalanceEnd
	}

	return domain.CycleData{
		CycleStartYear: cycleStartYear,
		YearData:       rows,
		Stats:          CrunchSingleCycleStats(PivotCycle(rows)),
	}, nil
}

// CrunchAllCyclesData runs every feasible cycle in chronological order and
// aggregates the portfolio statistics. Cycle i starts in FirstYear()+i.
// The context is checked between cycles.
func (cp *CyclePortfolio) CrunchAllCyclesData(ctx context.Context) (*domain.PortfolioResult, error) {
	n := cp.MaxSimulationCycles()
	if n <= 0 {
		return nil, fmt.Errorf("%w: series %d-%d is too short for a %d-year cycle",
			domain.ErrInsufficientData, cp.FirstYear(), cp.LastYear(), cp.options.SimulationYearsLength)
	}

	cycles := make([]domain.CycleData, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		startYear := cp.FirstYear() + i
		cycle, err := cp.CrunchCycle(startYear)
		if err != nil {
			return nil, fmt.Errorf("cycle %d failed: %w", startYear, err)
		}
		if cycle.Stats.Failed() {
			cp.logger.Debugf("cycle %d failed in %d", startYear, *cycle.Stats.FailureYear)
		}
		cycles = append(cycles, cycle)
	}

	result := &domain.PortfolioResult{
		Cycles: cycles,
		Stats:  CrunchAllPortfolioStats(cycles),
	}
	cp.logger.Infof("crunched %d cycles of %d years: success rate %.4f", n, cp.options.SimulationYearsLength, result.Stats.SuccessRate)
	return result, nil
}
