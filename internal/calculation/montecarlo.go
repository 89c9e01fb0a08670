package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rpgo/cyclesim/internal/domain"
	"github.com/rpgo/cyclesim/pkg/stats"
)

// GetMarketDataStats computes the mean and sample standard deviation of the
// year-over-year fractional change in equities price.
func GetMarketDataStats(series []domain.MarketYearData) (domain.MarketDataStats, error) {
	if len(series) < 3 {
		return domain.MarketDataStats{}, fmt.Errorf("%w: need at least 3 years to measure market change, got %d", domain.ErrInsufficientData, len(series))
	}
	changes := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].EquitiesPrice
		changes = append(changes, (series[i].EquitiesPrice-prev)/prev)
	}
	return domain.MarketDataStats{
		MeanAnnualMarketChange:   stats.Mean(changes),
		StdDevAnnualMarketChange: stats.StdDev(changes),
	}, nil
}

// Coefficients of Acklam's rational approximation of the inverse normal CDF.
var (
	normA = [6]float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02, 1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	normB = [5]float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02, 6.680131188771972e+01, -1.328068155288572e+01}
	normC = [6]float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00, -2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	normD = [4]float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00, 3.754408661907416e+00}
)

const normPLow = 0.02425

// NormSInv returns z such that the standard normal CDF of z is p.
// Relative error is below 1.15e-9 over (0, 1).
func NormSInv(p float64) float64 {
	switch {
	case p <= 0:
		return math.Inf(-1)
	case p >= 1:
		return math.Inf(1)
	case p < normPLow:
		return normTail(math.Sqrt(-2 * math.Log(p)))
	case p > 1-normPLow:
		return -normTail(math.Sqrt(-2 * math.Log(1-p)))
	}
	q := p - 0.5
	r := q * q
	num := (((((normA[0]*r+normA[1])*r+normA[2])*r+normA[3])*r+normA[4])*r + normA[5]) * q
	den := ((((normB[0]*r+normB[1])*r+normB[2])*r+normB[3])*r+normB[4])*r + 1
	return num / den
}

func normTail(q float64) float64 {
	num := ((((normC[0]*q+normC[1])*q+normC[2])*q+normC[3])*q+normC[4])*q + normC[5]
	den := (((normD[0]*q+normD[1])*q+normD[2])*q+normD[3])*q + 1
	return num / den
}

// GenerateMonteCarloDataset synthesizes a market series with the same years as
// original. Only the equities price is simulated; the first record is copied
// verbatim and every later price compounds the prior synthetic price by a
// normally distributed change.
func GenerateMonteCarloDataset(original []domain.MarketYearData, ms domain.MarketDataStats, rng *rand.Rand) []domain.MarketYearData {
	out := make([]domain.MarketYearData, len(original))
	copy(out, original)
	for i := 1; i < len(out); i++ {
		z := NormSInv(uniformOpen(rng))
		out[i].EquitiesPrice = out[i-1].EquitiesPrice * (1 + ms.MeanAnnualMarketChange + z*ms.StdDevAnnualMarketChange)
	}
	return out
}

// uniformOpen draws from (0, 1); a zero draw would map to -Inf.
func uniformOpen(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}

// MonteCarloConfig holds configuration for Monte Carlo simulations.
// DesiredSimulations is the target number of pooled cycles. A zero Seed picks
// a time-based one, and zero Workers uses GOMAXPROCS.
type MonteCarloConfig struct {
	DesiredSimulations int   `json:"desired_simulations"`
	Seed               int64 `json:"seed"`
	Workers            int   `json:"workers"`
}

// PercentileRanges represents percentile ranges for Monte Carlo results
type PercentileRanges struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// MonteCarloResult represents the pooled results of a Monte Carlo run
type MonteCarloResult struct {
	MarketStats          domain.MarketDataStats `json:"market_stats"`
	Seed                 int64                  `json:"seed"`
	NumSeries            int                    `json:"num_series"`
	SimulationsPerSeries int                    `json:"simulations_per_series"`
	NumSimulations       int                    `json:"num_simulations"`
	GeneratedAt          time.Time              `json:"generated_at"`

	Cycles                   []domain.CycleData    `json:"cycles"`
	Stats                    domain.PortfolioStats `json:"stats"`
	EndingBalancePercentiles PercentileRanges      `json:"ending_balance_percentiles"`
	EndingInfAdjPercentiles  PercentileRanges      `json:"ending_inf_adj_percentiles"`
}

// Clock and seed sources, swapped out by tests.
var (
	nowFunc  = time.Now
	seedFunc = func() int64 { return time.Now().UnixNano() }
)

// MonteCarloSimulator runs a withdrawal policy over many synthetic series
// derived from one historical series.
type MonteCarloSimulator struct {
	historical []domain.MarketYearData
	options    domain.PortfolioOptions
	config     MonteCarloConfig
	logger     Logger
}

// NewMonteCarloSimulator validates its inputs and creates a simulator.
func NewMonteCarloSimulator(historical []domain.MarketYearData, options domain.PortfolioOptions, config MonteCarloConfig, opts ...Option) (*MonteCarloSimulator, error) {
	if config.DesiredSimulations < 1 {
		return nil, fmt.Errorf("%w: desired simulations must be at least 1, got %d", domain.ErrInvalidOptions, config.DesiredSimulations)
	}
	if config.Workers < 0 {
		return nil, fmt.Errorf("%w: workers cannot be negative", domain.ErrInvalidOptions)
	}
	if config.Workers == 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateMarketSeries(historical); err != nil {
		return nil, err
	}
	eo := applyOptions(opts)
	return &MonteCarloSimulator{
		historical: historical,
		options:    options,
		config:     config,
		logger:     eo.logger,
	}, nil
}

// Config returns the effective configuration, including the resolved seed.
func (mcs *MonteCarloSimulator) Config() MonteCarloConfig {
	return mcs.config
}

// Run generates ceil(DesiredSimulations / cycles-per-series) synthetic series,
// crunches every cycle of each and pools the results in series order.
// Per-series seeds are drawn up front, so the outcome does not depend on
// scheduling.
func (mcs *MonteCarloSimulator) Run(ctx context.Context) (*MonteCarloResult, error) {
	ms, err := GetMarketDataStats(mcs.historical)
	if err != nil {
		return nil, err
	}
	base, err := NewCyclePortfolio(mcs.historical, mcs.options)
	if err != nil {
		return nil, err
	}
	perSeries := base.MaxSimulationCycles()
	if perSeries <= 0 {
		return nil, fmt.Errorf("%w: series %d-%d is too short for a %d-year cycle",
			domain.ErrInsufficientData, base.FirstYear(), base.LastYear(), mcs.options.SimulationYearsLength)
	}
	numSeries := (mcs.config.DesiredSimulations + perSeries - 1) / perSeries

	master := rand.New(rand.NewSource(mcs.config.Seed))
	seeds := make([]int64, numSeries)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	mcs.logger.Infof("monte carlo: %d series x %d cycles (mean change %.4f, std dev %.4f, seed %d)",
		numSeries, perSeries, ms.MeanAnnualMarketChange, ms.StdDevAnnualMarketChange, mcs.config.Seed)

	results := make([][]domain.CycleData, numSeries)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mcs.config.Workers)
	for i := 0; i < numSeries; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			cycles, err := mcs.runSeries(gctx, seeds[i], ms)
			if err != nil {
				return fmt.Errorf("series %d: %w", i, err)
			}
			results[i] = cycles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pooled := make([]domain.CycleData, 0, numSeries*perSeries)
	for _, cycles := range results {
		pooled = append(pooled, cycles...)
	}

	result := &MonteCarloResult{
		MarketStats:          ms,
		Seed:                 mcs.config.Seed,
		NumSeries:            numSeries,
		SimulationsPerSeries: perSeries,
		NumSimulations:       len(pooled),
		GeneratedAt:          nowFunc(),
		Cycles:               pooled,
		Stats:                CrunchAllPortfolioStats(pooled),
	}
	result.EndingBalancePercentiles, result.EndingInfAdjPercentiles = endingPercentiles(pooled)

	mcs.logger.Infof("monte carlo: %d simulations, success rate %.4f", result.NumSimulations, result.Stats.SuccessRate)
	return result, nil
}

// maxSeriesAttempts bounds how often a series whose price path went
// non-positive is regenerated before the run gives up.
const maxSeriesAttempts = 100

func (mcs *MonteCarloSimulator) runSeries(ctx context.Context, seed int64, ms domain.MarketDataStats) ([]domain.CycleData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	series, err := mcs.generateSeries(seed, ms)
	if err != nil {
		return nil, err
	}
	cp, err := NewCyclePortfolio(series, mcs.options, WithLogger(mcs.logger))
	if err != nil {
		return nil, err
	}
	res, err := cp.CrunchAllCyclesData(ctx)
	if err != nil {
		return nil, err
	}
	mcs.logger.Debugf("series seed %d: success rate %.4f", seed, res.Stats.SuccessRate)
	return res.Cycles, nil
}

// generateSeries draws synthetic series from one seeded source until a series
// passes market data validation. Every attempt continues the same source, so
// the accepted series depends only on seed.
func (mcs *MonteCarloSimulator) generateSeries(seed int64, ms domain.MarketDataStats) ([]domain.MarketYearData, error) {
	rng := rand.New(rand.NewSource(seed))
	var err error
	for attempt := 1; attempt <= maxSeriesAttempts; attempt++ {
		series := GenerateMonteCarloDataset(mcs.historical, ms, rng)
		if err = domain.ValidateMarketSeries(series); err == nil {
			return series, nil
		}
		if !errors.Is(err, domain.ErrInvalidMarketData) {
			return nil, err
		}
		mcs.logger.Debugf("series seed %d: attempt %d rejected: %v", seed, attempt, err)
	}
	return nil, fmt.Errorf("no valid series after %d attempts: %w", maxSeriesAttempts, err)
}

func endingPercentiles(cycles []domain.CycleData) (PercentileRanges, PercentileRanges) {
	nominal := make([]float64, len(cycles))
	infAdj := make([]float64, len(cycles))
	for i, c := range cycles {
		nominal[i] = c.Stats.Balance.Ending
		infAdj[i] = c.Stats.Balance.EndingInfAdj
	}
	return percentileRanges(nominal), percentileRanges(infAdj)
}

func percentileRanges(values []float64) PercentileRanges {
	return PercentileRanges{
		P10: stats.Percentile(values, 10),
		P25: stats.Percentile(values, 25),
		P50: stats.Percentile(values, 50),
		P75: stats.Percentile(values, 75),
		P90: stats.Percentile(values, 90),
	}
}
