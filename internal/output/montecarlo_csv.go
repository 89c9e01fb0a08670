package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rpgo/cyclesim/internal/calculation"
)

// MonteCarloCSVFormatter renders Monte Carlo aggregates as Metric,Value,Description rows.
type MonteCarloCSVFormatter struct{}

func (m MonteCarloCSVFormatter) Name() string { return "montecarlo-csv" }

func (m MonteCarloCSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.MonteCarlo == nil {
		return nil, fmt.Errorf("%w: montecarlo-csv needs a Monte Carlo result", ErrNoResult)
	}
	mc := report.MonteCarlo

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{
		{"Metric", "Value", "Description"},
		{"Success Rate", fixed(mc.Stats.SuccessRate*100, 2) + "%", "Percentage of simulated cycles that never ran out of money"},
		{"Failures", strconv.Itoa(mc.Stats.NumFailures), "Simulated cycles whose balance reached zero"},
		{"Simulations", strconv.Itoa(mc.NumSimulations), "Total number of simulated cycles"},
		{"Series", strconv.Itoa(mc.NumSeries), "Synthetic market series generated"},
		{"Cycles Per Series", strconv.Itoa(mc.SimulationsPerSeries), "Cycles crunched from each series"},
		{"Seed", strconv.FormatInt(mc.Seed, 10), "Master seed; rerun with it to reproduce"},
		{"Mean Market Change", fixed(mc.MarketStats.MeanAnnualMarketChange, 6), "Mean annual equities price change of the historical data"},
		{"Std Dev Market Change", fixed(mc.MarketStats.StdDevAnnualMarketChange, 6), "Sample standard deviation of the annual change"},
		{"Median Ending Balance", fixed(mc.Stats.EndingBalance.Median, 2), "Median nominal ending balance"},
		{"Median Ending Balance (real)", fixed(mc.Stats.EndingBalanceInfAdj.Median, 2), "Median ending balance in cycle-start dollars"},
	}
	rows = append(rows, percentileRows("Ending Balance", mc.EndingBalancePercentiles)...)
	rows = append(rows, percentileRows("Ending Balance (real)", mc.EndingInfAdjPercentiles)...)

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func percentileRows(label string, p calculation.PercentileRanges) [][]string {
	return [][]string{
		{label + " P10", fixed(p.P10, 2), "Worst 10% of simulations"},
		{label + " P25", fixed(p.P25, 2), "Below average simulations"},
		{label + " P50", fixed(p.P50, 2), "Typical simulation"},
		{label + " P75", fixed(p.P75, 2), "Above average simulations"},
		{label + " P90", fixed(p.P90, 2), "Best 10% of simulations"},
	}
}

// GenerateAllCSVReports writes the Monte Carlo summary, per-cycle and per-year
// CSV files into outputDir and returns their paths.
func GenerateAllCSVReports(report *Report, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name string
		f    Formatter
	}{
		{"monte_carlo_summary.csv", MonteCarloCSVFormatter{}},
		{"monte_carlo_cycles.csv", CSVSummarizer{}},
		{"monte_carlo_detailed.csv", CSVDetailedExporter{}},
	}
	paths := make([]string, 0, len(files))
	for _, file := range files {
		data, err := file.f.Format(report)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", file.name, err)
		}
		path := filepath.Join(outputDir, file.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", file.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
