package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpgo/cyclesim/internal/calculation"
	"github.com/rpgo/cyclesim/internal/domain"
)

// Report bundles everything a formatter renders. Exactly one of Historical
// and MonteCarlo is normally set.
type Report struct {
	Title       string
	DataSource  string
	Currency    string
	Options     domain.PortfolioOptions
	MarketStats *domain.MarketDataStats
	Historical  *domain.PortfolioResult
	MonteCarlo  *calculation.MonteCarloResult
	Assumptions []string
	GeneratedAt time.Time
}

// nowFunc stamps reports and report file names (override in tests).
var nowFunc = time.Now

// NewHistoricalReport wraps a historical sweep.
func NewHistoricalReport(source string, opts domain.PortfolioOptions, result *domain.PortfolioResult) *Report {
	return &Report{
		Title:       "Historical cycle analysis",
		DataSource:  source,
		Options:     opts,
		Historical:  result,
		Assumptions: GenerateAssumptions(opts, nil, ""),
		GeneratedAt: nowFunc(),
	}
}

// NewMonteCarloReport wraps a Monte Carlo run.
func NewMonteCarloReport(source string, opts domain.PortfolioOptions, result *calculation.MonteCarloResult) *Report {
	ms := result.MarketStats
	return &Report{
		Title:       "Monte Carlo analysis",
		DataSource:  source,
		Options:     opts,
		MarketStats: &ms,
		MonteCarlo:  result,
		Assumptions: GenerateAssumptions(opts, &ms, ""),
		GeneratedAt: result.GeneratedAt,
	}
}

// WithCurrency sets the ISO currency amounts are rendered in and rebuilds the
// assumptions to match. An empty code means USD.
func (r *Report) WithCurrency(code string) *Report {
	r.Currency = strings.ToUpper(strings.TrimSpace(code))
	r.Assumptions = GenerateAssumptions(r.Options, r.MarketStats, r.Currency)
	return r
}

// Cycles returns the cycles of whichever result the report carries.
func (r *Report) Cycles() []domain.CycleData {
	switch {
	case r.Historical != nil:
		return r.Historical.Cycles
	case r.MonteCarlo != nil:
		return r.MonteCarlo.Cycles
	}
	return nil
}

// Stats returns the portfolio statistics of whichever result the report carries.
func (r *Report) Stats() domain.PortfolioStats {
	switch {
	case r.Historical != nil:
		return r.Historical.Stats
	case r.MonteCarlo != nil:
		return r.MonteCarlo.Stats
	}
	return domain.PortfolioStats{}
}

// GenerateReport renders report with the named format and writes it into dir.
// It returns the path of the written file.
func GenerateReport(report *Report, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return WriteFormatted(f, report, dir, extensionFor(f.Name()))
}

func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case name == "json":
		return "json"
	}
	return "txt"
}

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *Report, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("cyclesim_%s_%s.%s", f.Name(), nowFunc().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
