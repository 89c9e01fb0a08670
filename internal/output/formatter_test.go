package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"console", "console"},
		{"verbose", "console-verbose"},
		{" CSV-Summary ", "csv"},
		{"csv-detailed", "detailed-csv"},
		{"json-pretty", "json"},
		{"mc-csv", "montecarlo-csv"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.in)
		require.NotNil(t, f, tt.in)
		assert.Equal(t, tt.want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("html"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "detailed-csv", "json", "montecarlo-csv"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "title", F: func(r *Report) ([]byte, error) { return []byte(r.Title), nil }}
	out, err := f.Format(&Report{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", string(out))
	assert.Equal(t, "title", f.Name())
}

func TestRegisterFormatter(t *testing.T) {
	f := FormatterFunc{ID: "Title", F: func(r *Report) ([]byte, error) { return []byte(r.Title), nil }}
	require.NoError(t, RegisterFormatter(f, "heading"))
	t.Cleanup(func() {
		registryMu.Lock()
		defer registryMu.Unlock()
		delete(formatters, "title")
		delete(aliases, "heading")
	})

	got := GetFormatterByName("HEADING")
	require.NotNil(t, got)
	out, err := got.Format(&Report{Title: "cycles"})
	require.NoError(t, err)
	assert.Equal(t, "cycles", string(out))

	assert.Error(t, RegisterFormatter(FormatterFunc{ID: "csv"}))
	assert.Error(t, RegisterFormatter(FormatterFunc{ID: "other"}, "verbose"))
	assert.Error(t, RegisterFormatter(FormatterFunc{ID: "verbose"}))
	assert.Error(t, RegisterFormatter(FormatterFunc{ID: " "}))
	assert.Nil(t, GetFormatterByName("other"))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "CYCLESIM SUMMARY: Historical cycle analysis")
	assert.Contains(t, content, "Market data:      market.csv")
	assert.Contains(t, content, "Cycles: 2  Failures: 1  Success rate: 50.00%")
	assert.Contains(t, content, "$1,234,567.89")
	assert.Contains(t, content, "Best cycle:  1990")
	assert.Contains(t, content, "Worst cycle: 1991")
	assert.Contains(t, content, "Earliest failure: cycle 1991 ran out in 1992")
}

func TestReportWithCurrency(t *testing.T) {
	report := buildTestReport(t).WithCurrency(" gbp ")
	assert.Equal(t, "GBP", report.Currency)
	assert.Equal(t, "Cycle length: 2 years, starting balance £1,000.00", report.Assumptions[0])

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Start balance:    £1,000.00")
	assert.Contains(t, content, "£1,234,567.89")
	assert.Contains(t, content, "(cycle 1991, 1992)")
	assert.NotContains(t, content, "$")

	out, err = JSONFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"currency": "GBP"`)

	out, err = JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"currency"`)
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "DETAILED WITHDRAWAL CYCLE ANALYSIS")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "Withdrawal: $40.00 per year, never adjusted for inflation")
	assert.Contains(t, content, "Allocation: 60.00% equities / 40.00% bonds")

	var rows []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "1990 ") || strings.HasPrefix(line, "1991 ") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 2)
	assert.True(t, strings.HasSuffix(rows[0], "-"))
	assert.True(t, strings.HasSuffix(rows[1], "1992"))
}

func TestFormattersRejectEmptyReport(t *testing.T) {
	for _, f := range []Formatter{ConsoleFormatter{}, ConsoleVerboseFormatter{}, CSVSummarizer{}, CSVDetailedExporter{}, MonteCarloCSVFormatter{}} {
		_, err := f.Format(&Report{})
		assert.ErrorIs(t, err, ErrNoResult, f.Name())
	}
	_, err := MonteCarloCSVFormatter{}.Format(buildTestReport(t))
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Cycle,CycleStartYear,EndingBalance,"))
	assert.True(t, strings.HasPrefix(lines[1], "1,1990,1234567.8910,"))
	assert.True(t, strings.HasSuffix(lines[1], ",2,,false"))
	assert.True(t, strings.HasPrefix(lines[2], "2,1991,-500.0000,"))
	assert.True(t, strings.HasSuffix(lines[2], ",1,1992,true"))
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], "1,1990,1990,1.000000,1000.00,"))
	assert.True(t, strings.HasSuffix(lines[4], ",-500.00,-500.00,true"))
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded struct {
		Title   string `json:"title"`
		Options struct {
			WithdrawalMethod string `json:"withdrawal_method"`
			Withdrawal       struct {
				StaticAmount decimal.Decimal `json:"static_amount"`
			} `json:"withdrawal"`
		} `json:"options"`
		Historical struct {
			Cycles []struct {
				Stats struct {
					FailureYear *int `json:"failure_year"`
				} `json:"stats"`
			} `json:"cycles"`
			Stats struct {
				SuccessRate float64 `json:"success_rate"`
			} `json:"stats"`
		} `json:"historical"`
		MonteCarlo any `json:"monte_carlo"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "Historical cycle analysis", decoded.Title)
	assert.Equal(t, "nominal", decoded.Options.WithdrawalMethod)
	assert.True(t, decoded.Options.Withdrawal.StaticAmount.Equal(decimal.NewFromInt(40)))
	require.Len(t, decoded.Historical.Cycles, 2)
	assert.Nil(t, decoded.Historical.Cycles[0].Stats.FailureYear)
	require.NotNil(t, decoded.Historical.Cycles[1].Stats.FailureYear)
	assert.Equal(t, 1992, *decoded.Historical.Cycles[1].Stats.FailureYear)
	assert.Equal(t, 0.5, decoded.Historical.Stats.SuccessRate)
	assert.Nil(t, decoded.MonteCarlo)
	assert.NotContains(t, string(out), `"monte_carlo"`)
}

func TestMonteCarloFormatters(t *testing.T) {
	report := buildMonteCarloReport(t)

	for _, name := range AvailableFormatterNames() {
		out, err := GetFormatterByName(name).Format(report)
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}

	out, err := MonteCarloCSVFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "Metric,Value,Description\n"))
	assert.Contains(t, content, "Simulations,32,")
	assert.Contains(t, content, "Seed,7,")
	assert.Contains(t, content, "Ending Balance (real) P90,")

	console, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(console), "Simulations: 32 (4 series x 8 cycles, seed 7)")
}

func TestGenerateReport(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	dir := t.TempDir()
	path, err := GenerateReport(buildTestReport(t), "csv-summary", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cyclesim_csv_20240501_123000.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Cycle,"))

	path, err = GenerateReport(buildTestReport(t), "verbose", dir)
	require.NoError(t, err)
	assert.Equal(t, ".txt", filepath.Ext(path))

	_, err = GenerateReport(buildTestReport(t), "pdf", dir)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "console-verbose")
}

func TestGenerateAllCSVReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mc")
	paths, err := GenerateAllCSVReports(buildMonteCarloReport(t), dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, err = GenerateAllCSVReports(buildTestReport(t), t.TempDir())
	assert.ErrorIs(t, err, ErrNoResult)
}
