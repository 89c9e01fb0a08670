package calculation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/cyclesim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMarketCSV = "year,equities_price,equities_dividend,inflation_index,fixed_income_interest\n" +
	"1871,4.44,0.26,12.46,5.32\n" +
	"1872,4.86,0.3,12.65,5.36\n" +
	"1873,5.11,0.33,12.65,5.58\n"

func TestParseMarketDataCSV(t *testing.T) {
	series, err := ParseMarketDataCSV(strings.NewReader(sampleMarketCSV))
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, domain.MarketYearData{
		Year:                1871,
		EquitiesPrice:       4.44,
		EquitiesDividend:    0.26,
		InflationIndex:      12.46,
		FixedIncomeInterest: 5.32,
	}, series[0])
	assert.Equal(t, 1873, series[2].Year)
}

func TestParseMarketDataCSVLineEndings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"lf", sampleMarketCSV},
		{"crlf", strings.ReplaceAll(sampleMarketCSV, "\n", "\r\n")},
		{"cr", strings.ReplaceAll(sampleMarketCSV, "\n", "\r")},
		{"no header", strings.SplitN(sampleMarketCSV, "\n", 2)[1]},
		{"blank lines", strings.ReplaceAll(sampleMarketCSV, "\n", "\n\n")},
		{"no trailing newline", strings.TrimSuffix(sampleMarketCSV, "\n")},
		{"spaces", strings.ReplaceAll(sampleMarketCSV, ",", ", ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := ParseMarketDataCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, series, 3)
			assert.Equal(t, []int{1871, 1872, 1873}, []int{series[0].Year, series[1].Year, series[2].Year})
			assert.InDelta(t, 5.58, series[2].FixedIncomeInterest, 1e-12)
		})
	}
}

func TestParseMarketDataCSVSortsByYear(t *testing.T) {
	input := "1873,5.11,0.33,12.65,5.58\n1871,4.44,0.26,12.46,5.32\n1872,4.86,0.3,12.65,5.36\n"
	series, err := ParseMarketDataCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1871, series[0].Year)
	assert.Equal(t, 1873, series[2].Year)
}

func TestParseMarketDataCSVErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"empty", "", "no data rows"},
		{"header only", "year,equities_price,equities_dividend,inflation_index,fixed_income_interest\n", "no data rows"},
		{"short row", "1871,4.44,0.26\n", "line 1 has 3 fields"},
		{"bad number", "1871,4.44,abc,12.46,5.32\n", "invalid equities_dividend"},
		{"nan", "1871,NaN,0.26,12.46,5.32\n", "1871"},
		{"gap", "1871,4.44,0.26,12.46,5.32\n1873,5.11,0.33,12.65,5.58\n", "1873"},
		{"duplicate", "1871,4.44,0.26,12.46,5.32\n1871,4.44,0.26,12.46,5.32\n", "1871"},
		{"zero price", "1871,0,0.26,12.46,5.32\n", "1871"},
		{"header after data", "1871,4.44,0.26,12.46,5.32\nyear,a,b,c,d\n", "line 2"},
		{"malformed first year", "19x0,4.44,0.26,12.46,5.32\n1871,4.86,0.3,12.65,5.36\n", `line 1: invalid year "19x0"`},
		{"two header rows", "year,a,b,c,d\nyear,a,b,c,d\n1871,4.44,0.26,12.46,5.32\n", "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarketDataCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidMarketData)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestIsHeader(t *testing.T) {
	tests := []struct {
		record []string
		want   bool
	}{
		{[]string{"year", "equities_price", "equities_dividend", "inflation_index", "fixed_income_interest"}, true},
		{[]string{" Year ", "Price"}, true},
		{[]string{"19x0", "4.44", "0.26", "12.46", "5.32"}, false},
		{[]string{"year", "4.44", "x", "y", "z"}, false},
		{[]string{"1871", "a", "b", "c", "d"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHeader(tt.record), "%q", tt.record)
	}
}

func TestLoadMarketDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleMarketCSV), 0o644))

	series, err := LoadMarketDataFile(path)
	require.NoError(t, err)
	assert.Len(t, series, 3)

	_, err = LoadMarketDataFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
