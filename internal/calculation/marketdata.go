package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rpgo/cyclesim/internal/domain"
)

// marketDataColumns is the column order of a market data CSV.
var marketDataColumns = []string{"year", "equities_price", "equities_dividend", "inflation_index", "fixed_income_interest"}

// LoadMarketDataFile loads a market series from a CSV file.
func LoadMarketDataFile(path string) ([]domain.MarketYearData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open market data %s: %w", path, err)
	}
	defer file.Close()

	series, err := ParseMarketDataCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load market data %s: %w", path, err)
	}
	return series, nil
}

// ParseMarketDataCSV reads rows of year,equitiesPrice,equitiesDividend,
// inflationIndex,fixedIncomeInterest. A header row is optional, CR, LF and
// CRLF line endings are accepted and blank lines are ignored. The result is
// sorted by year and validated.
func ParseMarketDataCSV(r io.Reader) ([]domain.MarketYearData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read market data: %w", err)
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var series []domain.MarketYearData
	for first := true; ; first = false {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read market data row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if first && isHeader(record) {
			continue
		}
		if len(record) < len(marketDataColumns) {
			return nil, fmt.Errorf("%w: line %d has %d fields, expected %d (%s)",
				domain.ErrInvalidMarketData, line, len(record), len(marketDataColumns), strings.Join(marketDataColumns, ","))
		}

		rec, err := parseMarketRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidMarketData, line, err)
		}
		series = append(series, rec)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no data rows found", domain.ErrInvalidMarketData)
	}

	sort.SliceStable(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	if err := domain.ValidateMarketSeries(series); err != nil {
		return nil, err
	}
	return series, nil
}

// isHeader reports whether no field of record is a number. A row such as
// "19x0,4.44,..." is a malformed data row, not a header.
func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}

func parseMarketRecord(record []string) (domain.MarketYearData, error) {
	year, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return domain.MarketYearData{}, fmt.Errorf("invalid year %q", record[0])
	}
	values := make([]float64, 4)
	for i := range values {
		field := strings.TrimSpace(record[i+1])
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return domain.MarketYearData{}, fmt.Errorf("invalid %s %q for year %d", marketDataColumns[i+1], field, year)
		}
		values[i] = v
	}
	return domain.MarketYearData{
		Year:                year,
		EquitiesPrice:       values[0],
		EquitiesDividend:    values[1],
		InflationIndex:      values[2],
		FixedIncomeInterest: values[3],
	}, nil
}
