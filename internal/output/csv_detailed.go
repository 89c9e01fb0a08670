package output

import (
	"bytes"
	"encoding/csv"
)

// CSVDetailedExporter exports every computed year of every cycle.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	if report == nil || (report.Historical == nil && report.MonteCarlo == nil) {
		return nil, ErrNoResult
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Cycle", "CycleStartYear", "CycleYear", "CumulativeInflation", "BalanceStart", "BalanceInfAdjStart",
		"Withdrawal", "WithdrawalInfAdj", "Equities", "Bonds", "EquitiesGrowth", "DividendsGrowth", "BondsGrowth", "Fees",
		"BalanceEnd", "BalanceInfAdjEnd", "Depleted"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, cycle := range report.Cycles() {
		for _, yr := range cycle.YearData {
			row := []string{
				intToString(i + 1),
				intToString(yr.CycleStartYear),
				intToString(yr.CycleYear),
				fixed(yr.CumulativeInflation, 6),
				fixed(yr.BalanceStart, 2),
				fixed(yr.BalanceInfAdjStart, 2),
				fixed(yr.Withdrawal, 2),
				fixed(yr.WithdrawalInfAdj, 2),
				fixed(yr.Equities, 2),
				fixed(yr.Bonds, 2),
				fixed(yr.EquitiesGrowth, 2),
				fixed(yr.DividendsGrowth, 2),
				fixed(yr.BondsGrowth, 2),
				fixed(yr.Fees, 2),
				fixed(yr.BalanceEnd, 2),
				fixed(yr.BalanceInfAdjEnd, 2),
				boolToString(yr.IsDepleted()),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
