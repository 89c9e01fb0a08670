package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer implements the simple summary CSV output (one row per cycle).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	if report == nil || (report.Historical == nil && report.MonteCarlo == nil) {
		return nil, ErrNoResult
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Cycle", "CycleStartYear", "EndingBalance", "EndingBalanceInfAdj", "TotalWithdrawal", "TotalWithdrawalInfAdj",
		"MedianWithdrawalInfAdj", "TotalEquitiesGrowth", "TotalDividends", "TotalBondsGrowth", "TotalFees", "YearsLasted", "FailureYear", "Failed"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, cycle := range report.Cycles() {
		s := cycle.Stats
		row := []string{
			intToString(i + 1),
			intToString(s.CycleStartYear),
			fixed(s.Balance.Ending, 4),
			fixed(s.Balance.EndingInfAdj, 4),
			fixed(s.Withdrawal.Nominal.Total, 2),
			fixed(s.Withdrawal.InfAdj.Total, 2),
			fixed(s.Withdrawal.InfAdj.Median, 2),
			fixed(s.TotalEquitiesGrowth, 2),
			fixed(s.TotalDividendsGrowth, 2),
			fixed(s.TotalBondsGrowth, 2),
			fixed(s.TotalFees, 2),
			intToString(s.YearsLasted),
			failureCell(s.FailureYear),
			boolToString(s.Failed()),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func failureCell(year *int) string {
	if year == nil {
		return ""
	}
	return intToString(*year)
}
