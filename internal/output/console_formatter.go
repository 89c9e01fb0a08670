package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rpgo/cyclesim/internal/calculation"
	"github.com/rpgo/cyclesim/internal/domain"
)

// ConsoleFormatter provides a concise console summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || (report.Historical == nil && report.MonteCarlo == nil) {
		return nil, ErrNoResult
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "CYCLESIM SUMMARY: %s\n", report.Title)
	fmt.Fprintln(&buf, "================================")
	writeHeader(&buf, report)
	fmt.Fprintln(&buf)
	writeStats(&buf, report.Stats(), report.Currency)
	if report.MonteCarlo != nil {
		fmt.Fprintln(&buf)
		writeMonteCarlo(&buf, report.MonteCarlo, report.Currency)
	}
	fmt.Fprintln(&buf)
	writeHighlights(&buf, AnalyzeCycles(report.Cycles()), report.Currency)
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, report *Report) {
	if report.DataSource != "" {
		fmt.Fprintf(w, "Market data:      %s\n", report.DataSource)
	}
	fmt.Fprintf(w, "Cycle length:     %d years\n", report.Options.SimulationYearsLength)
	fmt.Fprintf(w, "Start balance:    %s\n", FormatMoney(report.Options.StartBalance, report.Currency))
	fmt.Fprintf(w, "%s\n", DescribeWithdrawal(report.Options.Withdrawal, report.Currency))
}

func writeStats(w io.Writer, st domain.PortfolioStats, currency string) {
	fmt.Fprintf(w, "Cycles: %d  Failures: %d  Success rate: %s\n", st.NumCycles, st.NumFailures, FormatPercentage(st.SuccessRate))
	if st.NumCycles == 0 {
		return
	}
	writeDistribution(w, "Ending balance", st.EndingBalance, currency)
	writeDistribution(w, "Ending balance (real)", st.EndingBalanceInfAdj, currency)
	writeDistribution(w, "Withdrawal", st.WithdrawalNominal, currency)
	writeDistribution(w, "Withdrawal (real)", st.WithdrawalInfAdj, currency)
}

func writeDistribution(w io.Writer, label string, d domain.Distribution, currency string) {
	fmt.Fprintf(w, "%-22s mean %s  median %s  min %s %s  max %s %s\n", label+":",
		FormatCurrency(d.Mean, currency), FormatCurrency(d.Median, currency),
		FormatCurrency(d.Min.Value, currency), extremeOrigin(d.Min),
		FormatCurrency(d.Max.Value, currency), extremeOrigin(d.Max))
}

func extremeOrigin(e domain.Extreme) string {
	if e.Year != 0 {
		return fmt.Sprintf("(cycle %d, %d)", e.CycleStartYear, e.Year)
	}
	return fmt.Sprintf("(cycle %d)", e.CycleStartYear)
}

func writeMonteCarlo(w io.Writer, mc *calculation.MonteCarloResult, currency string) {
	fmt.Fprintf(w, "Simulations: %d (%d series x %d cycles, seed %d)\n", mc.NumSimulations, mc.NumSeries, mc.SimulationsPerSeries, mc.Seed)
	fmt.Fprintf(w, "Market change: mean %s  std dev %s\n",
		FormatPercentage(mc.MarketStats.MeanAnnualMarketChange), FormatPercentage(mc.MarketStats.StdDevAnnualMarketChange))
	writePercentiles(w, "Ending balance", mc.EndingBalancePercentiles, currency)
	writePercentiles(w, "Ending balance (real)", mc.EndingInfAdjPercentiles, currency)
}

func writePercentiles(w io.Writer, label string, p calculation.PercentileRanges, currency string) {
	fmt.Fprintf(w, "%-22s P10 %s  P25 %s  P50 %s  P75 %s  P90 %s\n", label+":",
		FormatCurrency(p.P10, currency), FormatCurrency(p.P25, currency), FormatCurrency(p.P50, currency),
		FormatCurrency(p.P75, currency), FormatCurrency(p.P90, currency))
}

func writeHighlights(w io.Writer, a CycleAnalysis, currency string) {
	fmt.Fprintf(w, "Best cycle:  %d (real ending %s)\n", a.Best.CycleStartYear, FormatCurrency(a.Best.Balance.EndingInfAdj, currency))
	fmt.Fprintf(w, "Worst cycle: %d (real ending %s)\n", a.Worst.CycleStartYear, FormatCurrency(a.Worst.Balance.EndingInfAdj, currency))
	if a.EarliestFailure != nil {
		fmt.Fprintf(w, "Earliest failure: cycle %d ran out in %d\n", a.EarliestFailure.CycleStartYear, *a.EarliestFailure.FailureYear)
	}
}
