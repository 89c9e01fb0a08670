package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleVerboseFormatter renders the summary plus assumptions and a per-cycle table.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	summary, err := ConsoleFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED WITHDRAWAL CYCLE ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = GenerateAssumptions(report.Options, report.MarketStats, report.Currency)
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)
	buf.Write(summary)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-6s %18s %18s %18s %7s %8s\n", "Start", "Ending", "Ending (real)", "Withdrawn (real)", "Lasted", "Failed")
	fmt.Fprintln(&buf, strings.Repeat("-", 81))
	for _, cycle := range report.Cycles() {
		s := cycle.Stats
		fmt.Fprintf(&buf, "%-6d %18s %18s %18s %7d %8s\n",
			s.CycleStartYear,
			FormatCurrency(s.Balance.Ending, report.Currency),
			FormatCurrency(s.Balance.EndingInfAdj, report.Currency),
			FormatCurrency(s.Withdrawal.InfAdj.Total, report.Currency),
			s.YearsLasted,
			FormatYear(s.FailureYear),
		)
	}
	return buf.Bytes(), nil
}
