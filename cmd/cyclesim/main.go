// cyclesim simulates retirement withdrawal policies over every historical
// start year of a market series, or over synthetic Monte Carlo series.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rpgo/cyclesim/internal/calculation"
	"github.com/rpgo/cyclesim/internal/logging"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger calculation.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: calculation.NopLogger{}}
	a.v.SetEnvPrefix("CYCLESIM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "cyclesim",
		Short: "Cycle-based retirement withdrawal simulator",
		Long: `cyclesim runs a withdrawal policy over every feasible retirement start year
of an annual market series and reports success rates and balance and
withdrawal distributions. Flags override the simulation file; CYCLESIM_*
environment variables (e.g. CYCLESIM_START_BALANCE) sit between the two.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			logger, err := logging.NewConsole(cmd.ErrOrStderr(), a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "simulation file (YAML)")
	flags.String("data", "", "market data CSV (year,price,dividend,cpi,interest)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("format", "console", "output format: "+strings.Join(outputFormats(), ", "))
	flags.String("output-dir", "", "write the report to a timestamped file in this directory instead of stdout")
	flags.String("currency", "", "ISO currency code amounts are shown in (default USD)")

	flags.Int("years", 30, "simulation years per cycle")
	flags.String("start-balance", "1000000", "starting portfolio balance")
	flags.String("expense-ratio", "0.0025", "annual investment expense ratio")
	flags.String("equities-ratio", "0.9", "fraction of the portfolio held in equities")
	flags.String("method", "inflation_adjusted", "withdrawal method: nominal, inflation_adjusted, percent_portfolio, percent_portfolio_clamped")
	flags.String("static-amount", "40000", "yearly withdrawal for nominal and inflation_adjusted")
	flags.String("percentage", "0.04", "withdrawal fraction for the percent methods")
	flags.String("floor", "", "minimum real withdrawal for percent_portfolio_clamped")
	flags.String("ceiling", "", "maximum real withdrawal for percent_portfolio_clamped")

	root.AddCommand(
		a.runCmd(),
		a.cycleCmd(),
		a.monteCarloCmd(),
		a.marketStatsCmd(),
		a.initCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cyclesim %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}
