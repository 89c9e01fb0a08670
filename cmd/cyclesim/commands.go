package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/cyclesim/internal/calculation"
	"github.com/rpgo/cyclesim/internal/config"
	"github.com/rpgo/cyclesim/internal/domain"
	"github.com/rpgo/cyclesim/internal/output"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every historical cycle and report portfolio statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, series, err := a.load()
			if err != nil {
				return err
			}
			cp, err := calculation.NewCyclePortfolio(series, s.options, calculation.WithLogger(a.logger))
			if err != nil {
				return err
			}
			result, err := cp.CrunchAllCyclesData(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), output.NewHistoricalReport(s.config.Data, s.options, result).WithCurrency(s.config.Currency))
		},
	}
}

func (a *app) cycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Run a single cycle (the first year of the data unless --start-year is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, series, err := a.load()
			if err != nil {
				return err
			}
			cp, err := calculation.NewCyclePortfolio(series, s.options, calculation.WithLogger(a.logger))
			if err != nil {
				return err
			}

			var cycle domain.CycleData
			if start, _ := cmd.Flags().GetInt("start-year"); start != 0 {
				cycle, err = cp.CrunchCycle(start)
			} else {
				cycle, err = cp.CrunchSingleCycleData()
			}
			if err != nil {
				return err
			}

			cycles := []domain.CycleData{cycle}
			result := &domain.PortfolioResult{Cycles: cycles, Stats: calculation.CrunchAllPortfolioStats(cycles)}
			report := output.NewHistoricalReport(s.config.Data, s.options, result).WithCurrency(s.config.Currency)
			report.Title = fmt.Sprintf("Single cycle starting %d", cycle.CycleStartYear)
			return a.emit(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Int("start-year", 0, "calendar year the cycle starts in")
	return cmd
}

func (a *app) monteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Run the withdrawal policy over synthetic market series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, series, err := a.load()
			if err != nil {
				return err
			}
			mcConfig, err := monteCarloConfig(a.v, s.config)
			if err != nil {
				return err
			}
			mcs, err := calculation.NewMonteCarloSimulator(series, s.options, mcConfig, calculation.WithLogger(a.logger))
			if err != nil {
				return err
			}
			result, err := mcs.Run(cmd.Context())
			if err != nil {
				return err
			}

			report := output.NewMonteCarloReport(s.config.Data, s.options, result).WithCurrency(s.config.Currency)
			if dir := a.v.GetString("csv-dir"); dir != "" {
				paths, err := output.GenerateAllCSVReports(report, dir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					a.logger.Infof("wrote %s", p)
				}
			}
			return a.emit(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Int("simulations", 1000, "desired number of simulated cycles")
	cmd.Flags().Int64("seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().Int("workers", 0, "concurrent series (0 uses all CPUs)")
	cmd.Flags().String("csv-dir", "", "also write summary, per-cycle and per-year CSV files here")
	return cmd
}

func (a *app) marketStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market-stats",
		Short: "Summarize the market data series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, series, err := a.load()
			if err != nil {
				return err
			}
			ms, err := calculation.GetMarketDataStats(series)
			if err != nil {
				return err
			}
			cp, err := calculation.NewCyclePortfolio(series, s.options)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Market data:          %s\n", s.config.Data)
			fmt.Fprintf(out, "Years:                %d-%d (%d records)\n", cp.FirstYear(), cp.LastYear(), len(series))
			fmt.Fprintf(out, "Mean annual change:   %s\n", output.FormatPercentage(ms.MeanAnnualMarketChange))
			fmt.Fprintf(out, "Std dev of change:    %s\n", output.FormatPercentage(ms.StdDevAnnualMarketChange))
			fmt.Fprintf(out, "%d-year cycles:        %d\n", s.options.SimulationYearsLength, max(cp.MaxSimulationCycles(), 0))
			return nil
		},
	}
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example simulation file (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.NewInputParser().MarshalExample()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}

// load resolves settings and reads the market series.
func (a *app) load() (*settings, []domain.MarketYearData, error) {
	s, err := resolveSettings(a.v)
	if err != nil {
		return nil, nil, err
	}
	series, err := calculation.LoadMarketDataFile(s.config.Data)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debugf("loaded %d market years from %s", len(series), s.config.Data)
	return s, series, nil
}

// emit renders the report to w, or to a file when --output-dir is set.
func (a *app) emit(w io.Writer, report *output.Report) error {
	format := a.v.GetString("format")
	if dir := a.v.GetString("output-dir"); dir != "" {
		path, err := output.GenerateReport(report, format, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", path)
		return nil
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
