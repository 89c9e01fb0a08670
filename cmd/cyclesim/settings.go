package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/rpgo/cyclesim/internal/calculation"
	"github.com/rpgo/cyclesim/internal/config"
	"github.com/rpgo/cyclesim/internal/domain"
	"github.com/rpgo/cyclesim/internal/output"
)

func outputFormats() []string {
	return output.AvailableFormatterNames()
}

// settings is the resolved input of a simulation command.
type settings struct {
	config  *config.Configuration
	options domain.PortfolioOptions
}

// resolveSettings layers flags and CYCLESIM_* variables over the simulation
// file. Without a file every portfolio flag contributes, defaults included;
// with one only flags and variables the user actually set do.
func resolveSettings(v *viper.Viper) (*settings, error) {
	parser := config.NewInputParser()

	cfg := &config.Configuration{}
	path := v.GetString("config")
	if path != "" {
		loaded, err := parser.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	override := func(key string) bool { return path == "" || v.IsSet(key) }

	if v.IsSet("data") {
		cfg.Data = v.GetString("data")
	}
	if v.IsSet("currency") {
		cfg.Currency = v.GetString("currency")
	}
	if err := config.ValidateCurrency(cfg.Currency); err != nil {
		return nil, err
	}
	if override("years") {
		cfg.Portfolio.SimulationYears = v.GetInt("years")
	}
	for _, f := range []struct {
		key string
		dst *decimal.Decimal
	}{
		{"start-balance", &cfg.Portfolio.StartBalance},
		{"expense-ratio", &cfg.Portfolio.InvestmentExpenseRatio},
		{"equities-ratio", &cfg.Portfolio.EquitiesRatio},
	} {
		if !override(f.key) {
			continue
		}
		d, err := decimalFlag(v, f.key)
		if err != nil {
			return nil, err
		}
		if d != nil {
			*f.dst = *d
		}
	}
	if override("method") {
		cfg.Portfolio.WithdrawalMethod = domain.WithdrawalMethod(v.GetString("method"))
	}
	for _, f := range []struct {
		key string
		dst **decimal.Decimal
	}{
		{"static-amount", &cfg.Portfolio.Withdrawal.StaticAmount},
		{"percentage", &cfg.Portfolio.Withdrawal.Percentage},
		{"floor", &cfg.Portfolio.Withdrawal.Floor},
		{"ceiling", &cfg.Portfolio.Withdrawal.Ceiling},
	} {
		if !override(f.key) {
			continue
		}
		d, err := decimalFlag(v, f.key)
		if err != nil {
			return nil, err
		}
		if d != nil {
			*f.dst = d
		}
	}

	if cfg.Data == "" {
		return nil, fmt.Errorf("market data is required: pass --data or set data: in the simulation file")
	}
	opts, err := cfg.Portfolio.ToPortfolioOptions()
	if err != nil {
		return nil, err
	}
	return &settings{config: cfg, options: opts}, nil
}

// decimalFlag parses a money or ratio flag; an empty value yields nil.
func decimalFlag(v *viper.Viper, key string) (*decimal.Decimal, error) {
	raw := v.GetString(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", key, raw, err)
	}
	return &d, nil
}

// monteCarloConfig merges the file's monte_carlo section with flags.
func monteCarloConfig(v *viper.Viper, cfg *config.Configuration) (calculation.MonteCarloConfig, error) {
	mc := calculation.MonteCarloConfig{DesiredSimulations: v.GetInt("simulations")}
	if cfg.MonteCarlo != nil {
		mc = calculation.MonteCarloConfig{
			DesiredSimulations: cfg.MonteCarlo.Simulations,
			Seed:               cfg.MonteCarlo.Seed,
			Workers:            cfg.MonteCarlo.Workers,
		}
		if v.IsSet("simulations") {
			mc.DesiredSimulations = v.GetInt("simulations")
		}
	}
	if v.IsSet("seed") {
		mc.Seed = v.GetInt64("seed")
	}
	if v.IsSet("workers") {
		mc.Workers = v.GetInt("workers")
	}
	if mc.DesiredSimulations < 1 {
		return mc, fmt.Errorf("%w: simulations must be at least 1", domain.ErrInvalidOptions)
	}
	return mc, nil
}
