package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/cyclesim/internal/domain"
)

// Configuration is the top-level simulation file.
type Configuration struct {
	Data       string            `yaml:"data"`
	Currency   string            `yaml:"currency,omitempty"`
	Portfolio  PortfolioConfig   `yaml:"portfolio"`
	MonteCarlo *MonteCarloConfig `yaml:"monte_carlo,omitempty"`
}

// PortfolioConfig describes the portfolio and the withdrawal policy.
type PortfolioConfig struct {
	SimulationYears        int                     `yaml:"simulation_years"`
	StartBalance           decimal.Decimal         `yaml:"start_balance"`
	InvestmentExpenseRatio decimal.Decimal         `yaml:"investment_expense_ratio"`
	EquitiesRatio          decimal.Decimal         `yaml:"equities_ratio"`
	WithdrawalMethod       domain.WithdrawalMethod `yaml:"withdrawal_method"`
	Withdrawal             WithdrawalConfig        `yaml:"withdrawal"`
}

// WithdrawalConfig carries every withdrawal field a method may need.
// Which ones are required depends on the withdrawal method.
type WithdrawalConfig struct {
	StaticAmount *decimal.Decimal `yaml:"static_amount,omitempty"`
	Percentage   *decimal.Decimal `yaml:"percentage,omitempty"`
	Floor        *decimal.Decimal `yaml:"floor,omitempty"`
	Ceiling      *decimal.Decimal `yaml:"ceiling,omitempty"`
}

// MonteCarloConfig holds the optional Monte Carlo section.
type MonteCarloConfig struct {
	Simulations int   `yaml:"simulations"`
	Seed        int64 `yaml:"seed,omitempty"`
	Workers     int   `yaml:"workers,omitempty"`
}

// InputParser handles parsing of simulation files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a configuration from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	config, err := ip.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// ReadFile decodes a YAML file without validating it, so callers can layer
// overrides on top first. A relative data path is resolved against the
// directory of the file.
func (ip *InputParser) ReadFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if config.Data != "" && !filepath.IsAbs(config.Data) {
		config.Data = filepath.Join(filepath.Dir(filename), config.Data)
	}
	return &config, nil
}

// Parse decodes and validates a YAML document.
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if err := ValidateCurrency(config.Currency); err != nil {
		return err
	}
	if _, err := config.Portfolio.ToPortfolioOptions(); err != nil {
		return fmt.Errorf("portfolio: %w", err)
	}
	if mc := config.MonteCarlo; mc != nil {
		if mc.Simulations < 1 {
			return fmt.Errorf("monte_carlo: %w: simulations must be at least 1", domain.ErrInvalidOptions)
		}
		if mc.Workers < 0 {
			return fmt.Errorf("monte_carlo: %w: workers cannot be negative", domain.ErrInvalidOptions)
		}
	}
	return nil
}

// ValidateCurrency accepts an empty code (USD) or a known ISO 4217 code in
// any case.
func ValidateCurrency(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if money.GetCurrency(strings.ToUpper(code)) == nil {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidOptions, code)
	}
	return nil
}

// ToPortfolioOptions converts the portfolio section into validated engine
// options. A field the withdrawal method requires but the file omits is a
// configuration error.
func (pc PortfolioConfig) ToPortfolioOptions() (domain.PortfolioOptions, error) {
	policy, err := pc.Withdrawal.policy(pc.WithdrawalMethod)
	if err != nil {
		return domain.PortfolioOptions{}, err
	}
	return domain.NewPortfolioOptions(
		pc.SimulationYears,
		pc.StartBalance,
		pc.InvestmentExpenseRatio,
		pc.EquitiesRatio,
		policy,
	)
}

func (wc WithdrawalConfig) policy(method domain.WithdrawalMethod) (domain.WithdrawalPolicy, error) {
	switch method {
	case domain.MethodNominal:
		amount, err := required(method, "static_amount", wc.StaticAmount)
		if err != nil {
			return nil, err
		}
		return domain.NominalWithdrawal{StaticAmount: amount}, nil
	case domain.MethodInflationAdjusted:
		amount, err := required(method, "static_amount", wc.StaticAmount)
		if err != nil {
			return nil, err
		}
		return domain.InflationAdjustedWithdrawal{StaticAmount: amount}, nil
	case domain.MethodPercentPortfolio:
		pct, err := required(method, "percentage", wc.Percentage)
		if err != nil {
			return nil, err
		}
		return domain.PercentPortfolioWithdrawal{Percentage: pct}, nil
	case domain.MethodPercentPortfolioClamped:
		pct, err := required(method, "percentage", wc.Percentage)
		if err != nil {
			return nil, err
		}
		floor, err := required(method, "floor", wc.Floor)
		if err != nil {
			return nil, err
		}
		ceiling, err := required(method, "ceiling", wc.Ceiling)
		if err != nil {
			return nil, err
		}
		return domain.ClampedPercentWithdrawal{Percentage: pct, Floor: floor, Ceiling: ceiling}, nil
	case "":
		return nil, fmt.Errorf("%w: withdrawal_method is required", domain.ErrInvalidOptions)
	default:
		return nil, fmt.Errorf("%w: unknown withdrawal_method %q (valid: %v)", domain.ErrInvalidOptions, method, domain.WithdrawalMethods())
	}
}

func required(method domain.WithdrawalMethod, field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, fmt.Errorf("%w: withdrawal.%s is required for %s", domain.ErrInvalidOptions, field, method)
	}
	return *v, nil
}

// CreateExampleConfiguration creates an example configuration
func (ip *InputParser) CreateExampleConfiguration() *Configuration {
	amount := decimal.NewFromInt(40000)
	return &Configuration{
		Data: "market.csv",
		Portfolio: PortfolioConfig{
			SimulationYears:        30,
			StartBalance:           decimal.NewFromInt(1000000),
			InvestmentExpenseRatio: decimal.RequireFromString("0.0025"),
			EquitiesRatio:          decimal.RequireFromString("0.9"),
			WithdrawalMethod:       domain.MethodInflationAdjusted,
			Withdrawal: WithdrawalConfig{
				StaticAmount: &amount,
			},
		},
		MonteCarlo: &MonteCarloConfig{
			Simulations: 10000,
			Seed:        42,
		},
	}
}

// MarshalExample renders the example configuration as YAML.
func (ip *InputParser) MarshalExample() ([]byte, error) {
	return yaml.Marshal(ip.CreateExampleConfiguration())
}
