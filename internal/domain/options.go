package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WithdrawalMethod identifies a withdrawal policy by name.
type WithdrawalMethod string

const (
	MethodNominal                 WithdrawalMethod = "nominal"
	MethodInflationAdjusted       WithdrawalMethod = "inflation_adjusted"
	MethodPercentPortfolio        WithdrawalMethod = "percent_portfolio"
	MethodPercentPortfolioClamped WithdrawalMethod = "percent_portfolio_clamped"
)

// WithdrawalMethods lists the supported methods in display order.
func WithdrawalMethods() []WithdrawalMethod {
	return []WithdrawalMethod{MethodNominal, MethodInflationAdjusted, MethodPercentPortfolio, MethodPercentPortfolioClamped}
}

// WithdrawalPolicy is a closed set of withdrawal rules. Each variant carries
// only the fields its method needs.
type WithdrawalPolicy interface {
	Method() WithdrawalMethod
	validate() error
}

// NominalWithdrawal withdraws the same nominal amount every year.
type NominalWithdrawal struct {
	StaticAmount decimal.Decimal `json:"static_amount"`
}

// InflationAdjustedWithdrawal withdraws a constant real amount, grown by cumulative inflation.
type InflationAdjustedWithdrawal struct {
	StaticAmount decimal.Decimal `json:"static_amount"`
}

// PercentPortfolioWithdrawal withdraws a fixed fraction of the starting balance each year.
type PercentPortfolioWithdrawal struct {
	Percentage decimal.Decimal `json:"percentage"`
}

// ClampedPercentWithdrawal withdraws a fraction of the real balance, bounded
// to [Floor, Ceiling] in cycle-start dollars.
type ClampedPercentWithdrawal struct {
	Percentage decimal.Decimal `json:"percentage"`
	Floor      decimal.Decimal `json:"floor"`
	Ceiling    decimal.Decimal `json:"ceiling"`
}

func (NominalWithdrawal) Method() WithdrawalMethod           { return MethodNominal }
func (InflationAdjustedWithdrawal) Method() WithdrawalMethod { return MethodInflationAdjusted }
func (PercentPortfolioWithdrawal) Method() WithdrawalMethod  { return MethodPercentPortfolio }
func (ClampedPercentWithdrawal) Method() WithdrawalMethod    { return MethodPercentPortfolioClamped }

func (NominalWithdrawal) validate() error           { return nil }
func (InflationAdjustedWithdrawal) validate() error { return nil }
func (PercentPortfolioWithdrawal) validate() error  { return nil }

func (w ClampedPercentWithdrawal) validate() error {
	if w.Floor.GreaterThan(w.Ceiling) {
		return fmt.Errorf("%w: withdrawal floor %s exceeds ceiling %s", ErrInvalidOptions, w.Floor, w.Ceiling)
	}
	return nil
}

// PortfolioOptions holds the portfolio and withdrawal parameters of a simulation run.
// Options are read-only for the duration of a run.
type PortfolioOptions struct {
	SimulationYearsLength  int              `json:"simulation_years_length"`
	StartBalance           decimal.Decimal  `json:"start_balance"`
	InvestmentExpenseRatio decimal.Decimal  `json:"investment_expense_ratio"`
	EquitiesRatio          decimal.Decimal  `json:"equities_ratio"`
	Withdrawal             WithdrawalPolicy `json:"withdrawal"`
}

// NewPortfolioOptions builds validated options.
func NewPortfolioOptions(years int, startBalance, expenseRatio, equitiesRatio decimal.Decimal, withdrawal WithdrawalPolicy) (PortfolioOptions, error) {
	opts := PortfolioOptions{
		SimulationYearsLength:  years,
		StartBalance:           startBalance,
		InvestmentExpenseRatio: expenseRatio,
		EquitiesRatio:          equitiesRatio,
		Withdrawal:             withdrawal,
	}
	if err := opts.Validate(); err != nil {
		return PortfolioOptions{}, err
	}
	return opts, nil
}

// Validate checks ranges and that a withdrawal policy is present.
func (o PortfolioOptions) Validate() error {
	if o.SimulationYearsLength < 1 {
		return fmt.Errorf("%w: simulation years length must be at least 1, got %d", ErrInvalidOptions, o.SimulationYearsLength)
	}
	if o.StartBalance.IsNegative() {
		return fmt.Errorf("%w: start balance must not be negative, got %s", ErrInvalidOptions, o.StartBalance)
	}
	if !unitInterval(o.InvestmentExpenseRatio) {
		return fmt.Errorf("%w: investment expense ratio must be between 0 and 1, got %s", ErrInvalidOptions, o.InvestmentExpenseRatio)
	}
	if !unitInterval(o.EquitiesRatio) {
		return fmt.Errorf("%w: equities ratio must be between 0 and 1, got %s", ErrInvalidOptions, o.EquitiesRatio)
	}
	if o.Withdrawal == nil {
		return fmt.Errorf("%w: withdrawal policy is required", ErrInvalidOptions)
	}
	return o.Withdrawal.validate()
}

func unitInterval(v decimal.Decimal) bool {
	return !v.IsNegative() && v.LessThanOrEqual(decimal.NewFromInt(1))
}
