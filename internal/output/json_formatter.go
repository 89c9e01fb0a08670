package output

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rpgo/cyclesim/internal/calculation"
	"github.com/rpgo/cyclesim/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonOptions struct {
	SimulationYearsLength  int                     `json:"simulation_years_length"`
	StartBalance           decimal.Decimal         `json:"start_balance"`
	InvestmentExpenseRatio decimal.Decimal         `json:"investment_expense_ratio"`
	EquitiesRatio          decimal.Decimal         `json:"equities_ratio"`
	WithdrawalMethod       domain.WithdrawalMethod `json:"withdrawal_method"`
	Withdrawal             domain.WithdrawalPolicy `json:"withdrawal"`
}

type jsonReport struct {
	Title       string                        `json:"title"`
	DataSource  string                        `json:"data_source,omitempty"`
	Currency    string                        `json:"currency,omitempty"`
	GeneratedAt time.Time                     `json:"generated_at"`
	Options     jsonOptions                   `json:"options"`
	Assumptions []string                      `json:"assumptions,omitempty"`
	Historical  *domain.PortfolioResult       `json:"historical,omitempty"`
	MonteCarlo  *calculation.MonteCarloResult `json:"monte_carlo,omitempty"`
}

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, ErrNoResult
	}
	out := jsonReport{
		Title:       report.Title,
		DataSource:  report.DataSource,
		Currency:    report.Currency,
		GeneratedAt: report.GeneratedAt,
		Options: jsonOptions{
			SimulationYearsLength:  report.Options.SimulationYearsLength,
			StartBalance:           report.Options.StartBalance,
			InvestmentExpenseRatio: report.Options.InvestmentExpenseRatio,
			EquitiesRatio:          report.Options.EquitiesRatio,
			Withdrawal:             report.Options.Withdrawal,
		},
		Assumptions: report.Assumptions,
		Historical:  report.Historical,
		MonteCarlo:  report.MonteCarlo,
	}
	if report.Options.Withdrawal != nil {
		out.Options.WithdrawalMethod = report.Options.Withdrawal.Method()
	}
	return json.MarshalIndent(out, "", "  ")
}
