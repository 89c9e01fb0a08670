package domain

// CycleYearData represents one computed year of a cycle
type CycleYearData struct {
	CycleYear           int     `json:"cycle_year"`
	CycleStartYear      int     `json:"cycle_start_year"`
	CumulativeInflation float64 `json:"cumulative_inflation"`

	// Balances (nominal and in cycle-start dollars)
	BalanceStart       float64 `json:"balance_start"`
	BalanceInfAdjStart float64 `json:"balance_inf_adj_start"`
	BalanceEnd         float64 `json:"balance_end"`
	BalanceInfAdjEnd   float64 `json:"balance_inf_adj_end"`

	// Withdrawal taken at the start of the year
	Withdrawal       float64 `json:"withdrawal"`
	WithdrawalInfAdj float64 `json:"withdrawal_inf_adj"`

	// Allocation and growth components
	Equities        float64 `json:"equities"`
	Bonds           float64 `json:"bonds"`
	EquitiesGrowth  float64 `json:"equities_growth"`
	DividendsGrowth float64 `json:"dividends_growth"`
	BondsGrowth     float64 `json:"bonds_growth"`
	Fees            float64 `json:"fees"`
}

// IsDepleted reports whether the portfolio ended the year at or below zero.
func (y CycleYearData) IsDepleted() bool {
	return y.BalanceEnd <= 0
}

// CycleData is the full trace of one simulated retirement plus its statistics.
type CycleData struct {
	CycleStartYear int             `json:"cycle_start_year"`
	YearData       []CycleYearData `json:"year_data"`
	Stats          CycleStats      `json:"stats"`
}

// SeriesStats summarizes one column of a cycle.
type SeriesStats struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	MinYear int     `json:"min_year"`
	Max     float64 `json:"max"`
	MaxYear int     `json:"max_year"`
}

// BalanceStats holds the end-of-year balance statistics of a cycle.
// Ending and EndingInfAdj are the final year's values.
type BalanceStats struct {
	Ending       float64     `json:"ending"`
	EndingInfAdj float64     `json:"ending_inf_adj"`
	Nominal      SeriesStats `json:"nominal"`
	InfAdj       SeriesStats `json:"inf_adj"`
}

// WithdrawalStats holds the withdrawal statistics of a cycle.
type WithdrawalStats struct {
	Nominal SeriesStats `json:"nominal"`
	InfAdj  SeriesStats `json:"inf_adj"`
}

// CycleStats aggregates a cycle's year rows.
type CycleStats struct {
	CycleStartYear int             `json:"cycle_start_year"`
	Balance        BalanceStats    `json:"balance"`
	Withdrawal     WithdrawalStats `json:"withdrawal"`

	TotalEquitiesGrowth  float64 `json:"total_equities_growth"`
	TotalDividendsGrowth float64 `json:"total_dividends_growth"`
	TotalBondsGrowth     float64 `json:"total_bonds_growth"`
	TotalFees            float64 `json:"total_fees"`

	// FailureYear is the calendar year of the first non-positive ending balance, nil if the cycle never failed.
	FailureYear *int `json:"failure_year,omitempty"`
	YearsLasted int  `json:"years_lasted"`
}

// Failed reports whether the cycle depleted the portfolio.
func (s CycleStats) Failed() bool {
	return s.FailureYear != nil
}

// Extreme records a value and where in the portfolio run it came from.
// Year is the calendar year of the value, or the cycle's last year for
// ending balances. It is zero for per-cycle totals.
type Extreme struct {
	Value          float64 `json:"value"`
	CycleStartYear int     `json:"cycle_start_year"`
	Year           int     `json:"year,omitempty"`
}

// Distribution summarizes a value across cycles.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    Extreme `json:"min"`
	Max    Extreme `json:"max"`
}

// PortfolioStats aggregates all cycles of a run.
type PortfolioStats struct {
	NumCycles    int     `json:"num_cycles"`
	NumFailures  int     `json:"num_failures"`
	NumSuccesses int     `json:"num_successes"`
	SuccessRate  float64 `json:"success_rate"`

	EndingBalance       Distribution `json:"ending_balance"`
	EndingBalanceInfAdj Distribution `json:"ending_balance_inf_adj"`
	WithdrawalNominal   Distribution `json:"withdrawal_nominal"`
	WithdrawalInfAdj    Distribution `json:"withdrawal_inf_adj"`

	EquitiesGrowth Distribution `json:"equities_growth"`
	Dividends      Distribution `json:"dividends"`
	BondsGrowth    Distribution `json:"bonds_growth"`
	Fees           Distribution `json:"fees"`
}

// PortfolioResult is the output of a full historical sweep.
type PortfolioResult struct {
	Cycles []CycleData    `json:"cycles"`
	Stats  PortfolioStats `json:"stats"`
}
