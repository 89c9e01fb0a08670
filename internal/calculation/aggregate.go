package calculation

import (
	"github.com/rpgo/cyclesim/internal/domain"
	"github.com/rpgo/cyclesim/pkg/stats"
)

// CycleColumns is a cycle's year rows transposed into one slice per field.
type CycleColumns struct {
	CycleStartYear      int
	CycleYear           []int
	CumulativeInflation []float64
	BalanceStart        []float64
	BalanceInfAdjStart  []float64
	BalanceEnd          []float64
	BalanceInfAdjEnd    []float64
	Withdrawal          []float64
	WithdrawalInfAdj    []float64
	Equities            []float64
	Bonds               []float64
	EquitiesGrowth      []float64
	DividendsGrowth     []float64
	BondsGrowth         []float64
	Fees                []float64
}

// Len returns the number of years in the columns.
func (c CycleColumns) Len() int {
	return len(c.CycleYear)
}

// PivotCycle transposes year rows into columns.
func PivotCycle(rows []domain.CycleYearData) CycleColumns {
	n := len(rows)
	cols := CycleColumns{
		CycleYear:           make([]int, n),
		CumulativeInflation: make([]float64, n),
		BalanceStart:        make([]float64, n),
		BalanceInfAdjStart:  make([]float64, n),
		BalanceEnd:          make([]float64, n),
		BalanceInfAdjEnd:    make([]float64, n),
		Withdrawal:          make([]float64, n),
		WithdrawalInfAdj:    make([]float64, n),
		Equities:            make([]float64, n),
		Bonds:               make([]float64, n),
		EquitiesGrowth:      make([]float64, n),
		DividendsGrowth:     make([]float64, n),
		BondsGrowth:         make([]float64, n),
		Fees:                make([]float64, n),
	}
	if n > 0 {
		cols.CycleStartYear = rows[0].CycleStartYear
	}
	for i, r := range rows {
		cols.CycleYear[i] = r.CycleYear
		cols.CumulativeInflation[i] = r.CumulativeInflation
		cols.BalanceStart[i] = r.BalanceStart
		cols.BalanceInfAdjStart[i] = r.BalanceInfAdjStart
		cols.BalanceEnd[i] = r.BalanceEnd
		cols.BalanceInfAdjEnd[i] = r.BalanceInfAdjEnd
		cols.Withdrawal[i] = r.Withdrawal
		cols.WithdrawalInfAdj[i] = r.WithdrawalInfAdj
		cols.Equities[i] = r.Equities
		cols.Bonds[i] = r.Bonds
		cols.EquitiesGrowth[i] = r.EquitiesGrowth
		cols.DividendsGrowth[i] = r.DividendsGrowth
		cols.BondsGrowth[i] = r.BondsGrowth
		cols.Fees[i] = r.Fees
	}
	return cols
}

// PivotPortfolioCycles pivots every cycle, preserving cycle order.
func PivotPortfolioCycles(cycles []domain.CycleData) []CycleColumns {
	out := make([]CycleColumns, len(cycles))
	for i, c := range cycles {
		out[i] = PivotCycle(c.YearData)
	}
	return out
}

// CrunchSingleCycleStats reduces a cycle's columns to its statistics.
func CrunchSingleCycleStats(cols CycleColumns) domain.CycleStats {
	n := cols.Len()
	cs := domain.CycleStats{
		CycleStartYear: cols.CycleStartYear,
		Balance: domain.BalanceStats{
			Nominal: seriesStats(cols.BalanceEnd, cols.CycleYear),
			InfAdj:  seriesStats(cols.BalanceInfAdjEnd, cols.CycleYear),
		},
		Withdrawal: domain.WithdrawalStats{
			Nominal: seriesStats(cols.Withdrawal, cols.CycleYear),
			InfAdj:  seriesStats(cols.WithdrawalInfAdj, cols.CycleYear),
		},
		TotalEquitiesGrowth:  stats.Sum(cols.EquitiesGrowth),
		TotalDividendsGrowth: stats.Sum(cols.DividendsGrowth),
		TotalBondsGrowth:     stats.Sum(cols.BondsGrowth),
		TotalFees:            stats.Sum(cols.Fees),
		YearsLasted:          n,
	}
	if n == 0 {
		return cs
	}
	cs.Balance.Ending = cols.BalanceEnd[n-1]
	cs.Balance.EndingInfAdj = cols.BalanceInfAdjEnd[n-1]

	for i, b := range cols.BalanceEnd {
		if b <= 0 {
			year := cols.CycleYear[i]
			cs.FailureYear = &year
			cs.YearsLasted = i
			break
		}
	}
	return cs
}

func seriesStats(values []float64, years []int) domain.SeriesStats {
	if len(values) == 0 {
		return domain.SeriesStats{}
	}
	minV, minIdx := stats.Min(values)
	maxV, maxIdx := stats.Max(values)
	return domain.SeriesStats{
		Total:   stats.Sum(values),
		Average: stats.Mean(values),
		Median:  stats.Median(values),
		Min:     minV,
		MinYear: years[minIdx],
		Max:     maxV,
		MaxYear: years[maxIdx],
	}
}

// CrunchAllPortfolioStats aggregates cycles into portfolio statistics.
// Cycle statistics must already be computed.
func CrunchAllPortfolioStats(cycles []domain.CycleData) domain.PortfolioStats {
	n := len(cycles)
	if n == 0 {
		return domain.PortfolioStats{}
	}

	ps := domain.PortfolioStats{NumCycles: n}
	starts := make([]int, n)
	endYears := make([]int, n)
	ending := make([]float64, n)
	endingInfAdj := make([]float64, n)
	equities := make([]float64, n)
	dividends := make([]float64, n)
	bonds := make([]float64, n)
	fees := make([]float64, n)

	for i, c := range cycles {
		if c.Stats.Failed() {
			ps.NumFailures++
		} else {
			ps.NumSuccesses++
		}
		starts[i] = c.CycleStartYear
		if len(c.YearData) > 0 {
			endYears[i] = c.YearData[len(c.YearData)-1].CycleYear
		}
		ending[i] = c.Stats.Balance.Ending
		endingInfAdj[i] = c.Stats.Balance.EndingInfAdj
		equities[i] = c.Stats.TotalEquitiesGrowth
		dividends[i] = c.Stats.TotalDividendsGrowth
		bonds[i] = c.Stats.TotalBondsGrowth
		fees[i] = c.Stats.TotalFees
	}
	ps.SuccessRate = float64(ps.NumSuccesses) / float64(n)

	ps.EndingBalance = distribution(ending, starts, endYears)
	ps.EndingBalanceInfAdj = distribution(endingInfAdj, starts, endYears)
	ps.EquitiesGrowth = distribution(equities, starts, nil)
	ps.Dividends = distribution(dividends, starts, nil)
	ps.BondsGrowth = distribution(bonds, starts, nil)
	ps.Fees = distribution(fees, starts, nil)

	var nominal, infAdj []float64
	var wStarts, wYears []int
	for _, cols := range PivotPortfolioCycles(cycles) {
		nominal = append(nominal, cols.Withdrawal...)
		infAdj = append(infAdj, cols.WithdrawalInfAdj...)
		wYears = append(wYears, cols.CycleYear...)
		for range cols.WithdrawalInfAdj {
			wStarts = append(wStarts, cols.CycleStartYear)
		}
	}
	ps.WithdrawalNominal = distribution(nominal, wStarts, wYears)
	ps.WithdrawalInfAdj = distribution(infAdj, wStarts, wYears)
	return ps
}

// distribution summarizes values; starts and years (optional) locate each value.
func distribution(values []float64, starts, years []int) domain.Distribution {
	if len(values) == 0 {
		return domain.Distribution{}
	}
	minV, minIdx := stats.Min(values)
	maxV, maxIdx := stats.Max(values)
	d := domain.Distribution{
		Mean:   stats.Mean(values),
		Median: stats.Median(values),
		Min:    domain.Extreme{Value: minV, CycleStartYear: starts[minIdx]},
		Max:    domain.Extreme{Value: maxV, CycleStartYear: starts[maxIdx]},
	}
	if years != nil {
		d.Min.Year = years[minIdx]
		d.Max.Year = years[maxIdx]
	}
	return d
}
