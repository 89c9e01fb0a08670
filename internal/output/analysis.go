package output

import (
	"sort"

	"github.com/rpgo/cyclesim/internal/domain"
)

// CycleAnalysis highlights the notable cycles of a run.
type CycleAnalysis struct {
	Best            domain.CycleStats
	Worst           domain.CycleStats
	EarliestFailure *domain.CycleStats
	// Failures are sorted by years lasted, shortest first.
	Failures []domain.CycleStats
}

// AnalyzeCycles ranks cycles by inflation-adjusted ending balance. Ties keep
// chronological order.
func AnalyzeCycles(cycles []domain.CycleData) CycleAnalysis {
	if len(cycles) == 0 {
		return CycleAnalysis{}
	}
	ranked := make([]domain.CycleStats, len(cycles))
	for i, c := range cycles {
		ranked[i] = c.Stats
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Balance.EndingInfAdj > ranked[j].Balance.EndingInfAdj })

	a := CycleAnalysis{Best: ranked[0], Worst: ranked[len(ranked)-1]}
	for _, s := range ranked {
		if s.Failed() {
			a.Failures = append(a.Failures, s)
		}
	}
	sort.SliceStable(a.Failures, func(i, j int) bool {
		if a.Failures[i].YearsLasted != a.Failures[j].YearsLasted {
			return a.Failures[i].YearsLasted < a.Failures[j].YearsLasted
		}
		return a.Failures[i].CycleStartYear < a.Failures[j].CycleStartYear
	})
	if len(a.Failures) > 0 {
		earliest := a.Failures[0]
		for _, f := range a.Failures[1:] {
			if *f.FailureYear < *earliest.FailureYear {
				earliest = f
			}
		}
		a.EarliestFailure = &earliest
	}
	return a
}
