package analytics

import (
	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
)

// ProjectMonthlyCost extrapolates each bin's average cost to a monthly query
// volume and computes savings relative to the best-value bin. Savings is
// positive when a bin costs more per month than the best bin and negative
// when it is cheaper: best is the maximum-efficiency bin, not the
// minimum-cost one, so monotonicity with the efficiency index must not be
// assumed. The best bin's own row has savings 0 by construction.
func ProjectMonthlyCost(stats []BinStat, best prompt.LengthBin, volume float64) []ProjectionRow {
	if volume <= 0 {
		volume = DefaultMonthlyVolume
	}

	bestMonthly := 0.0
	for _, b := range stats {
		if b.Bin == best {
			bestMonthly = b.AvgCost * volume
			break
		}
	}

	rows := make([]ProjectionRow, 0, len(stats))
	for _, b := range stats {
		monthly := b.AvgCost * volume
		rows = append(rows, ProjectionRow{
			Bin:         b.Bin,
			MonthlyCost: monthly,
			Savings:     monthly - bestMonthly,
		})
	}
	return rows
}

// BuildReport runs the full pipeline over a run set: bin statistics,
// efficiency ranking and monthly projection. An empty contributing set yields
// a report with empty bins and no ranking; this is the documented "run more
// experiments" state, not an error.
func BuildReport(runs []run.Run, f Filter, volume float64) Report {
	if volume <= 0 {
		volume = DefaultMonthlyVolume
	}

	stats := ComputeLengthBinStats(runs, f)
	report := Report{
		Filter: f,
		Bins:   []BinStat{},
		Volume: volume,
	}
	if len(stats) == 0 {
		return report
	}

	ranking := RankEfficiency(stats)
	report.Bins = ranking.Bins
	report.Ranking = &ranking
	report.Projection = ProjectMonthlyCost(ranking.Bins, ranking.Best.Bin, volume)
	for _, b := range stats {
		report.RunCount += b.Count
	}
	return report
}
