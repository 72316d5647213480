package analytics

import (
	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
)

// ComputeLengthBinStats filters runs and groups the contributing subset by
// length bin, computing count and arithmetic means of composite score and
// cost per bin. Output is in canonical S, M, L order regardless of input
// order; bins with no contributing runs are omitted entirely. Means are left
// unrounded; rounding for display is the presentation layer's concern.
func ComputeLengthBinStats(runs []run.Run, f Filter) []BinStat {
	type acc struct {
		sumQuality float64
		sumCost    float64
		count      int
	}
	accs := make(map[prompt.LengthBin]*acc, len(prompt.CanonicalBins))

	for _, r := range FilterRuns(runs, f) {
		if !contributes(r) {
			continue
		}
		a := accs[r.LengthBin]
		if a == nil {
			a = &acc{}
			accs[r.LengthBin] = a
		}
		a.sumQuality += r.Scores.Composite
		a.sumCost += r.Economics.AUDCost
		a.count++
	}

	var stats []BinStat
	for _, bin := range prompt.CanonicalBins {
		a, ok := accs[bin]
		if !ok {
			continue
		}
		n := float64(a.count)
		stats = append(stats, BinStat{
			Bin:        bin,
			Count:      a.count,
			AvgQuality: a.sumQuality / n,
			AvgCost:    a.sumCost / n,
		})
	}
	return stats
}
