package analytics

import (
	"math"
	"testing"

	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
)

// binWithEfficiency builds a stat whose raw efficiency equals eff by fixing
// avg_quality = eff * avg_cost.
func binWithEfficiency(bin prompt.LengthBin, eff float64) BinStat {
	const cost = 0.01
	return BinStat{Bin: bin, Count: 1, AvgQuality: eff * cost, AvgCost: cost}
}

func TestRankEfficiencyNormalization(t *testing.T) {
	stats := []BinStat{
		binWithEfficiency(prompt.BinShort, 100),
		binWithEfficiency(prompt.BinMedium, 200),
		binWithEfficiency(prompt.BinLong, 50),
	}

	r := RankEfficiency(stats)
	want := []float64{50, 100, 25}
	for i, idx := range want {
		if !approxEq(r.Bins[i].EfficiencyIndex, idx) {
			t.Errorf("bin %s index = %v, want %v", r.Bins[i].Bin, r.Bins[i].EfficiencyIndex, idx)
		}
	}
}

func TestRankEfficiencyBestWorst(t *testing.T) {
	stats := []BinStat{
		binWithEfficiency(prompt.BinShort, 100), // index 50
		binWithEfficiency(prompt.BinMedium, 200), // index 100
		binWithEfficiency(prompt.BinLong, 50), // index 25
	}

	r := RankEfficiency(stats)
	if r.Best.Bin != prompt.BinMedium {
		t.Errorf("best = %s, want M", r.Best.Bin)
	}
	if r.Worst.Bin != prompt.BinLong {
		t.Errorf("worst = %s, want L", r.Worst.Bin)
	}
	if !r.Comparable {
		t.Error("expected comparable ranking")
	}
	if !approxEq(r.EfficiencyDelta, 75) {
		t.Errorf("efficiency_delta = %v, want 75", r.EfficiencyDelta)
	}
}

func TestRankEfficiencyTieBreakCanonicalOrder(t *testing.T) {
	stats := []BinStat{
		binWithEfficiency(prompt.BinShort, 100),
		binWithEfficiency(prompt.BinMedium, 100),
		binWithEfficiency(prompt.BinLong, 100),
	}

	r := RankEfficiency(stats)
	if r.Best.Bin != prompt.BinShort {
		t.Errorf("tied best must resolve to S, got %s", r.Best.Bin)
	}
	if r.Worst.Bin != prompt.BinShort {
		t.Errorf("tied worst must resolve to S, got %s", r.Worst.Bin)
	}
	if r.Comparable {
		t.Error("all-tied ranking must not be comparable")
	}
}

func TestRankEfficiencySingleBin(t *testing.T) {
	r := RankEfficiency([]BinStat{binWithEfficiency(prompt.BinShort, 120)})

	if r.Best.Bin != prompt.BinShort || r.Worst.Bin != prompt.BinShort {
		t.Fatalf("single bin must be both best and worst: %+v", r)
	}
	if r.Comparable {
		t.Error("single-bin ranking must not be comparable")
	}
	if r.QualityDeltaPct != 0 || r.CostDeltaPct != 0 || r.EfficiencyDelta != 0 {
		t.Errorf("single-bin deltas must all be zero: %+v", r)
	}
}

func TestRankEfficiencyZeroCostClamped(t *testing.T) {
	stats := []BinStat{
		{Bin: prompt.BinShort, Count: 1, AvgQuality: 4.5, AvgCost: 0},
		binWithEfficiency(prompt.BinMedium, 200),
	}

	r := RankEfficiency(stats)
	s := r.Bins[0]
	if math.IsInf(s.EfficiencyIndex, 0) || math.IsNaN(s.EfficiencyIndex) {
		t.Fatalf("zero-cost bin produced non-finite index: %v", s.EfficiencyIndex)
	}
	if s.EfficiencyIndex != 0 {
		t.Errorf("zero-cost bin index = %v, want 0", s.EfficiencyIndex)
	}
	if r.Best.Bin != prompt.BinMedium {
		t.Errorf("best = %s, want M", r.Best.Bin)
	}
	if r.Worst.Bin != prompt.BinShort {
		t.Errorf("worst = %s, want the clamped zero-cost bin S", r.Worst.Bin)
	}
}

func TestRankEfficiencyZeroQualityExcluded(t *testing.T) {
	stats := []BinStat{
		{Bin: prompt.BinShort, Count: 1, AvgQuality: 0, AvgCost: 0.01},
		binWithEfficiency(prompt.BinMedium, 200),
		binWithEfficiency(prompt.BinLong, 100),
	}

	r := RankEfficiency(stats)
	if r.Worst.Bin == prompt.BinShort {
		t.Error("unrankable zero-quality bin must not be selected as worst")
	}
	if r.Best.Bin != prompt.BinMedium || r.Worst.Bin != prompt.BinLong {
		t.Errorf("best/worst = %s/%s, want M/L", r.Best.Bin, r.Worst.Bin)
	}
}

func TestRankEfficiencyDeltas(t *testing.T) {
	stats := []BinStat{
		{Bin: prompt.BinShort, Count: 3, AvgQuality: 4.5, AvgCost: 0.005},
		{Bin: prompt.BinLong, Count: 3, AvgQuality: 4.0, AvgCost: 0.010},
	}

	r := RankEfficiency(stats)
	if r.Best.Bin != prompt.BinShort || r.Worst.Bin != prompt.BinLong {
		t.Fatalf("best/worst = %s/%s, want S/L", r.Best.Bin, r.Worst.Bin)
	}
	if !approxEq(r.QualityDeltaPct, (4.5-4.0)/4.0*100) {
		t.Errorf("quality_delta_pct = %v", r.QualityDeltaPct)
	}
	if !approxEq(r.CostDeltaPct, (0.010-0.005)/0.005*100) {
		t.Errorf("cost_delta_pct = %v", r.CostDeltaPct)
	}
}

func TestRankEfficiencyDoesNotMutateInput(t *testing.T) {
	stats := []BinStat{binWithEfficiency(prompt.BinShort, 100)}
	RankEfficiency(stats)
	if stats[0].EfficiencyIndex != 0 || stats[0].RawEfficiency != 0 {
		t.Errorf("input slice was mutated: %+v", stats[0])
	}
}
