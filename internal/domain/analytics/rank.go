package analytics

// RankEfficiency derives the normalized efficiency index per bin and selects
// the best- and worst-value bins. The input is not mutated; the returned
// Ranking carries an enriched copy of the stats.
//
// A bin with zero average cost is clamped to efficiency 0 rather than treated
// as infinitely efficient: zero cost with nonzero quality is a data anomaly.
// A bin with zero average quality cannot be ranked (its cost-per-quality is
// not finite) and is excluded from best/worst selection. Ties break in
// canonical S, M, L order, first match wins.
func RankEfficiency(stats []BinStat) Ranking {
	bins := make([]BinStat, len(stats))
	copy(bins, stats)

	maxRaw := 0.0
	for i := range bins {
		b := &bins[i]
		if b.AvgQuality > 0 {
			b.CostPerQuality = b.AvgCost / b.AvgQuality
		}
		if b.AvgCost > 0 {
			b.RawEfficiency = b.AvgQuality / b.AvgCost
		}
		if b.RawEfficiency > maxRaw {
			maxRaw = b.RawEfficiency
		}
	}
	if maxRaw > 0 {
		for i := range bins {
			bins[i].EfficiencyIndex = bins[i].RawEfficiency / maxRaw * 100
		}
	}

	r := Ranking{Bins: bins}

	bestIdx, worstIdx := -1, -1
	for i := range bins {
		if bins[i].AvgQuality <= 0 {
			continue
		}
		if bestIdx < 0 || bins[i].EfficiencyIndex > bins[bestIdx].EfficiencyIndex {
			bestIdx = i
		}
		if worstIdx < 0 || bins[i].EfficiencyIndex < bins[worstIdx].EfficiencyIndex {
			worstIdx = i
		}
	}
	if bestIdx < 0 {
		return r
	}

	r.Best = bins[bestIdx]
	r.Worst = bins[worstIdx]
	if bestIdx == worstIdx {
		// Single rankable bin: no comparison possible, all deltas stay zero.
		return r
	}

	r.Comparable = true
	r.QualityDeltaPct = (r.Best.AvgQuality - r.Worst.AvgQuality) / r.Worst.AvgQuality * 100
	if r.Best.AvgCost > 0 {
		r.CostDeltaPct = (r.Worst.AvgCost - r.Best.AvgCost) / r.Best.AvgCost * 100
	}
	r.EfficiencyDelta = r.Best.EfficiencyIndex - r.Worst.EfficiencyIndex
	return r
}
