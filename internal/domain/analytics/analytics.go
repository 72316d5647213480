// Package analytics implements the experiment-results aggregation pipeline:
// filtering runs, per-length-bin summary statistics, efficiency ranking and
// monthly cost projection. All functions are pure; they never read ambient
// state and never mutate their inputs, so identical inputs always produce
// identical reports and results can be cached keyed on the filter.
package analytics

import (
	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
)

// DefaultMonthlyVolume is the fixed monthly query volume used for the
// "real-world impact" cost projection when the caller does not override it.
const DefaultMonthlyVolume = 10000

// Filter selects the run subset relevant to the current analysis. Zero values
// mean no restriction on that axis.
type Filter struct {
	Scenario string   `json:"scenario,omitempty"`
	Models   []string `json:"models,omitempty"`
}

// BinStat holds the derived summary statistics for one length bin. The ratio
// fields are filled by RankEfficiency; ComputeLengthBinStats only populates
// count and the two means.
type BinStat struct {
	Bin             prompt.LengthBin `json:"bin"`
	Count           int              `json:"count"`
	AvgQuality      float64          `json:"avg_quality"`
	AvgCost         float64          `json:"avg_cost"`
	CostPerQuality  float64          `json:"cost_per_quality"`
	RawEfficiency   float64          `json:"raw_efficiency"`
	EfficiencyIndex float64          `json:"efficiency_index"`
}

// Ranking identifies the best- and worst-value bins and the comparative
// deltas between them. Comparable is false when fewer than two distinct bins
// were rankable; callers must then suppress the "X% more efficient" narrative.
type Ranking struct {
	Bins            []BinStat `json:"bins"` // enriched with ratio fields, canonical S, M, L order
	Best            BinStat   `json:"best"`
	Worst           BinStat   `json:"worst"`
	Comparable      bool      `json:"comparable"`
	QualityDeltaPct float64   `json:"quality_delta_pct"`
	CostDeltaPct    float64   `json:"cost_delta_pct"`
	EfficiencyDelta float64   `json:"efficiency_delta"`
}

// ProjectionRow extrapolates one bin's average cost to a monthly query volume.
// Savings is relative to the best-value bin and can be negative: the
// highest-efficiency bin is not necessarily the cheapest.
type ProjectionRow struct {
	Bin         prompt.LengthBin `json:"bin"`
	MonthlyCost float64          `json:"monthly_cost"`
	Savings     float64          `json:"savings"`
}

// Report is the full aggregation output served to the dashboard.
type Report struct {
	Filter     Filter          `json:"filter"`
	RunCount   int             `json:"run_count"` // contributing runs after filtering
	Bins       []BinStat       `json:"bins"`
	Ranking    *Ranking        `json:"ranking,omitempty"` // nil when no bins contributed
	Projection []ProjectionRow `json:"projection,omitempty"`
	Volume     float64         `json:"volume"`
}
