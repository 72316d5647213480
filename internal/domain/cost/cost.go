// Package cost defines domain types for cost and token aggregation across runs.
package cost

// Summary holds aggregate cost, token and quality metrics for a run subset.
type Summary struct {
	TotalCostAUD float64 `json:"total_cost_aud"`
	TotalTokens  int64   `json:"total_tokens"`
	RunCount     int     `json:"run_count"`
	AvgComposite float64 `json:"avg_composite"`
}

// ModelSummary breaks down cost by LLM model.
type ModelSummary struct {
	Model string `json:"model"`
	Summary
}

// ScenarioSummary breaks down cost by benchmark scenario.
type ScenarioSummary struct {
	Scenario string `json:"scenario"`
	Summary
}

// DailyCost holds aggregated spend for a single day.
type DailyCost struct {
	Date     string  `json:"date"`
	CostAUD  float64 `json:"cost_aud"`
	Tokens   int64   `json:"tokens"`
	RunCount int     `json:"run_count"`
}
