package postgres

import (
	"context"
	"fmt"

	"github.com/mozeyada/cybercqbench/internal/domain/cost"
)

// Cost summaries aggregate succeeded runs only; queued, running and failed
// runs carry no meaningful spend or quality signal.

// CostByModel returns aggregate cost and quality per model.
func (s *Store) CostByModel(ctx context.Context) ([]cost.ModelSummary, error) {
	const q = `SELECT model,
			COALESCE(SUM(aud_cost), 0),
			COALESCE(SUM(tokens_total), 0),
			COUNT(*),
			COALESCE(AVG(composite_score) FILTER (WHERE composite_score > 0 AND NOT evaluation_failed), 0)
		FROM runs
		WHERE status = 'succeeded'
		GROUP BY model
		ORDER BY SUM(aud_cost) DESC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("cost by model: %w", err)
	}
	defer rows.Close()

	var out []cost.ModelSummary
	for rows.Next() {
		var m cost.ModelSummary
		if err := rows.Scan(&m.Model, &m.TotalCostAUD, &m.TotalTokens, &m.RunCount, &m.AvgComposite); err != nil {
			return nil, fmt.Errorf("scan model summary: %w", err)
		}
		out = append(out, m)
	}
	return orEmpty(out), rows.Err()
}

// CostByScenario returns aggregate cost and quality per scenario.
func (s *Store) CostByScenario(ctx context.Context) ([]cost.ScenarioSummary, error) {
	const q = `SELECT scenario,
			COALESCE(SUM(aud_cost), 0),
			COALESCE(SUM(tokens_total), 0),
			COUNT(*),
			COALESCE(AVG(composite_score) FILTER (WHERE composite_score > 0 AND NOT evaluation_failed), 0)
		FROM runs
		WHERE status = 'succeeded'
		GROUP BY scenario
		ORDER BY scenario`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("cost by scenario: %w", err)
	}
	defer rows.Close()

	var out []cost.ScenarioSummary
	for rows.Next() {
		var sc cost.ScenarioSummary
		if err := rows.Scan(&sc.Scenario, &sc.TotalCostAUD, &sc.TotalTokens, &sc.RunCount, &sc.AvgComposite); err != nil {
			return nil, fmt.Errorf("scan scenario summary: %w", err)
		}
		out = append(out, sc)
	}
	return orEmpty(out), rows.Err()
}

// CostDaily returns spend per day for the last N days.
func (s *Store) CostDaily(ctx context.Context, days int) ([]cost.DailyCost, error) {
	if days <= 0 {
		days = 30
	}
	const q = `SELECT to_char(created_at::date, 'YYYY-MM-DD'),
			COALESCE(SUM(aud_cost), 0),
			COALESCE(SUM(tokens_total), 0),
			COUNT(*)
		FROM runs
		WHERE status = 'succeeded'
		  AND created_at >= now() - make_interval(days => $1)
		GROUP BY created_at::date
		ORDER BY created_at::date`
	rows, err := s.pool.Query(ctx, q, days)
	if err != nil {
		return nil, fmt.Errorf("cost daily: %w", err)
	}
	defer rows.Close()

	var out []cost.DailyCost
	for rows.Next() {
		var d cost.DailyCost
		if err := rows.Scan(&d.Date, &d.CostAUD, &d.Tokens, &d.RunCount); err != nil {
			return nil, fmt.Errorf("scan daily cost: %w", err)
		}
		out = append(out, d)
	}
	return orEmpty(out), rows.Err()
}
