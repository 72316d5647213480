package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
)

const runColumns = `id, prompt_id, model, scenario, length_bin, status,
	composite_score, rubric, judge, aud_cost, tokens_in, tokens_out, tokens_total,
	evaluation_failed, error, created_at, updated_at, completed_at`

// CreateRun inserts a new run.
func (s *Store) CreateRun(ctx context.Context, r *run.Run) error {
	rubric := r.Scores.Rubric
	if rubric == nil {
		rubric = json.RawMessage(`{}`)
	}
	const q = `INSERT INTO runs
		(id, prompt_id, model, scenario, length_bin, status,
		 composite_score, rubric, judge, aud_cost, tokens_in, tokens_out, tokens_total,
		 evaluation_failed, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := s.pool.Exec(ctx, q,
		r.ID, r.PromptID, r.Model, r.Scenario, string(r.LengthBin), string(r.Status),
		r.Scores.Composite, rubric, r.Scores.Judge,
		r.Economics.AUDCost, r.Tokens.Input, r.Tokens.Output, r.Tokens.Total,
		r.EvaluationFailed, r.Error, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*run.Run, error) {
	q := `SELECT ` + runColumns + ` FROM runs WHERE id = $1`
	r, err := scanRun(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFoundWrap(err, "get run %s", id)
	}
	return &r, nil
}

// ListRuns returns runs matching the filter, newest first. An empty models
// slice means no model restriction.
func (s *Store) ListRuns(ctx context.Context, f run.ListFilter) ([]run.Run, error) {
	q := `SELECT ` + runColumns + ` FROM runs
		WHERE ($1 = '' OR scenario = $1)
		  AND ($2::text[] IS NULL OR model = ANY($2))
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4`
	limit := f.Limit
	if limit <= 0 {
		limit = 1000
	}
	var models []string
	if len(f.Models) > 0 {
		models = f.Models
	}
	rows, err := s.pool.Query(ctx, q, f.Scenario, models, string(f.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []run.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return orEmpty(runs), rows.Err()
}

// UpdateRunStatus transitions a run's lifecycle state.
func (s *Store) UpdateRunStatus(ctx context.Context, id string, status run.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status))
	return execExpectOne(tag, err, "update run status %s", id)
}

// ApplyRunResult records a worker-reported terminal outcome and returns the
// updated run.
func (s *Store) ApplyRunResult(ctx context.Context, res *run.Result) (*run.Run, error) {
	rubric := res.Scores.Rubric
	if rubric == nil {
		rubric = json.RawMessage(`{}`)
	}
	now := time.Now().UTC()
	q := `UPDATE runs SET
			status = $2, composite_score = $3, rubric = $4, judge = $5,
			aud_cost = $6, tokens_in = $7, tokens_out = $8, tokens_total = $9,
			evaluation_failed = $10, error = $11, updated_at = $12, completed_at = $12
		WHERE id = $1
		RETURNING ` + runColumns
	r, err := scanRun(s.pool.QueryRow(ctx, q,
		res.RunID, string(res.Status),
		res.Scores.Composite, rubric, res.Scores.Judge,
		res.Economics.AUDCost, res.Tokens.Input, res.Tokens.Output, res.Tokens.Total,
		res.EvaluationFailed, res.Error, now,
	))
	if err != nil {
		return nil, notFoundWrap(err, "apply result for run %s", res.RunID)
	}
	return &r, nil
}

// DeleteRun deletes a run.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM runs WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete run %s", id)
}

// scanRun scans a single run row.
func scanRun(row scannable) (run.Run, error) {
	var r run.Run
	var bin, status string
	err := row.Scan(
		&r.ID, &r.PromptID, &r.Model, &r.Scenario, &bin, &status,
		&r.Scores.Composite, &r.Scores.Rubric, &r.Scores.Judge,
		&r.Economics.AUDCost, &r.Tokens.Input, &r.Tokens.Output, &r.Tokens.Total,
		&r.EvaluationFailed, &r.Error, &r.CreatedAt, &r.UpdatedAt, &r.CompletedAt,
	)
	r.LengthBin = prompt.LengthBin(bin)
	r.Status = run.Status(status)
	return r, err
}
