package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Prompts ---

// CreatePrompt inserts a new prompt.
func (s *Store) CreatePrompt(ctx context.Context, p *prompt.Prompt) error {
	const q = `INSERT INTO prompts (id, scenario, length_bin, text, source, token_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.pool.Exec(ctx, q,
		p.ID, p.Scenario, string(p.LengthBin), p.Text, p.Source, p.TokenCount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create prompt: %w", err)
	}
	return nil
}

// GetPrompt retrieves a prompt by ID.
func (s *Store) GetPrompt(ctx context.Context, id string) (*prompt.Prompt, error) {
	const q = `SELECT id, scenario, length_bin, text, source, token_count, created_at
		FROM prompts WHERE id = $1`
	p, err := scanPrompt(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFoundWrap(err, "get prompt %s", id)
	}
	return &p, nil
}

// ListPrompts returns prompts matching the filter, newest first.
func (s *Store) ListPrompts(ctx context.Context, f prompt.ListFilter) ([]prompt.Prompt, error) {
	const q = `SELECT id, scenario, length_bin, text, source, token_count, created_at
		FROM prompts
		WHERE ($1 = '' OR scenario = $1)
		  AND ($2 = '' OR length_bin = $2)
		ORDER BY created_at DESC
		LIMIT $3`
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.pool.Query(ctx, q, f.Scenario, string(f.LengthBin), limit)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []prompt.Prompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	return orEmpty(prompts), rows.Err()
}

// DeletePrompt deletes a prompt and its runs (ON DELETE CASCADE).
func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM prompts WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete prompt %s", id)
}

// scanPrompt scans a single prompt row.
func scanPrompt(row scannable) (prompt.Prompt, error) {
	var p prompt.Prompt
	var bin string
	err := row.Scan(&p.ID, &p.Scenario, &bin, &p.Text, &p.Source, &p.TokenCount, &p.CreatedAt)
	p.LengthBin = prompt.LengthBin(bin)
	return p, err
}
