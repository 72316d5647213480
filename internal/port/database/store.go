// Package database defines the persistence port for CyberCQBench.
package database

import (
	"context"

	"github.com/mozeyada/cybercqbench/internal/domain/cost"
	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
)

// Store is the persistence interface backing prompts, runs and cost
// aggregates. Implementations must wrap missing rows in domain.ErrNotFound.
type Store interface {
	// Prompts
	CreatePrompt(ctx context.Context, p *prompt.Prompt) error
	GetPrompt(ctx context.Context, id string) (*prompt.Prompt, error)
	ListPrompts(ctx context.Context, f prompt.ListFilter) ([]prompt.Prompt, error)
	DeletePrompt(ctx context.Context, id string) error

	// Runs
	CreateRun(ctx context.Context, r *run.Run) error
	GetRun(ctx context.Context, id string) (*run.Run, error)
	ListRuns(ctx context.Context, f run.ListFilter) ([]run.Run, error)
	UpdateRunStatus(ctx context.Context, id string, status run.Status) error
	ApplyRunResult(ctx context.Context, res *run.Result) (*run.Run, error)
	DeleteRun(ctx context.Context, id string) error

	// Cost aggregates (computed in SQL)
	CostByModel(ctx context.Context) ([]cost.ModelSummary, error)
	CostByScenario(ctx context.Context) ([]cost.ScenarioSummary, error)
	CostDaily(ctx context.Context, days int) ([]cost.DailyCost, error)
}
