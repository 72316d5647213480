// Package http provides the REST API adapter: handlers, routes and middleware.
package http

import (
	"context"

	"github.com/mozeyada/cybercqbench/internal/domain/analytics"
	"github.com/mozeyada/cybercqbench/internal/domain/cost"
	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
)

// PromptService is the prompt operations surface consumed by handlers.
type PromptService interface {
	Create(ctx context.Context, req *prompt.CreateRequest) (*prompt.Prompt, error)
	Get(ctx context.Context, id string) (*prompt.Prompt, error)
	List(ctx context.Context, f prompt.ListFilter) ([]prompt.Prompt, error)
	Delete(ctx context.Context, id string) error
}

// RunService is the run operations surface consumed by handlers.
type RunService interface {
	Submit(ctx context.Context, req *run.SubmitRequest) ([]run.Run, error)
	Get(ctx context.Context, id string) (*run.Run, error)
	List(ctx context.Context, f run.ListFilter) ([]run.Run, error)
	Delete(ctx context.Context, id string) error
	ApplyResult(ctx context.Context, res *run.Result) (*run.Run, error)
}

// AnalyticsService is the reporting surface consumed by handlers.
type AnalyticsService interface {
	LengthBins(ctx context.Context, f analytics.Filter, volume float64) (*analytics.Report, error)
	CostByModel(ctx context.Context) ([]cost.ModelSummary, error)
	CostByScenario(ctx context.Context) ([]cost.ScenarioSummary, error)
	CostDaily(ctx context.Context, days int) ([]cost.DailyCost, error)
}

// Handlers bundles the service dependencies for all HTTP handlers.
type Handlers struct {
	Prompts   PromptService
	Runs      RunService
	Analytics AnalyticsService
}
