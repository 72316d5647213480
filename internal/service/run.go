package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mozeyada/cybercqbench/internal/adapter/otel"
	"github.com/mozeyada/cybercqbench/internal/adapter/ws"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
	"github.com/mozeyada/cybercqbench/internal/port/database"
	"github.com/mozeyada/cybercqbench/internal/port/messagequeue"
)

// maxParallelInserts bounds concurrent run inserts for one submission.
const maxParallelInserts = 4

// reportInvalidator drops cached analytics reports after run mutations.
type reportInvalidator interface {
	Invalidate(ctx context.Context)
}

// RunService manages experiment runs: batch submission for external workers
// and application of the results they report back.
type RunService struct {
	store       database.Store
	queue       messagequeue.Queue
	hub         *ws.Hub
	invalidator reportInvalidator
	metrics     *otel.Metrics
}

// NewRunService creates a run service. queue, hub, invalidator and metrics
// may be nil in tests.
func NewRunService(store database.Store, queue messagequeue.Queue, hub *ws.Hub, inv reportInvalidator, m *otel.Metrics) *RunService {
	return &RunService{store: store, queue: queue, hub: hub, invalidator: inv, metrics: m}
}

// Submit creates one queued run per requested model against the prompt and
// announces them to workers. Inserts run in parallel with bounded
// concurrency; output order follows the request's model order.
func (s *RunService) Submit(ctx context.Context, req *run.SubmitRequest) ([]run.Run, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetPrompt(ctx, req.PromptID)
	if err != nil {
		return nil, fmt.Errorf("submit runs: %w", err)
	}

	now := time.Now().UTC()
	runs := make([]run.Run, len(req.Models))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelInserts)
	for i, model := range req.Models {
		g.Go(func() error {
			r := run.Run{
				ID:        uuid.New().String(),
				PromptID:  p.ID,
				Model:     model,
				Scenario:  p.Scenario,
				LengthBin: p.LengthBin,
				Status:    run.StatusQueued,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.store.CreateRun(gctx, &r); err != nil {
				return err
			}
			runs[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("submit runs: %w", err)
	}

	for i := range runs {
		s.announce(ctx, &runs[i])
	}
	if s.metrics != nil {
		s.metrics.RunsSubmitted.Add(ctx, int64(len(runs)))
	}

	slog.Info("runs submitted", "prompt_id", p.ID, "scenario", p.Scenario, "count", len(runs))
	return runs, nil
}

// announce publishes a queued run for workers and notifies dashboard clients.
func (s *RunService) announce(ctx context.Context, r *run.Run) {
	if s.queue != nil {
		data, err := json.Marshal(r)
		if err == nil {
			err = s.queue.Publish(ctx, messagequeue.SubjectRunCreated, data)
		}
		if err != nil {
			slog.Error("run announce failed", "run_id", r.ID, "error", err)
		}
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventRunCreated, r)
	}
}

// Get retrieves a run by ID.
func (s *RunService) Get(ctx context.Context, id string) (*run.Run, error) {
	return s.store.GetRun(ctx, id)
}

// List returns runs matching the filter.
func (s *RunService) List(ctx context.Context, f run.ListFilter) ([]run.Run, error) {
	return s.store.ListRuns(ctx, f)
}

// Delete removes a run.
func (s *RunService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteRun(ctx, id); err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	return nil
}

// ApplyResult records a worker-reported outcome, invalidates cached analytics
// and pushes live updates to dashboard clients.
func (s *RunService) ApplyResult(ctx context.Context, res *run.Result) (*run.Run, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	r, err := s.store.ApplyRunResult(ctx, res)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		switch r.Status {
		case run.StatusSucceeded:
			s.metrics.ResultsSucceeded.Add(ctx, 1)
			s.metrics.RunCost.Record(ctx, r.Economics.AUDCost)
		case run.StatusFailed:
			s.metrics.ResultsFailed.Add(ctx, 1)
		}
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventRunUpdated, r)
		s.hub.BroadcastEvent(ctx, ws.EventAnalyticsRefreshed, ws.AnalyticsRefreshedEvent{Reason: "result_applied"})
	}

	slog.Info("run result applied",
		"run_id", r.ID,
		"status", r.Status,
		"composite", r.Scores.Composite,
		"aud_cost", r.Economics.AUDCost,
	)
	return r, nil
}

// StartResultSubscriber consumes worker results from the queue until the
// returned stop function is called.
func (s *RunService) StartResultSubscriber(ctx context.Context) (func(), error) {
	return s.queue.Subscribe(ctx, messagequeue.SubjectRunResult, func(_ string, data []byte) error {
		var res run.Result
		if err := json.Unmarshal(data, &res); err != nil {
			// Malformed payloads are dropped, not redelivered.
			slog.Error("malformed run result", "error", err)
			return nil
		}
		_, err := s.ApplyResult(ctx, &res)
		return err
	})
}
