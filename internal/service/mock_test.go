package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mozeyada/cybercqbench/internal/domain"
	"github.com/mozeyada/cybercqbench/internal/domain/cost"
	"github.com/mozeyada/cybercqbench/internal/domain/prompt"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
	"github.com/mozeyada/cybercqbench/internal/port/cache"
	"github.com/mozeyada/cybercqbench/internal/port/database"
	"github.com/mozeyada/cybercqbench/internal/port/messagequeue"
)

// mockStore is an in-memory database.Store with per-method error hooks.
type mockStore struct {
	mu      sync.Mutex
	prompts map[string]prompt.Prompt
	runs    map[string]run.Run
	order   []string // run insertion order, for deterministic listings

	createRunErr   error
	listRunsErr    error
	applyResultErr error
	listRunsCalls  int
}

var _ database.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		prompts: make(map[string]prompt.Prompt),
		runs:    make(map[string]run.Run),
	}
}

func (m *mockStore) CreatePrompt(_ context.Context, p *prompt.Prompt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts[p.ID] = *p
	return nil
}

func (m *mockStore) GetPrompt(_ context.Context, id string) (*prompt.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prompts[id]
	if !ok {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (m *mockStore) ListPrompts(_ context.Context, _ prompt.ListFilter) ([]prompt.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]prompt.Prompt, 0, len(m.prompts))
	for _, p := range m.prompts {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockStore) DeletePrompt(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prompts[id]; !ok {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	delete(m.prompts, id)
	return nil
}

func (m *mockStore) CreateRun(_ context.Context, r *run.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createRunErr != nil {
		return m.createRunErr
	}
	m.runs[r.ID] = *r
	m.order = append(m.order, r.ID)
	return nil
}

func (m *mockStore) GetRun(_ context.Context, id string) (*run.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	return &r, nil
}

func (m *mockStore) ListRuns(_ context.Context, f run.ListFilter) ([]run.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listRunsCalls++
	if m.listRunsErr != nil {
		return nil, m.listRunsErr
	}
	var out []run.Run
	for _, id := range m.order {
		r := m.runs[id]
		if f.Scenario != "" && r.Scenario != f.Scenario {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if len(f.Models) > 0 && !containsModel(f.Models, r.Model) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func containsModel(models []string, m string) bool {
	for _, v := range models {
		if v == m {
			return true
		}
	}
	return false
}

func (m *mockStore) UpdateRunStatus(_ context.Context, id string, status run.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	r.Status = status
	m.runs[id] = r
	return nil
}

func (m *mockStore) ApplyRunResult(_ context.Context, res *run.Result) (*run.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applyResultErr != nil {
		return nil, m.applyResultErr
	}
	r, ok := m.runs[res.RunID]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", res.RunID, domain.ErrNotFound)
	}
	now := time.Now().UTC()
	r.Status = res.Status
	r.Scores = res.Scores
	r.Economics = res.Economics
	r.Tokens = res.Tokens
	r.EvaluationFailed = res.EvaluationFailed
	r.Error = res.Error
	r.UpdatedAt = now
	r.CompletedAt = &now
	m.runs[res.RunID] = r
	return &r, nil
}

func (m *mockStore) DeleteRun(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[id]; !ok {
		return fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	delete(m.runs, id)
	return nil
}

func (m *mockStore) CostByModel(_ context.Context) ([]cost.ModelSummary, error) {
	return nil, nil
}

func (m *mockStore) CostByScenario(_ context.Context) ([]cost.ScenarioSummary, error) {
	return nil, nil
}

func (m *mockStore) CostDaily(_ context.Context, _ int) ([]cost.DailyCost, error) {
	return nil, nil
}

// mockQueue records published messages.
type mockQueue struct {
	mu        sync.Mutex
	published map[string][][]byte
}

var _ messagequeue.Queue = (*mockQueue)(nil)

func newMockQueue() *mockQueue {
	return &mockQueue{published: make(map[string][][]byte)}
}

func (q *mockQueue) Publish(_ context.Context, subject string, data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.published[subject] = append(q.published[subject], data)
	return nil
}

func (q *mockQueue) Subscribe(_ context.Context, _ string, _ messagequeue.Handler) (func(), error) {
	return func() {}, nil
}

func (q *mockQueue) Close() error { return nil }

func (q *mockQueue) count(subject string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.published[subject])
}

// mockCache is a plain map cache that counts Clear calls. TTL is ignored.
type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	clears int
}

var _ cache.Cache = (*mockCache)(nil)

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mockCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.clears++
	return nil
}

func (c *mockCache) Close() {}

func (c *mockCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
