package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mozeyada/cybercqbench/internal/adapter/otel"
	"github.com/mozeyada/cybercqbench/internal/domain/analytics"
	"github.com/mozeyada/cybercqbench/internal/domain/cost"
	"github.com/mozeyada/cybercqbench/internal/domain/run"
	"github.com/mozeyada/cybercqbench/internal/port/cache"
	"github.com/mozeyada/cybercqbench/internal/port/database"
)

// maxReportRuns caps how many runs one report aggregates over.
const maxReportRuns = 10000

// AnalyticsService serves aggregation reports and cost summaries. Reports are
// pure functions of the stored run set and the filter, so they are cached
// keyed on the normalized filter; any run mutation clears the cache
// (last-write-wins freshness, TTL as backstop).
type AnalyticsService struct {
	store   database.Store
	cache   cache.Cache
	ttl     time.Duration
	volume  float64
	metrics *otel.Metrics
}

// NewAnalyticsService creates an analytics service. cache and metrics may be
// nil in tests; volume <= 0 falls back to DefaultMonthlyVolume.
func NewAnalyticsService(store database.Store, c cache.Cache, ttl time.Duration, volume float64, m *otel.Metrics) *AnalyticsService {
	if volume <= 0 {
		volume = analytics.DefaultMonthlyVolume
	}
	return &AnalyticsService{store: store, cache: c, ttl: ttl, volume: volume, metrics: m}
}

// LengthBins computes (or serves from cache) the length-bin aggregation
// report for the given filter. volume <= 0 uses the configured default.
func (s *AnalyticsService) LengthBins(ctx context.Context, f analytics.Filter, volume float64) (*analytics.Report, error) {
	if volume <= 0 {
		volume = s.volume
	}
	key := reportCacheKey(f, volume)

	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var report analytics.Report
			if err := json.Unmarshal(data, &report); err == nil {
				if s.metrics != nil {
					s.metrics.CacheHits.Add(ctx, 1)
				}
				return &report, nil
			}
			// Corrupt entry: drop it and recompute.
			_ = s.cache.Delete(ctx, key)
		}
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.Add(ctx, 1)
	}

	runs, err := s.store.ListRuns(ctx, run.ListFilter{
		Scenario: f.Scenario,
		Models:   f.Models,
		Status:   run.StatusSucceeded,
		Limit:    maxReportRuns,
	})
	if err != nil {
		return nil, err
	}

	report := analytics.BuildReport(runs, f, volume)

	if s.cache != nil {
		if data, err := json.Marshal(&report); err == nil {
			_ = s.cache.Set(ctx, key, data, s.ttl)
		}
	}
	return &report, nil
}

// Invalidate drops all cached reports. Called after every run mutation.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		slog.Error("analytics cache clear failed", "error", err)
	}
}

// CostByModel returns aggregate cost per model.
func (s *AnalyticsService) CostByModel(ctx context.Context) ([]cost.ModelSummary, error) {
	return s.store.CostByModel(ctx)
}

// CostByScenario returns aggregate cost per scenario.
func (s *AnalyticsService) CostByScenario(ctx context.Context) ([]cost.ScenarioSummary, error) {
	return s.store.CostByScenario(ctx)
}

// CostDaily returns spend per day for the last N days.
func (s *AnalyticsService) CostDaily(ctx context.Context, days int) ([]cost.DailyCost, error) {
	return s.store.CostDaily(ctx, days)
}

// reportCacheKey builds a deterministic cache key: model order in the filter
// must not produce distinct entries for the same logical query.
func reportCacheKey(f analytics.Filter, volume float64) string {
	models := make([]string, len(f.Models))
	copy(models, f.Models)
	sort.Strings(models)

	var b strings.Builder
	b.WriteString("lengthbins|")
	b.WriteString(f.Scenario)
	b.WriteString("|")
	b.WriteString(strings.Join(models, ","))
	b.WriteString("|")
	b.WriteString(strconv.FormatFloat(volume, 'g', -1, 64))
	return b.String()
}
