package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "cybercqbench"

// Metrics holds all CyberCQBench metric instruments.
type Metrics struct {
	RunsSubmitted    metric.Int64Counter
	ResultsSucceeded metric.Int64Counter
	ResultsFailed    metric.Int64Counter
	RunCost          metric.Float64Histogram
	CacheHits        metric.Int64Counter
	CacheMisses      metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.RunsSubmitted, err = meter.Int64Counter("cybercq.runs.submitted",
		metric.WithDescription("Number of runs submitted"))
	if err != nil {
		return nil, err
	}

	m.ResultsSucceeded, err = meter.Int64Counter("cybercq.results.succeeded",
		metric.WithDescription("Number of succeeded run results applied"))
	if err != nil {
		return nil, err
	}

	m.ResultsFailed, err = meter.Int64Counter("cybercq.results.failed",
		metric.WithDescription("Number of failed run results applied"))
	if err != nil {
		return nil, err
	}

	m.RunCost, err = meter.Float64Histogram("cybercq.run.cost_aud",
		metric.WithDescription("Run cost in AUD"))
	if err != nil {
		return nil, err
	}

	m.CacheHits, err = meter.Int64Counter("cybercq.analytics.cache_hits",
		metric.WithDescription("Analytics report cache hits"))
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter("cybercq.analytics.cache_misses",
		metric.WithDescription("Analytics report cache misses"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
