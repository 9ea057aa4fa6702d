package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the solver and the work distributor
type Registry struct {
	// Solver Metrics
	OptimizerInvocationsTotal *prometheus.CounterVec
	OptimizerDuration         *prometheus.HistogramVec
	PartitionsTotal           prometheus.Counter
	SubgraphsSolvedTotal      *prometheus.CounterVec
	RecursionDepth            prometheus.Gauge
	GlobalCutValue            prometheus.Gauge
	BaselineCutValue          *prometheus.GaugeVec
	SolveDuration             prometheus.Histogram

	// Merge Metrics
	MergesTotal        prometheus.Counter
	MergeFallbackTotal prometheus.Counter
	MergeTrivialTotal  prometheus.Counter
	MergeFlipsTotal    prometheus.Counter
	BorderEdges        *prometheus.HistogramVec

	// Dispatch Metrics
	MessagesSentTotal     *prometheus.CounterVec
	MessagesReceivedTotal *prometheus.CounterVec
	MessageBytesTotal     *prometheus.CounterVec
	WorkersConnected      prometheus.Gauge
	TaskDuration          *prometheus.HistogramVec
	TransportErrorsTotal  *prometheus.CounterVec

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initSolverMetrics()
	r.initDispatchMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordOptimizerRun records one optimizer invocation with its duration.
// Stage is "leaf" or "merge".
func (r *Registry) RecordOptimizerRun(stage, status string, duration time.Duration) {
	r.OptimizerInvocationsTotal.WithLabelValues(stage, status).Inc()
	r.OptimizerDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordSubgraphSolved records a completed subgraph solve. Kind is "leaf",
// "degenerate" or "branch".
func (r *Registry) RecordSubgraphSolved(kind string) {
	r.SubgraphsSolvedTotal.WithLabelValues(kind).Inc()
}

// RecordMerge records a merge decision outcome.
func (r *Registry) RecordMerge(trivial, fallback bool, flips, borderEdges int) {
	r.MergesTotal.Inc()
	if trivial {
		r.MergeTrivialTotal.Inc()
	}
	if fallback {
		r.MergeFallbackTotal.Inc()
	}
	r.MergeFlipsTotal.Add(float64(flips))
	r.BorderEdges.WithLabelValues("merge").Observe(float64(borderEdges))
}

// RecordMessage records one message through the transport.
func (r *Registry) RecordMessage(direction, msgType string, bytes int) {
	switch direction {
	case "sent":
		r.MessagesSentTotal.WithLabelValues(msgType).Inc()
	case "received":
		r.MessagesReceivedTotal.WithLabelValues(msgType).Inc()
	}
	r.MessageBytesTotal.WithLabelValues(direction).Add(float64(bytes))
}
