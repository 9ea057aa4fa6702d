package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSolverMetrics() {
	r.OptimizerInvocationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "maxcut_optimizer_invocations_total",
			Help: "Total number of optimizer invocations",
		},
		[]string{"stage", "status"}, // stage: leaf, merge; status: success, error
	)

	r.OptimizerDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maxcut_optimizer_duration_seconds",
			Help:    "Duration of optimizer invocations in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"stage"},
	)

	r.PartitionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "maxcut_partitions_total",
			Help: "Total number of graph partitioning operations",
		},
	)

	r.SubgraphsSolvedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "maxcut_subgraphs_solved_total",
			Help: "Total number of subgraphs solved",
		},
		[]string{"kind"}, // leaf, degenerate, branch
	)

	r.RecursionDepth = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "maxcut_recursion_depth",
			Help: "Depth of the deepest decomposition level reached",
		},
	)

	r.GlobalCutValue = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "maxcut_global_cut_value",
			Help: "Cut value of the most recent global solution",
		},
	)

	r.BaselineCutValue = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "maxcut_baseline_cut_value",
			Help: "Cut value statistics of the classical baseline",
		},
		[]string{"stat"}, // min, max, mean
	)

	r.SolveDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "maxcut_solve_duration_seconds",
			Help:    "End-to-end duration of a full solve in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 5.0, 30.0, 120.0, 600.0},
		},
	)

	r.MergesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "maxcut_merges_total",
			Help: "Total number of merge decisions",
		},
	)

	r.MergeFallbackTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "maxcut_merge_fallback_total",
			Help: "Merge decisions that fell back to no-flip after optimizer failure",
		},
	)

	r.MergeTrivialTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "maxcut_merge_trivial_total",
			Help: "Merge decisions short-circuited because every penalty was zero",
		},
	)

	r.MergeFlipsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "maxcut_merge_flips_total",
			Help: "Total number of subgraph color inversions applied by merges",
		},
	)

	r.BorderEdges = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maxcut_border_edges",
			Help:    "Number of border edges per merge",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
		[]string{"stage"},
	)
}
