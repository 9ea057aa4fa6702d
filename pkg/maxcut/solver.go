// Package maxcut implements the recursive divide-and-conquer max-cut
// engine: subgraphs small enough for the optimizer are solved directly,
// larger ones are partitioned into communities, solved post-order, and
// stitched back together by a penalty-driven merge.
package maxcut

import (
	"context"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
	"github.com/dd0wney/cluso-maxcut/pkg/logging"
	"github.com/dd0wney/cluso-maxcut/pkg/merge"
	"github.com/dd0wney/cluso-maxcut/pkg/metrics"
	"github.com/dd0wney/cluso-maxcut/pkg/partition"
	"github.com/dd0wney/cluso-maxcut/pkg/solver"
)

// RootKey names the top of the decomposition tree.
const RootKey = "Global"

// Options configures a Solver. Zero-value fields get defaults.
type Options[V constraints.Ordered] struct {
	// Optimizer solves leaf subgraphs. Defaults to solver.NewAnneal.
	Optimizer solver.Optimizer[V]
	// MergeOptimizer solves penalty-weighted merger graphs. Defaults to
	// solver.NewAnneal.
	MergeOptimizer solver.Optimizer[string]
	// Detector picks communities during partitioning. Defaults to greedy
	// modularity.
	Detector partition.Detector[V]

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Solver runs the divide-and-conquer decomposition.
type Solver[V constraints.Ordered] struct {
	cfg      Config
	opt      solver.Optimizer[V]
	mergeOpt solver.Optimizer[string]
	part     *partition.Partitioner[V]
	logger   logging.Logger
	metrics  *metrics.Registry

	// Deepest decomposition level seen in the current run. The recursion
	// runs on a single goroutine, so no locking.
	maxDepth int
}

// New creates a Solver with the given configuration.
func New[V constraints.Ordered](cfg Config, opts Options[V]) (*Solver[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Solver[V]{
		cfg:      cfg,
		opt:      opts.Optimizer,
		mergeOpt: opts.MergeOptimizer,
		part:     partition.NewPartitioner[V](opts.Detector),
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if s.opt == nil {
		anneal := solver.NewAnneal[V]()
		anneal.Layers = cfg.Layers
		s.opt = anneal
	}
	if s.mergeOpt == nil {
		anneal := solver.NewAnneal[string]()
		anneal.Layers = cfg.Layers
		s.mergeOpt = anneal
	}
	if s.logger == nil {
		s.logger = logging.DefaultLogger()
	}
	if s.metrics == nil {
		s.metrics = metrics.DefaultRegistry()
	}
	return s, nil
}

// Result is the outcome of a full solve.
type Result[V constraints.Ordered] struct {
	RunID    string
	Bits     string
	Coloring graph.Coloring[V]
	CutValue float64
	Duration time.Duration
}

// Solve runs the full divide-and-conquer pipeline on g in-process and
// returns the final coloring with its cut value. Colors are also recorded
// on g.
func (s *Solver[V]) Solve(ctx context.Context, g *graph.Graph[V]) (*Result[V], error) {
	runID := uuid.NewString()
	logger := s.logger.With(logging.RunID(runID))
	start := time.Now()
	s.maxDepth = 0
	s.metrics.RecursionDepth.Set(0)

	logger.Info("solve started",
		logging.SubgraphKey(RootKey),
		logging.Vertices(g.NumVertices()),
		logging.Edges(g.NumEdges()),
	)

	bits, err := s.solve(ctx, logger, g, RootKey, g, 0)
	if err != nil {
		logger.Error("solve failed", logging.Error(err))
		return nil, err
	}

	coloring, err := g.Snapshot()
	if err != nil {
		return nil, err
	}
	cut, err := g.CutValue()
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.GlobalCutValue.Set(cut)
	s.metrics.SolveDuration.Observe(elapsed.Seconds())
	logger.Info("solve complete",
		logging.SubgraphKey(RootKey),
		logging.CutValue(cut),
		logging.Latency(elapsed),
	)

	return &Result[V]{
		RunID:    runID,
		Bits:     bits,
		Coloring: coloring,
		CutValue: cut,
		Duration: elapsed,
	}, nil
}

// SubgraphSolution solves one node of the decomposition tree and returns
// the canonical bit string over g's sorted vertices. Colors are recorded
// on g and on the global graph.
func (s *Solver[V]) SubgraphSolution(ctx context.Context, g *graph.Graph[V], key string, global *graph.Graph[V]) (string, error) {
	return s.solve(ctx, s.logger, g, key, global, 0)
}

func (s *Solver[V]) solve(ctx context.Context, logger logging.Logger, g *graph.Graph[V], key string, global *graph.Graph[V], depth int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.observeDepth(depth)

	if g.NumVertices() <= s.cfg.VertexLimit {
		return s.solveLeaf(ctx, logger, g, key, global)
	}
	return s.solveBranch(ctx, logger, g, key, global, depth)
}

// solveLeaf hands a small subgraph to the optimizer in one piece. A
// degenerate subgraph (single vertex or no edges) has cut value zero for
// every coloring, so it gets the constant all-zero coloring and the
// optimizer is not invoked.
func (s *Solver[V]) solveLeaf(ctx context.Context, logger logging.Logger, g *graph.Graph[V], key string, global *graph.Graph[V]) (string, error) {
	vertices := g.Vertices()

	if g.NumVertices() <= 1 || g.NumEdges() == 0 {
		bits := strings.Repeat("0", len(vertices))
		if err := s.record(g, global, vertices, bits); err != nil {
			return "", err
		}
		s.metrics.RecordSubgraphSolved("degenerate")
		logger.Debug("degenerate leaf",
			logging.SubgraphKey(key),
			logging.Vertices(len(vertices)),
		)
		return bits, nil
	}

	start := time.Now()
	bits, err := s.opt.Solve(ctx, g, s.leafSeed(key), s.cfg.Shots)
	if err != nil {
		s.metrics.RecordOptimizerRun("leaf", "error", time.Since(start))
		return "", err
	}
	s.metrics.RecordOptimizerRun("leaf", "success", time.Since(start))

	if err := s.record(g, global, vertices, bits); err != nil {
		return "", err
	}
	s.metrics.RecordSubgraphSolved("leaf")
	logger.Debug("leaf solved",
		logging.SubgraphKey(key),
		logging.Vertices(len(vertices)),
	)
	return bits, nil
}

// solveBranch partitions the subgraph, solves each part post-order, then
// merges: pre-merge cut from the unaltered child colorings, penalties on
// the merger graph, flip decision, flips applied.
func (s *Solver[V]) solveBranch(ctx context.Context, logger logging.Logger, g *graph.Graph[V], key string, global *graph.Graph[V], depth int) (string, error) {
	maxParts := s.cfg.SubgraphLimit
	if maxParts > g.NumVertices() {
		maxParts = g.NumVertices()
	}

	part, err := s.part.Partition(g, maxParts, key)
	if err != nil {
		return "", err
	}
	s.metrics.PartitionsTotal.Inc()
	logger.Debug("partitioned",
		logging.SubgraphKey(key),
		logging.Count(part.Len()),
		logging.Depth(depth),
	)

	results := make(map[string]string, part.Len())
	for _, childKey := range part.Keys() {
		sub, _ := part.Subgraph(childKey)
		bits, err := s.solve(ctx, logger, sub, childKey, global, depth+1)
		if err != nil {
			return "", err
		}
		results[childKey] = bits
	}

	if err := merge.WriteColors(g, part, results); err != nil {
		return "", err
	}
	preCut, err := g.CutValue()
	if err != nil {
		return "", err
	}
	logger.Info("pre-merge cut",
		logging.SubgraphKey(key),
		logging.CutValue(preCut),
	)

	border, err := merge.Border(g, part)
	if err != nil {
		return "", err
	}
	merger, err := merge.MergerGraph(border, part)
	if err != nil {
		return "", err
	}

	decision, err := merge.Decide(ctx, g, part, merger, s.mergeOpt, s.cfg.MergeSeed, s.cfg.Shots)
	if err != nil {
		return "", err
	}
	s.metrics.RecordMerge(decision.Trivial, decision.Fallback, decision.FlipCount(), border.NumEdges())
	if decision.Fallback {
		logger.Warn("merge optimizer failed, keeping child colorings",
			logging.SubgraphKey(key),
			logging.Error(decision.Reason),
		)
	}

	_, bits, err := merge.ApplyFlips(g, part, decision)
	if err != nil {
		return "", err
	}
	postCut, err := g.CutValue()
	if err != nil {
		return "", err
	}
	logger.Info("post-merge cut",
		logging.SubgraphKey(key),
		logging.CutValue(postCut),
		logging.Count(decision.FlipCount()),
	)

	if err := s.propagate(g, global); err != nil {
		return "", err
	}
	s.metrics.RecordSubgraphSolved("branch")
	return bits, nil
}

// record parses a leaf bit string and writes the colors onto the subgraph
// and the global graph.
func (s *Solver[V]) record(g, global *graph.Graph[V], vertices []V, bits string) error {
	coloring, err := graph.ParseColoring(vertices, bits)
	if err != nil {
		return err
	}
	if err := g.ApplyColoring(coloring); err != nil {
		return err
	}
	if global != g {
		return global.ApplyColoring(coloring)
	}
	return nil
}

func (s *Solver[V]) propagate(g, global *graph.Graph[V]) error {
	if global == g {
		return nil
	}
	coloring, err := g.Snapshot()
	if err != nil {
		return err
	}
	return global.ApplyColoring(coloring)
}

// leafSeed derives a deterministic optimizer seed from the configured seed
// and the subgraph key, so every subgraph gets its own reproducible stream.
func (s *Solver[V]) leafSeed(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return s.cfg.Seed ^ int64(h.Sum64())
}

func (s *Solver[V]) observeDepth(depth int) {
	if depth > s.maxDepth {
		s.maxDepth = depth
		s.metrics.RecursionDepth.Set(float64(depth))
	}
}
