package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
	"github.com/dd0wney/cluso-maxcut/pkg/logging"
	"github.com/dd0wney/cluso-maxcut/pkg/maxcut"
	"github.com/dd0wney/cluso-maxcut/pkg/merge"
	"github.com/dd0wney/cluso-maxcut/pkg/metrics"
	"github.com/dd0wney/cluso-maxcut/pkg/partition"
	"github.com/dd0wney/cluso-maxcut/pkg/solver"
)

// Coordinator is the rank-0 role of a distributed run. It partitions the
// global graph, scatters subgraph assignments, solves its own share,
// gathers keyed results and runs the final merge.
type Coordinator struct {
	cfg       maxcut.Config
	graph     *graph.Graph[uint64]
	transport Transport
	workers   int

	local    *maxcut.Solver[uint64]
	part     *partition.Partitioner[uint64]
	mergeOpt solver.Optimizer[string]
	logger   logging.Logger
	metrics  *metrics.Registry

	result *maxcut.Result[uint64]
}

// NewCoordinator creates the coordinator for a run over the given
// transport with workers remote peers (ranks 1..workers).
func NewCoordinator(cfg maxcut.Config, g *graph.Graph[uint64], tr Transport, workers int, opts maxcut.Options[uint64]) (*Coordinator, error) {
	if workers < 1 {
		return nil, ErrNoWorkers
	}
	local, err := maxcut.New(cfg, opts)
	if err != nil {
		return nil, err
	}
	c := &Coordinator{
		cfg:       cfg,
		graph:     g,
		transport: tr,
		workers:   workers,
		local:     local,
		part:      partition.NewPartitioner[uint64](opts.Detector),
		mergeOpt:  opts.MergeOptimizer,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
	if c.mergeOpt == nil {
		anneal := solver.NewAnneal[string]()
		anneal.Layers = cfg.Layers
		c.mergeOpt = anneal
	}
	if c.logger == nil {
		c.logger = logging.DefaultLogger()
	}
	if c.metrics == nil {
		c.metrics = metrics.DefaultRegistry()
	}
	return c, nil
}

// Result returns the outcome of the last completed Run.
func (c *Coordinator) Result() *maxcut.Result[uint64] {
	return c.result
}

// Run executes one distributed solve end to end.
func (c *Coordinator) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := c.logger.With(logging.RunID(runID), logging.Component("coordinator"))
	start := time.Now()

	if err := c.greetWorkers(logger); err != nil {
		return err
	}

	maxParts := c.cfg.SubgraphLimit
	if maxParts > c.graph.NumVertices() {
		maxParts = c.graph.NumVertices()
	}
	part, err := c.part.Partition(c.graph, maxParts, maxcut.RootKey)
	if err != nil {
		return err
	}
	c.metrics.PartitionsTotal.Inc()

	slots := RoundRobin(part.Keys(), c.workers+1)
	if err := c.scatter(logger, runID, part, slots); err != nil {
		return err
	}

	results := make(map[string]string, part.Len())
	if err := c.solveOwnShare(ctx, slots[0], part, results); err != nil {
		return err
	}
	if err := c.gather(logger, runID, results); err != nil {
		return err
	}

	if err := c.finalMerge(ctx, logger, part, results); err != nil {
		return err
	}
	c.shutdownWorkers(logger, runID)

	logger.Info("distributed run complete",
		logging.CutValue(c.result.CutValue),
		logging.Latency(time.Since(start)),
	)
	return nil
}

// greetWorkers waits for every worker's hello before scattering work.
func (c *Coordinator) greetWorkers(logger logging.Logger) error {
	for w := 1; w <= c.workers; w++ {
		payload, err := c.transport.Recv(w, TagControl)
		if err != nil {
			return err
		}
		msg, err := DecodeMessage(payload)
		if err != nil {
			return err
		}
		if msg.Type != MsgHello {
			return opError("greetWorkers", w, ErrBadMessage)
		}
		var hello HelloMessage
		if err := msg.Decode(&hello); err != nil {
			return opError("greetWorkers", w, ErrBadMessage)
		}
		c.metrics.RecordMessage("received", "hello", len(payload))
		logger.Debug("worker attached", logging.WorkerID(hello.WorkerID))
	}
	c.metrics.WorkersConnected.Set(float64(c.workers))
	return nil
}

// scatter ships each worker its share of the partition. Slot 0 stays with
// the coordinator.
func (c *Coordinator) scatter(logger logging.Logger, runID string, part *partition.Partition[uint64], slots [][]string) error {
	for w := 1; w <= c.workers; w++ {
		batch := AssignmentBatch{Assignments: make([]Assignment, 0, len(slots[w]))}
		for _, key := range slots[w] {
			sub, ok := part.Subgraph(key)
			if !ok {
				return opError("scatter", w, fmt.Errorf("%w: %s", merge.ErrMissingResult, key))
			}
			batch.Assignments = append(batch.Assignments, Assignment{
				Key:   key,
				Graph: FromGraph(sub),
			})
		}
		msg, err := NewMessage(MsgAssignment, runID, batch)
		if err != nil {
			return opError("scatter", w, err)
		}
		payload, err := msg.Encode()
		if err != nil {
			return opError("scatter", w, err)
		}
		if err := c.transport.Send(payload, w, TagWork); err != nil {
			return err
		}
		c.metrics.RecordMessage("sent", "assignment", len(payload))
		logger.Debug("share scattered",
			logging.WorkerID(w),
			logging.Count(len(batch.Assignments)),
		)
	}
	return nil
}

func (c *Coordinator) solveOwnShare(ctx context.Context, keys []string, part *partition.Partition[uint64], results map[string]string) error {
	for _, key := range keys {
		sub, _ := part.Subgraph(key)
		bits, err := c.local.SubgraphSolution(ctx, sub, key, c.graph)
		if err != nil {
			return err
		}
		results[key] = bits
	}
	return nil
}

// gather collects one result batch per worker. Results are keyed, so the
// arrival order across workers does not matter.
func (c *Coordinator) gather(logger logging.Logger, runID string, results map[string]string) error {
	for w := 1; w <= c.workers; w++ {
		start := time.Now()
		payload, err := c.transport.Recv(w, TagWork)
		if err != nil {
			return err
		}
		msg, err := DecodeMessage(payload)
		if err != nil {
			return err
		}
		if msg.RunID != runID {
			return opError("gather", w, ErrRunMismatch)
		}
		switch msg.Type {
		case MsgResult:
			var batch ResultBatch
			if err := msg.Decode(&batch); err != nil {
				return opError("gather", w, ErrBadMessage)
			}
			for key, bits := range batch.Bits {
				results[key] = bits
			}
			c.metrics.RecordMessage("received", "result", len(payload))
			c.metrics.TaskDuration.WithLabelValues(fmt.Sprintf("%d", w)).Observe(time.Since(start).Seconds())
			logger.Debug("results received",
				logging.WorkerID(w),
				logging.Count(len(batch.Bits)),
			)
		case MsgError:
			var report ErrorMessage
			if err := msg.Decode(&report); err != nil {
				return opError("gather", w, ErrBadMessage)
			}
			return opError("gather", w, fmt.Errorf("worker failed: %s", report.Message))
		default:
			return opError("gather", w, ErrBadMessage)
		}
	}
	return nil
}

// finalMerge stitches the gathered subgraph solutions together exactly the
// way an in-process branch does: unaltered colors, penalties, flip
// decision, flips.
func (c *Coordinator) finalMerge(ctx context.Context, logger logging.Logger, part *partition.Partition[uint64], results map[string]string) error {
	if err := merge.WriteColors(c.graph, part, results); err != nil {
		return err
	}
	preCut, err := c.graph.CutValue()
	if err != nil {
		return err
	}
	logger.Info("pre-merge cut", logging.CutValue(preCut))

	border, err := merge.Border(c.graph, part)
	if err != nil {
		return err
	}
	merger, err := merge.MergerGraph(border, part)
	if err != nil {
		return err
	}
	decision, err := merge.Decide(ctx, c.graph, part, merger, c.mergeOpt, c.cfg.MergeSeed, c.cfg.Shots)
	if err != nil {
		return err
	}
	c.metrics.RecordMerge(decision.Trivial, decision.Fallback, decision.FlipCount(), border.NumEdges())
	if decision.Fallback {
		logger.Warn("merge optimizer failed, keeping gathered colorings",
			logging.Error(decision.Reason),
		)
	}

	coloring, bits, err := merge.ApplyFlips(c.graph, part, decision)
	if err != nil {
		return err
	}
	cut, err := c.graph.CutValue()
	if err != nil {
		return err
	}
	c.metrics.GlobalCutValue.Set(cut)
	logger.Info("post-merge cut", logging.CutValue(cut))

	c.result = &maxcut.Result[uint64]{
		Bits:     bits,
		Coloring: coloring,
		CutValue: cut,
	}
	return nil
}

// shutdownWorkers is best-effort: the run already succeeded.
func (c *Coordinator) shutdownWorkers(logger logging.Logger, runID string) {
	msg, err := NewMessage(MsgShutdown, runID, nil)
	if err != nil {
		return
	}
	payload, err := msg.Encode()
	if err != nil {
		return
	}
	for w := 1; w <= c.workers; w++ {
		if err := c.transport.Send(payload, w, TagWork); err != nil {
			c.metrics.TransportErrorsTotal.WithLabelValues("send").Inc()
			logger.Warn("shutdown not delivered", logging.WorkerID(w), logging.Error(err))
			continue
		}
		c.metrics.RecordMessage("sent", "shutdown", len(payload))
	}
	c.metrics.WorkersConnected.Set(0)
}
