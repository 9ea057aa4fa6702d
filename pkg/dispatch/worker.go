package dispatch

import (
	"context"
	"time"

	"github.com/dd0wney/cluso-maxcut/pkg/logging"
	"github.com/dd0wney/cluso-maxcut/pkg/maxcut"
	"github.com/dd0wney/cluso-maxcut/pkg/metrics"
)

// Version identifies the worker protocol revision in the hello handshake.
const Version = "1.0"

// Worker is a rank-1..n role: it announces itself, receives assignment
// batches, solves each subgraph sequentially and sends the keyed results
// back. There is no intra-worker concurrency; determinism comes from
// key-derived seeds, so the result is independent of how work was striped.
type Worker struct {
	rank      int
	transport Transport
	solver    *maxcut.Solver[uint64]
	logger    logging.Logger
	metrics   *metrics.Registry
}

// NewWorker creates a worker with the given rank.
func NewWorker(cfg maxcut.Config, tr Transport, rank int, opts maxcut.Options[uint64]) (*Worker, error) {
	s, err := maxcut.New(cfg, opts)
	if err != nil {
		return nil, err
	}
	w := &Worker{
		rank:      rank,
		transport: tr,
		solver:    s,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
	if w.logger == nil {
		w.logger = logging.DefaultLogger()
	}
	if w.metrics == nil {
		w.metrics = metrics.DefaultRegistry()
	}
	return w, nil
}

// Run serves assignment batches until the coordinator sends a shutdown.
func (w *Worker) Run(ctx context.Context) error {
	logger := w.logger.With(logging.WorkerID(w.rank), logging.Component("worker"))

	if err := w.hello(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := w.transport.Recv(0, TagWork)
		if err != nil {
			return err
		}
		msg, err := DecodeMessage(payload)
		if err != nil {
			return err
		}

		switch msg.Type {
		case MsgShutdown:
			logger.Info("shutdown received")
			return nil
		case MsgAssignment:
			w.metrics.RecordMessage("received", "assignment", len(payload))
			if err := w.serveBatch(ctx, logger, msg); err != nil {
				w.report(logger, msg.RunID, err)
				return err
			}
		default:
			return opError("Run", 0, ErrBadMessage)
		}
	}
}

func (w *Worker) hello() error {
	msg, err := NewMessage(MsgHello, "", HelloMessage{WorkerID: w.rank, Version: Version})
	if err != nil {
		return opError("hello", 0, err)
	}
	payload, err := msg.Encode()
	if err != nil {
		return opError("hello", 0, err)
	}
	if err := w.transport.Send(payload, 0, TagControl); err != nil {
		return err
	}
	w.metrics.RecordMessage("sent", "hello", len(payload))
	return nil
}

func (w *Worker) serveBatch(ctx context.Context, logger logging.Logger, msg *Message) error {
	var batch AssignmentBatch
	if err := msg.Decode(&batch); err != nil {
		return opError("serveBatch", 0, ErrBadMessage)
	}
	runLogger := logger.With(logging.RunID(msg.RunID))
	start := time.Now()

	result := ResultBatch{WorkerID: w.rank, Bits: make(map[string]string, len(batch.Assignments))}
	for _, a := range batch.Assignments {
		g, err := a.Graph.ToGraph()
		if err != nil {
			return err
		}
		bits, err := w.solver.SubgraphSolution(ctx, g, a.Key, g)
		if err != nil {
			return err
		}
		result.Bits[a.Key] = bits
		runLogger.Debug("subgraph solved",
			logging.SubgraphKey(a.Key),
			logging.Vertices(g.NumVertices()),
		)
	}

	reply, err := NewMessage(MsgResult, msg.RunID, result)
	if err != nil {
		return opError("serveBatch", 0, err)
	}
	payload, err := reply.Encode()
	if err != nil {
		return opError("serveBatch", 0, err)
	}
	if err := w.transport.Send(payload, 0, TagWork); err != nil {
		return err
	}
	w.metrics.RecordMessage("sent", "result", len(payload))
	runLogger.Info("share complete",
		logging.Count(len(result.Bits)),
		logging.Latency(time.Since(start)),
	)
	return nil
}

// report sends a fatal error to the coordinator before the worker exits.
func (w *Worker) report(logger logging.Logger, runID string, cause error) {
	msg, err := NewMessage(MsgError, runID, ErrorMessage{
		WorkerID: w.rank,
		Message:  cause.Error(),
		Fatal:    true,
	})
	if err != nil {
		return
	}
	payload, err := msg.Encode()
	if err != nil {
		return
	}
	if err := w.transport.Send(payload, 0, TagWork); err != nil {
		w.metrics.TransportErrorsTotal.WithLabelValues("send").Inc()
		logger.Error("failure report not delivered", logging.Error(err))
	}
}
