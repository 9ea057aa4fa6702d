package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
	"github.com/dd0wney/cluso-maxcut/pkg/logging"
	"github.com/dd0wney/cluso-maxcut/pkg/maxcut"
	"github.com/dd0wney/cluso-maxcut/pkg/metrics"
)

func TestRoundRobin(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		n    int
		want [][]string
	}{
		{
			name: "even stripe",
			keys: []string{"a", "b", "c", "d"},
			n:    2,
			want: [][]string{{"a", "c"}, {"b", "d"}},
		},
		{
			name: "more slots than keys",
			keys: []string{"a", "b"},
			n:    4,
			want: [][]string{{"a"}, {"b"}, nil, nil},
		},
		{
			name: "single slot",
			keys: []string{"a", "b", "c"},
			n:    1,
			want: [][]string{{"a", "b", "c"}},
		},
		{
			name: "no slots",
			keys: []string{"a"},
			n:    0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundRobin(tt.keys, tt.n))
		})
	}
}

func TestMessageCodec(t *testing.T) {
	g := graph.New[uint64]()
	require.NoError(t, g.AddEdge(1, 2, 2.5))
	g.AddVertex(9)

	batch := AssignmentBatch{Assignments: []Assignment{{Key: "Global:0", Graph: FromGraph(g)}}}
	msg, err := NewMessage(MsgAssignment, "run-1", batch)
	require.NoError(t, err)

	payload, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := DecodeMessage(payload)
	require.NoError(t, err)
	assert.Equal(t, MsgAssignment, decoded.Type)
	assert.Equal(t, "run-1", decoded.RunID)

	var got AssignmentBatch
	require.NoError(t, decoded.Decode(&got))
	require.Len(t, got.Assignments, 1)

	rebuilt, err := got.Assignments[0].Graph.ToGraph()
	require.NoError(t, err)
	assert.Equal(t, 3, rebuilt.NumVertices(), "isolated vertex survives the round trip")
	w, ok := rebuilt.Weight(1, 2)
	require.True(t, ok)
	assert.Equal(t, 2.5, w)
}

func TestDecodeMessage_Malformed(t *testing.T) {
	_, err := DecodeMessage([]byte("not snappy"))
	require.ErrorIs(t, err, ErrBadMessage)
}

func TestChannelHub(t *testing.T) {
	hub := NewChannelHub()
	a := hub.Endpoint(0)
	b := hub.Endpoint(1)

	require.NoError(t, a.Send([]byte("ping"), 1, TagWork))
	got, err := b.Recv(0, TagWork)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), got)

	// Tags are independent routes.
	require.NoError(t, b.Send([]byte("hello"), 0, TagControl))
	require.NoError(t, b.Send([]byte("result"), 0, TagWork))
	ctl, err := a.Recv(1, TagControl)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), ctl)
	work, err := a.Recv(1, TagWork)
	require.NoError(t, err)
	assert.Equal(t, []byte("result"), work)

	hub.Shutdown()
	_, err = a.Recv(1, TagWork)
	require.ErrorIs(t, err, ErrClosed)
}

func testOptions() maxcut.Options[uint64] {
	return maxcut.Options[uint64]{
		Logger:  logging.NewNopLogger(),
		Metrics: metrics.NewRegistry(),
	}
}

func TestDistributedRunMatchesLocalSolve(t *testing.T) {
	cfg := maxcut.DefaultConfig()
	cfg.VertexLimit = 8

	build := func() *graph.Graph[uint64] {
		g, err := graph.RandomRegular(4, 30, 21)
		require.NoError(t, err)
		return g
	}

	local, err := maxcut.New(cfg, testOptions())
	require.NoError(t, err)
	want, err := local.Solve(context.Background(), build())
	require.NoError(t, err)

	const workers = 3
	hub := NewChannelHub()
	g := build()
	coord, err := NewCoordinator(cfg, g, hub.Endpoint(0), workers, testOptions())
	require.NoError(t, err)

	errCh := make(chan error, workers)
	for rank := 1; rank <= workers; rank++ {
		w, err := NewWorker(cfg, hub.Endpoint(rank), rank, testOptions())
		require.NoError(t, err)
		go func() {
			errCh <- w.Run(context.Background())
		}()
	}

	require.NoError(t, coord.Run(context.Background()))
	for i := 0; i < workers; i++ {
		require.NoError(t, <-errCh)
	}

	res := coord.Result()
	require.NotNil(t, res)
	assert.Len(t, res.Coloring, 30)
	assert.Equal(t, want.Bits, res.Bits, "striping must not change the outcome")
	assert.Equal(t, want.CutValue, res.CutValue)
}

func TestCoordinator_RequiresWorkers(t *testing.T) {
	g := graph.New[uint64]()
	require.NoError(t, g.AddUnitEdge(0, 1))

	hub := NewChannelHub()
	_, err := NewCoordinator(maxcut.DefaultConfig(), g, hub.Endpoint(0), 0, testOptions())
	require.ErrorIs(t, err, ErrNoWorkers)
}

// failingOptimizer always errors, simulating a broken worker.
type failingOptimizer struct{}

func (failingOptimizer) Solve(context.Context, *graph.Graph[uint64], int64, int) (string, error) {
	return "", errors.New("solver exploded")
}

func TestWorkerFailureAbortsRun(t *testing.T) {
	// Two triangles joined by a bridge: two parts, one striped to the
	// worker, whose leaf optimizer always fails.
	g := graph.New[uint64]()
	for _, e := range [][2]uint64{{0, 1}, {1, 2}, {0, 2}, {3, 4}, {4, 5}, {3, 5}, {2, 3}} {
		require.NoError(t, g.AddUnitEdge(e[0], e[1]))
	}

	cfg := maxcut.DefaultConfig()
	cfg.VertexLimit = 3
	cfg.SubgraphLimit = 2

	hub := NewChannelHub()
	coord, err := NewCoordinator(cfg, g, hub.Endpoint(0), 1, testOptions())
	require.NoError(t, err)

	workerOpts := testOptions()
	workerOpts.Optimizer = failingOptimizer{}
	w, err := NewWorker(cfg, hub.Endpoint(1), 1, workerOpts)
	require.NoError(t, err)

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- w.Run(context.Background())
	}()

	err = coord.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker failed")
	require.Error(t, <-workerErr)
}
