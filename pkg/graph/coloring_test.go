package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColoring_BitString(t *testing.T) {
	c := Coloring[uint64]{3: ColorOne, 1: ColorZero, 2: ColorOne}

	bits, err := c.BitString([]uint64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "011", bits)

	_, err = c.BitString([]uint64{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrUncoloredVertex)
}

func TestParseColoring(t *testing.T) {
	vertices := []uint64{10, 20, 30}

	c, err := ParseColoring(vertices, "101")
	require.NoError(t, err)
	assert.Equal(t, Coloring[uint64]{10: ColorOne, 20: ColorZero, 30: ColorOne}, c)

	_, err = ParseColoring(vertices, "10")
	require.ErrorIs(t, err, ErrBitStringLength)

	_, err = ParseColoring(vertices, "1x1")
	require.ErrorIs(t, err, ErrInvalidBit)
}

func TestColoring_MergeAndClone(t *testing.T) {
	base := Coloring[uint64]{1: ColorZero}
	child := Coloring[uint64]{2: ColorOne}

	snapshot := base.Clone()
	base.Merge(child)

	assert.Equal(t, Coloring[uint64]{1: ColorZero, 2: ColorOne}, base)
	assert.Equal(t, Coloring[uint64]{1: ColorZero}, snapshot, "clone unaffected by merge")
}

func TestGraph_SnapshotRoundTrip(t *testing.T) {
	g := New[uint64]()
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))

	_, err := g.Snapshot()
	require.ErrorIs(t, err, ErrUncoloredVertex, "snapshot requires full coloring")

	want := Coloring[uint64]{0: ColorZero, 1: ColorOne, 2: ColorZero}
	require.NoError(t, g.ApplyColoring(want))

	got, err := g.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
