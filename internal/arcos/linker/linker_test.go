package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinderling/arcos4go/internal/arcos/cluster"
)

func defaultTestParams() Params {
	p := DefaultParams()
	p.Eps = 1.5
	p.MinClusterSize = 1
	p.PropagationThreshold = 1
	p.MemoryDepth = 2
	return p
}

func TestNew_RejectsInvalidParams(t *testing.T) {
	t.Parallel()

	t.Run("non-positive eps", func(t *testing.T) {
		p := defaultTestParams()
		p.Eps = 0
		_, err := New(p)
		assert.ErrorIs(t, err, ErrInvalidEps)
	})

	t.Run("zero min cluster size", func(t *testing.T) {
		p := defaultTestParams()
		p.MinClusterSize = 0
		_, err := New(p)
		assert.ErrorIs(t, err, ErrInvalidMinClusterSize)
	})

	t.Run("zero memory depth", func(t *testing.T) {
		p := defaultTestParams()
		p.MemoryDepth = 0
		_, err := New(p)
		assert.ErrorIs(t, err, ErrInvalidMemoryDepth)
	})

	t.Run("negative propagation threshold", func(t *testing.T) {
		p := defaultTestParams()
		p.PropagationThreshold = -1
		_, err := New(p)
		assert.ErrorIs(t, err, ErrInvalidPropagationThreshold)
	})

	t.Run("unknown method", func(t *testing.T) {
		p := defaultTestParams()
		p.Method = "not-a-method"
		_, err := New(p)
		assert.ErrorIs(t, err, ErrUnknownClusterMethod)
	})
}

func TestLink_FirstFrameMintsFreshIDs(t *testing.T) {
	t.Parallel()

	l, err := New(defaultTestParams())
	require.NoError(t, err)

	coords := [][]float64{{0, 0}, {0.1, 0}, {10, 10}}
	l.Link(coords)

	ids := l.EventIDs()
	require.Len(t, ids, 3)
	assert.Equal(t, ids[0], ids[1], "two nearby points should mint into the same cluster id")
	assert.NotEqual(t, ids[0], ids[2])
	assert.Equal(t, l.MaxEventID(), ids[2])
}

func TestLink_StationaryClusterKeepsSameID(t *testing.T) {
	t.Parallel()

	l, err := New(defaultTestParams())
	require.NoError(t, err)

	coords := [][]float64{{0, 0}, {0.2, 0}, {0, 0.2}}
	l.Link(coords)
	firstIDs := append([]int(nil), l.EventIDs()...)
	require.NotEmpty(t, firstIDs)

	l.Link(coords)
	secondIDs := l.EventIDs()

	require.Len(t, secondIDs, len(firstIDs))
	for i := range firstIDs {
		assert.Equal(t, firstIDs[i], secondIDs[i], "a stationary cluster must keep its event id across frames")
	}
}

func TestLink_TwoIndependentClustersStayIndependent(t *testing.T) {
	t.Parallel()

	l, err := New(defaultTestParams())
	require.NoError(t, err)

	frame1 := [][]float64{{0, 0}, {0.1, 0}, {50, 50}, {50.1, 50}}
	l.Link(frame1)
	ids1 := append([]int(nil), l.EventIDs()...)
	assert.Equal(t, ids1[0], ids1[1])
	assert.Equal(t, ids1[2], ids1[3])
	assert.NotEqual(t, ids1[0], ids1[2])

	frame2 := [][]float64{{0.05, 0}, {0.15, 0}, {50.05, 50}, {50.15, 50}}
	l.Link(frame2)
	ids2 := l.EventIDs()

	assert.Equal(t, ids1[0], ids2[0], "cluster A should keep its id")
	assert.Equal(t, ids1[2], ids2[2], "cluster B should keep its id")
	assert.NotEqual(t, ids2[0], ids2[2])
}

func TestLink_DriftWithinEpsPrevPropagates(t *testing.T) {
	t.Parallel()

	p := defaultTestParams()
	epsPrev := 2.0
	p.EpsPrev = &epsPrev
	l, err := New(p)
	require.NoError(t, err)

	l.Link([][]float64{{0, 0}, {0.1, 0}})
	firstID := l.EventIDs()[0]

	// Drift by 1.0, well within epsPrev of 2.0.
	l.Link([][]float64{{1, 0}, {1.1, 0}})
	secondID := l.EventIDs()[0]

	assert.Equal(t, firstID, secondID)
}

func TestLink_DriftBeyondEpsPrevMintsNewID(t *testing.T) {
	t.Parallel()

	p := defaultTestParams()
	epsPrev := 0.5
	p.EpsPrev = &epsPrev
	l, err := New(p)
	require.NoError(t, err)

	l.Link([][]float64{{0, 0}, {0.1, 0}})
	firstID := l.EventIDs()[0]

	// Drift by 100, far beyond epsPrev of 0.5.
	l.Link([][]float64{{100, 0}, {100.1, 0}})
	secondID := l.EventIDs()[0]

	assert.NotEqual(t, firstID, secondID)
	assert.Greater(t, secondID, l.MaxEventID()-1)
}

func TestLink_GapExceedingMemoryForgetsPredecessor(t *testing.T) {
	t.Parallel()

	p := defaultTestParams()
	p.MemoryDepth = 1
	l, err := New(p)
	require.NoError(t, err)

	l.Link([][]float64{{0, 0}})
	firstID := l.EventIDs()[0]

	// An empty frame ages memory by one slot, evicting the only frame held.
	l.Link(nil)
	assert.Empty(t, l.EventIDs())

	l.Link([][]float64{{0, 0}})
	secondID := l.EventIDs()[0]

	assert.NotEqual(t, firstID, secondID, "the only retained frame should have been evicted by the gap")
}

func TestLink_NoiseGetsSentinelID(t *testing.T) {
	t.Parallel()

	p := defaultTestParams()
	p.MinClusterSize = 2
	l, err := New(p)
	require.NoError(t, err)

	coords := [][]float64{{0, 0}, {0.1, 0}, {1000, 1000}}
	l.Link(coords)

	ids := l.EventIDs()
	require.Len(t, ids, 3)
	assert.Equal(t, ids[0], ids[1])
	assert.NotEqual(t, NoiseEventID, ids[0])
	assert.Equal(t, NoiseEventID, ids[2])
}

func TestLink_EmptyFrameProducesEmptyIDs(t *testing.T) {
	t.Parallel()

	l, err := New(defaultTestParams())
	require.NoError(t, err)

	l.Link(nil)
	assert.Empty(t, l.EventIDs())
}

func TestLink_PropagationThresholdRequiresEnoughNeighbours(t *testing.T) {
	t.Parallel()

	p := defaultTestParams()
	p.PropagationThreshold = 3
	epsPrev := 5.0
	p.EpsPrev = &epsPrev
	l, err := New(p)
	require.NoError(t, err)

	// First frame: two points, one cluster.
	l.Link([][]float64{{0, 0}, {0.1, 0}})
	firstID := l.EventIDs()[0]

	// Second frame's cluster has only 2 points eligible for propagation
	// (within epsPrev), short of the threshold of 3: a new id must be minted.
	l.Link([][]float64{{0.2, 0}, {0.3, 0}})
	secondIDs := l.EventIDs()

	assert.NotEqual(t, firstID, secondIDs[0])
	assert.Equal(t, secondIDs[0], secondIDs[1])
}

func TestLink_CustomClustererIsUsed(t *testing.T) {
	t.Parallel()

	calls := 0
	p := defaultTestParams()
	p.CustomFunc = func(coords [][]float64) []int {
		calls++
		labels := make([]int, len(coords))
		for i := range labels {
			labels[i] = cluster.NoiseLabel
		}
		if len(labels) > 0 {
			labels[0] = 1
		}
		return labels
	}

	l, err := New(p)
	require.NoError(t, err)

	l.Link([][]float64{{0, 0}, {1, 1}})
	assert.Equal(t, 1, calls)
	ids := l.EventIDs()
	assert.NotEqual(t, NoiseEventID, ids[0])
	assert.Equal(t, NoiseEventID, ids[1])
}
