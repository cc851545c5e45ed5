package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSCAN_TwoSeparatedBlobs(t *testing.T) {
	t.Parallel()

	coords := [][]float64{
		{0, 0}, {0.5, 0}, {0, 0.5}, {0.5, 0.5}, // blob A
		{10, 10}, {10.5, 10}, {10, 10.5}, {10.5, 10.5}, // blob B
	}

	c := NewDBSCAN(DBSCANParams{Eps: 1, MinClusterSize: 2})
	labels := c.Cluster(coords)
	require.Len(t, labels, len(coords))

	labelA := labels[0]
	labelB := labels[4]
	assert.NotEqual(t, NoiseLabel, labelA)
	assert.NotEqual(t, NoiseLabel, labelB)
	assert.NotEqual(t, labelA, labelB)

	for _, i := range []int{0, 1, 2, 3} {
		assert.Equal(t, labelA, labels[i])
	}
	for _, i := range []int{4, 5, 6, 7} {
		assert.Equal(t, labelB, labels[i])
	}
}

func TestDBSCAN_SparsePointsAreNoise(t *testing.T) {
	t.Parallel()

	coords := [][]float64{
		{0, 0}, {100, 100}, {-100, -100},
	}

	c := NewDBSCAN(DBSCANParams{Eps: 1, MinClusterSize: 2})
	labels := c.Cluster(coords)

	for _, l := range labels {
		assert.Equal(t, NoiseLabel, l)
	}
}

func TestDBSCAN_BorderPointJoinsCoreCluster(t *testing.T) {
	t.Parallel()

	// A chain where the middle two points are core and the ends are
	// reachable only through them (border points).
	coords := [][]float64{
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
	}

	c := NewDBSCAN(DBSCANParams{Eps: 1.01, MinClusterSize: 3})
	labels := c.Cluster(coords)

	first := labels[0]
	assert.NotEqual(t, NoiseLabel, first)
	for _, l := range labels {
		assert.Equal(t, first, l)
	}
}

func TestDBSCAN_EmptyInput(t *testing.T) {
	t.Parallel()

	c := NewDBSCAN(DBSCANParams{Eps: 1, MinClusterSize: 1})
	labels := c.Cluster(nil)
	assert.Empty(t, labels)
}

func TestDBSCAN_LabelsAreDenseFrom1(t *testing.T) {
	t.Parallel()

	coords := [][]float64{
		{0, 0}, {0.1, 0}, // cluster 1
		{5, 5}, {5.1, 5}, // cluster 2
		{-5, -5}, {-5.1, -5}, // cluster 3
	}

	c := NewDBSCAN(DBSCANParams{Eps: 1, MinClusterSize: 2})
	labels := c.Cluster(coords)

	seen := map[int]bool{}
	for _, l := range labels {
		seen[l] = true
	}
	require.Len(t, seen, 3)
	for id := 1; id <= 3; id++ {
		assert.True(t, seen[id], "expected label %d present", id)
	}
}
