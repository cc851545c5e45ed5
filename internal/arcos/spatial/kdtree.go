// Package spatial adapts gonum's spatial/kdtree package to coordinate rows
// carrying their origin index. It exists as its own package because both
// the linker's cross-frame search and, potentially, other indexed
// nearest-neighbour queries over raw coordinates can share it.
package spatial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// IndexedPoint is a kdtree.Comparable that remembers which row of the
// original coordinate array it came from, so a query against the tree can
// be mapped back to whatever per-row state (an event id, say) the caller
// is tracking alongside the coordinates.
type IndexedPoint struct {
	Coords []float64
	Index  int
}

// Compare implements kdtree.Comparable.
func (p IndexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(IndexedPoint)
	return p.Coords[d] - q.Coords[d]
}

// Dims implements kdtree.Comparable.
func (p IndexedPoint) Dims() int { return len(p.Coords) }

// Distance implements kdtree.Comparable, returning the squared Euclidean
// distance between p and c.
func (p IndexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(IndexedPoint)
	var sum float64
	for i, v := range p.Coords {
		d := v - q.Coords[i]
		sum += d * d
	}
	return sum
}

// IndexedPoints implements kdtree.Interface over a slice of IndexedPoint.
type IndexedPoints []IndexedPoint

// Len implements kdtree.Interface.
func (p IndexedPoints) Len() int { return len(p) }

// Index implements kdtree.Interface.
func (p IndexedPoints) Index(i int) kdtree.Comparable { return p[i] }

// Slice implements kdtree.Interface.
func (p IndexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Bounds implements kdtree.Interface.
func (p IndexedPoints) Bounds() *kdtree.Bounding {
	if len(p) == 0 {
		return nil
	}
	dims := len(p[0].Coords)
	min := make([]float64, dims)
	max := make([]float64, dims)
	copy(min, p[0].Coords)
	copy(max, p[0].Coords)
	for _, pt := range p[1:] {
		for d := 0; d < dims; d++ {
			if pt.Coords[d] < min[d] {
				min[d] = pt.Coords[d]
			}
			if pt.Coords[d] > max[d] {
				max[d] = pt.Coords[d]
			}
		}
	}
	return &kdtree.Bounding{Min: kdtree.Point(min), Max: kdtree.Point(max)}
}

// Pivot implements kdtree.Interface by fully sorting the slice along
// dimension d in place and returning the median index. A quickselect
// partition would touch fewer elements, but a plain sort keeps this
// adapter self-contained and easy to verify against the Comparable
// contract above.
func (p IndexedPoints) Pivot(d kdtree.Dim) int {
	sort.Sort(byDim{p, d})
	return len(p) / 2
}

type byDim struct {
	points IndexedPoints
	dim    kdtree.Dim
}

func (b byDim) Len() int { return len(b.points) }
func (b byDim) Less(i, j int) bool {
	return b.points[i].Coords[b.dim] < b.points[j].Coords[b.dim]
}
func (b byDim) Swap(i, j int) { b.points[i], b.points[j] = b.points[j], b.points[i] }

// NewTree builds a kd-tree over points. Bounding-box tracking is left off:
// callers only ever issue nearest-neighbour queries, not range queries that
// would benefit from early bounding-box rejection.
func NewTree(points IndexedPoints) *kdtree.Tree {
	return kdtree.New(points, false)
}

// Nearest returns the nearest point to q and the Euclidean (not squared)
// distance to it. ok is false when the tree is empty.
func Nearest(t *kdtree.Tree, q []float64) (result IndexedPoint, dist float64, ok bool) {
	if t == nil || t.Root == nil {
		return IndexedPoint{}, 0, false
	}
	comparable, distSq := t.Nearest(IndexedPoint{Coords: q})
	if distSq < 0 {
		distSq = 0
	}
	return comparable.(IndexedPoint), math.Sqrt(distSq), true
}
