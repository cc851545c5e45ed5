package cluster

import "math"

// maxGridDims bounds the dimensionality the grid index can key on. The
// data model only ever carries 1 to 3 spatial dimensions.
const maxGridDims = 3

// cellKey identifies one grid cell. Unused trailing dimensions are zero,
// matching the fixed-size voxel key pattern used elsewhere for downsampling.
type cellKey [maxGridDims]int64

// grid is a regular-cell spatial index accelerating radius queries over an
// (n, D) coordinate array. Cell size should approximately match the query
// radius so that a 3^D-cell neighbourhood search covers it exactly once.
type grid struct {
	cellSize float64
	dims     int
	cells    map[cellKey][]int
}

func newGrid(coords [][]float64, cellSize float64) *grid {
	g := &grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int, len(coords)),
	}
	if len(coords) > 0 {
		g.dims = len(coords[0])
	}
	for i, p := range coords {
		g.cells[g.keyFor(p)] = append(g.cells[g.keyFor(p)], i)
	}
	return g
}

func (g *grid) keyFor(p []float64) cellKey {
	var key cellKey
	for d := 0; d < len(p) && d < maxGridDims; d++ {
		key[d] = int64(math.Floor(p[d] / g.cellSize))
	}
	return key
}

// regionQuery returns the indices of every point within eps of coords[idx],
// including idx itself, by scanning the 3^D neighbouring cells.
func (g *grid) regionQuery(coords [][]float64, idx int, eps float64) []int {
	origin := g.keyFor(coords[idx])
	eps2 := eps * eps

	var neighbours []int
	g.forEachNeighbourCell(origin, func(key cellKey) {
		for _, candidate := range g.cells[key] {
			if squaredDistance(coords[idx], coords[candidate]) <= eps2 {
				neighbours = append(neighbours, candidate)
			}
		}
	})
	return neighbours
}

// forEachNeighbourCell visits every cell in the 3^dims block centred on
// origin. dims is clamped to maxGridDims; a 1-D or 2-D grid simply never
// varies the unused trailing offsets.
func (g *grid) forEachNeighbourCell(origin cellKey, visit func(cellKey)) {
	dims := g.dims
	if dims > maxGridDims {
		dims = maxGridDims
	}
	if dims == 0 {
		visit(origin)
		return
	}

	var offsets [maxGridDims]int64
	var recurse func(d int)
	recurse = func(d int) {
		if d == dims {
			key := origin
			for i := 0; i < dims; i++ {
				key[i] += offsets[i]
			}
			visit(key)
			return
		}
		for delta := int64(-1); delta <= 1; delta++ {
			offsets[d] = delta
			recurse(d + 1)
		}
	}
	recurse(0)
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
