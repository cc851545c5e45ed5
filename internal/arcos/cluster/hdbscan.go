package cluster

import (
	"math"
	"sort"
)

// SelectionMethod names how flat clusters are cut from the condensed
// hierarchy. Leaf selection is the only method currently implemented; it
// is kept as an explicit field rather than hard-coded so the intent is
// visible at the call site.
type SelectionMethod string

// LeafSelection takes the deepest (most specific) stable clusters in the
// hierarchy, rather than optimizing a global excess-of-mass stability score.
const LeafSelection SelectionMethod = "leaf"

// HDBSCANParams configures hierarchical density-based clustering.
type HDBSCANParams struct {
	MinClusterSize int
	MinSamples     int
	// ClusterSelectionEpsilon merges any split whose mutual-reachability
	// distance falls below this value back into a single cluster, pruning
	// the hierarchy's noisiest fine structure.
	ClusterSelectionEpsilon float64
	SelectionMethod         SelectionMethod
}

type hdbscanClusterer struct {
	params HDBSCANParams
}

// NewHDBSCAN returns a Clusterer implementing a leaf-selection HDBSCAN:
// mutual-reachability distances, a minimum spanning tree, and a condensed
// hierarchy cut at MinClusterSize. Core distances and the spanning tree are
// computed by direct pairwise distance, appropriate for the frame-sized
// point clouds this clusterer sees.
func NewHDBSCAN(params HDBSCANParams) Clusterer {
	return hdbscanClusterer{params: params}
}

func (c hdbscanClusterer) Cluster(coords [][]float64) []int {
	n := len(coords)
	if n == 0 {
		return []int{}
	}
	if n == 1 {
		if c.params.MinClusterSize <= 1 {
			return []int{1}
		}
		return []int{NoiseLabel}
	}

	coreDist := coreDistances(coords, c.params.MinSamples)
	edges := minimumSpanningTree(coords, coreDist)

	members := make([]int, n)
	for i := range members {
		members[i] = i
	}

	clusters := splitCluster(members, edges, c.params)

	out := make([]int, n)
	for id, members := range clusters {
		for _, idx := range members {
			out[idx] = id + 1
		}
	}
	return out
}

// mstEdge is one edge of the mutual-reachability minimum spanning tree.
type mstEdge struct {
	a, b int
	w    float64
}

// coreDistances returns, for each point, the distance to its
// minSamples-th nearest neighbour (clamped to n-1), the "core distance"
// HDBSCAN uses to inflate distances in sparse regions.
func coreDistances(coords [][]float64, minSamples int) []float64 {
	n := len(coords)
	k := minSamples
	if k < 1 {
		k = 1
	}
	if k > n-1 {
		k = n - 1
	}

	core := make([]float64, n)
	dists := make([]float64, n-1)
	for i := range coords {
		w := 0
		for j := range coords {
			if i == j {
				continue
			}
			dists[w] = euclidean(coords[i], coords[j])
			w++
		}
		sort.Float64s(dists)
		core[i] = dists[k-1]
	}
	return core
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func mutualReachability(coords [][]float64, core []float64, i, j int) float64 {
	d := euclidean(coords[i], coords[j])
	if core[i] > d {
		d = core[i]
	}
	if core[j] > d {
		d = core[j]
	}
	return d
}

// minimumSpanningTree builds the MST over the mutual-reachability metric
// using dense Prim's algorithm: O(n^2), appropriate for the per-frame point
// counts this clustering role sees.
func minimumSpanningTree(coords [][]float64, core []float64) []mstEdge {
	n := len(coords)
	if n < 2 {
		return nil
	}

	inTree := make([]bool, n)
	bestDist := make([]float64, n)
	bestFrom := make([]int, n)
	for i := range bestDist {
		bestDist[i] = math.Inf(1)
		bestFrom[i] = -1
	}

	inTree[0] = true
	for j := 1; j < n; j++ {
		bestDist[j] = mutualReachability(coords, core, 0, j)
		bestFrom[j] = 0
	}

	edges := make([]mstEdge, 0, n-1)
	for step := 1; step < n; step++ {
		u := -1
		best := math.Inf(1)
		for j := 0; j < n; j++ {
			if !inTree[j] && bestDist[j] < best {
				best = bestDist[j]
				u = j
			}
		}
		inTree[u] = true
		edges = append(edges, mstEdge{a: bestFrom[u], b: u, w: bestDist[u]})

		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			d := mutualReachability(coords, core, u, j)
			if d < bestDist[j] {
				bestDist[j] = d
				bestFrom[j] = u
			}
		}
	}
	return edges
}

// splitCluster recursively condenses the single-linkage hierarchy implied
// by edges (the induced sub-spanning-tree over members) down to leaf
// clusters of at least MinClusterSize, matching leaf cluster-selection:
// recurse as deep as the size floor allows and keep the most specific
// surviving clusters. Members that never settle into a cluster of
// sufficient size are left unassigned (noise).
func splitCluster(members []int, edges []mstEdge, params HDBSCANParams) [][]int {
	if len(members) < params.MinClusterSize {
		return nil
	}

	cutIdx := -1
	for i, e := range edges {
		if e.w < params.ClusterSelectionEpsilon {
			continue
		}
		if cutIdx == -1 || e.w > edges[cutIdx].w {
			cutIdx = i
		}
	}
	if cutIdx == -1 {
		return [][]int{members}
	}

	remaining := make([]mstEdge, 0, len(edges)-1)
	for i, e := range edges {
		if i != cutIdx {
			remaining = append(remaining, e)
		}
	}

	partA, partB := connectedParts(members, remaining)
	aBig := len(partA) >= params.MinClusterSize
	bBig := len(partB) >= params.MinClusterSize

	if !aBig || !bBig {
		// Splitting here would orphan points below the size floor on at
		// least one side. Leaf selection keeps the deepest node that
		// still splits cleanly, so this node is a leaf: stop here and
		// keep every member together rather than discarding the smaller
		// side as noise.
		return [][]int{members}
	}

	edgesA := edgesWithin(remaining, partA)
	edgesB := edgesWithin(remaining, partB)
	return append(splitCluster(partA, edgesA, params), splitCluster(partB, edgesB, params)...)
}

// connectedParts splits members into its two connected components once a
// single edge has been removed from their induced spanning tree.
func connectedParts(members []int, edges []mstEdge) (partA, partB []int) {
	adj := make(map[int][]int, len(members))
	for _, e := range edges {
		adj[e.a] = append(adj[e.a], e.b)
		adj[e.b] = append(adj[e.b], e.a)
	}

	visited := make(map[int]bool, len(members))
	var componentOf func(start int) []int
	componentOf = func(start int) []int {
		stack := []int{start}
		visited[start] = true
		var comp []int
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, n)
			for _, next := range adj[n] {
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
		return comp
	}

	partA = componentOf(members[0])
	for _, m := range members {
		if !visited[m] {
			partB = append(partB, m)
		}
	}
	return partA, partB
}

func edgesWithin(edges []mstEdge, members []int) []mstEdge {
	set := make(map[int]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	out := make([]mstEdge, 0, len(edges))
	for _, e := range edges {
		if set[e.a] && set[e.b] {
			out = append(out, e)
		}
	}
	return out
}
