package linker

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/hinderling/arcos4go/internal/arcos/cluster"
	"github.com/hinderling/arcos4go/internal/arcos/spatial"
)

// Linker consumes one frame of coordinates per Link call and mutates
// internal state: it clusters the frame, links each cluster to a
// spatially adjacent predecessor in Memory (or mints a fresh id), and
// commits the result to Memory before returning.
//
// A Linker is created once per run and is not safe for concurrent use.
type Linker struct {
	clusterer            cluster.Clusterer
	memory               *Memory
	epsPrev              float64
	propagationThreshold int
	maxPrevEventID       int
	eventIDs             []int
}

// New validates params and constructs a Linker. Configuration errors
// (unknown method, invalid numeric parameters) are returned here, never
// from Link.
func New(params Params) (*Linker, error) {
	if params.Eps <= 0 {
		return nil, ErrInvalidEps
	}
	if params.MinClusterSize < 1 {
		return nil, ErrInvalidMinClusterSize
	}
	if params.MemoryDepth < 1 {
		return nil, ErrInvalidMemoryDepth
	}
	if params.PropagationThreshold < 0 {
		return nil, ErrInvalidPropagationThreshold
	}

	c, err := buildClusterer(params)
	if err != nil {
		return nil, err
	}

	epsPrev := params.Eps
	if params.EpsPrev != nil {
		epsPrev = *params.EpsPrev
	}

	return &Linker{
		clusterer:            c,
		memory:               NewMemory(params.MemoryDepth),
		epsPrev:              epsPrev,
		propagationThreshold: params.PropagationThreshold,
	}, nil
}

func buildClusterer(params Params) (cluster.Clusterer, error) {
	if params.CustomFunc != nil {
		return cluster.NewCustom(params.CustomFunc), nil
	}
	switch params.Method {
	case cluster.DBSCANMethod, "":
		return cluster.NewDBSCAN(cluster.DBSCANParams{
			Eps:            params.Eps,
			MinClusterSize: params.MinClusterSize,
		}), nil
	case cluster.HDBSCANMethod:
		return cluster.NewHDBSCAN(cluster.HDBSCANParams{
			MinClusterSize:          params.MinClusterSize,
			MinSamples:              params.MinSamples,
			ClusterSelectionEpsilon: params.Eps,
			SelectionMethod:         cluster.LeafSelection,
		}), nil
	default:
		return nil, ErrUnknownClusterMethod
	}
}

// EventIDs returns the event id vector from the most recent Link call,
// aligned to that call's input rows (sentinel NoiseEventID at noise
// positions).
func (l *Linker) EventIDs() []int {
	return l.eventIDs
}

// MaxEventID returns the running max_prev_event_id counter. It never
// decreases and never reuses an id already handed out.
func (l *Linker) MaxEventID() int {
	return l.maxPrevEventID
}

// Link consumes one frame's already active-filtered coordinates and
// updates EventIDs and Memory.
func (l *Linker) Link(coords [][]float64) {
	n := len(coords)
	if n == 0 {
		l.memory.Update(nil, nil)
		l.eventIDs = []int{}
		return
	}

	labels := l.clusterer.Cluster(coords)

	keptCoords := make([][]float64, 0, n)
	keptLabels := make([]int, 0, n)
	noiseMask := make([]bool, n)
	for i, lab := range labels {
		if lab == cluster.NoiseLabel {
			noiseMask[i] = true
			continue
		}
		keptCoords = append(keptCoords, coords[i])
		keptLabels = append(keptLabels, lab)
	}

	var assigned []int
	if l.memory.Empty() || len(keptLabels) == 0 || len(l.memory.AllCoordinates()) == 0 {
		assigned = l.mintOffset(keptLabels)
	} else {
		assigned = l.linkAgainstMemory(keptLabels, keptCoords)
	}

	// Commit before reassembly: Memory must reflect this frame by the
	// time Link returns.
	l.memory.Update(keptCoords, assigned)

	out := make([]int, n)
	j := 0
	for i := 0; i < n; i++ {
		if noiseMask[i] {
			out[i] = NoiseEventID
			continue
		}
		out[i] = assigned[j]
		j++
	}
	l.eventIDs = out
}

// mintOffset handles the first-frame / empty-memory path: shift labels
// above every id minted so far.
func (l *Linker) mintOffset(labels []int) []int {
	out := make([]int, len(labels))
	max := l.maxPrevEventID
	for i, lab := range labels {
		id := lab + l.maxPrevEventID
		out[i] = id
		if id > max {
			max = id
		}
	}
	l.maxPrevEventID = max
	return out
}

// linkAgainstMemory groups the current frame's clusters and, for each,
// queries 1-nearest-neighbour into a kd-tree built over Memory's
// concatenated coordinates.
func (l *Linker) linkAgainstMemory(labels []int, coords [][]float64) []int {
	memCoords := l.memory.AllCoordinates()
	memEventIDs := l.memory.AllEventIDs()

	points := make(spatial.IndexedPoints, len(memCoords))
	for i, c := range memCoords {
		points[i] = spatial.IndexedPoint{Coords: c, Index: i}
	}
	tree := spatial.NewTree(points)

	order := stableOrderByLabel(labels)
	out := make([]int, len(labels))

	i := 0
	for i < len(order) {
		j := i
		label := labels[order[i]]
		for j < len(order) && labels[order[j]] == label {
			j++
		}
		group := order[i:j]
		assigned := l.linkCluster(group, coords, tree, memEventIDs)
		for k, idx := range group {
			out[idx] = assigned[k]
		}
		i = j
	}
	return out
}

// linkCluster assigns event ids to one homogeneous cluster. It either
// mints a single fresh id for the whole cluster, or returns each point's
// own nearest-memory-neighbour's id. Note this is the full per-point
// vector, not just the eligible subset: a single spatial cluster can
// fragment its identity across multiple predecessors when its points
// disagree about which past cluster they're closest to. That is
// intentional, not a bug to be collapsed away.
func (l *Linker) linkCluster(group []int, coords [][]float64, tree *kdtree.Tree, memEventIDs []int) []int {
	neighborIDs := make([]int, len(group))
	eligible := 0
	for k, idx := range group {
		nn, dist, ok := spatial.Nearest(tree, coords[idx])
		if !ok {
			neighborIDs[k] = NoiseEventID
			continue
		}
		neighborIDs[k] = memEventIDs[nn.Index]
		if dist <= l.epsPrev {
			eligible++
		}
	}

	if eligible == 0 || eligible < l.propagationThreshold {
		l.maxPrevEventID++
		id := l.maxPrevEventID
		out := make([]int, len(group))
		for k := range out {
			out[k] = id
		}
		return out
	}
	return neighborIDs
}

func stableOrderByLabel(labels []int) []int {
	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return labels[order[a]] < labels[order[b]]
	})
	return order
}
