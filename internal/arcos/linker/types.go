package linker

import "github.com/hinderling/arcos4go/internal/arcos/cluster"

// Sentinel event ids.
const (
	// NoiseEventID marks a point the clusterer rejected as noise.
	NoiseEventID = -1
	// EmptyFrameEventID is the tabular-tracker fallback used when a
	// frame yields no event ids at all; the Linker itself never emits it.
	EmptyFrameEventID = 0
)

// Params configures a Linker.
type Params struct {
	// Eps is the clustering radius handed to the configured backend.
	Eps float64
	// EpsPrev is the cross-frame linking radius. Nil means "use Eps".
	EpsPrev *float64
	// MinClusterSize is the minimum number of points to form a cluster.
	MinClusterSize int
	// MinSamples is HDBSCAN's min_samples; ignored by DBSCAN.
	MinSamples int
	// Method selects a built-in backend. Ignored if CustomFunc is set.
	Method cluster.Method
	// CustomFunc, if non-nil, overrides Method entirely.
	CustomFunc cluster.Func
	// PropagationThreshold is the minimum number of within-EpsPrev past
	// neighbours a current cluster needs to inherit an id.
	PropagationThreshold int
	// MemoryDepth is how many past frames contribute candidate
	// predecessors (nPrev).
	MemoryDepth int
	// Jobs is a parallelism hint passed through to backends that use it;
	// this implementation's backends are single-threaded (frame-sized
	// point clouds don't warrant worker-pool overhead), so Jobs is
	// accepted but currently unused.
	Jobs int
}

// DefaultParams returns the default configuration: DBSCAN with Eps 1,
// EpsPrev unset (so Eps is used), and every count-valued field set to 1.
func DefaultParams() Params {
	return Params{
		Eps:                  1,
		MinClusterSize:       1,
		MinSamples:           1,
		Method:               cluster.DBSCANMethod,
		PropagationThreshold: 1,
		MemoryDepth:          1,
		Jobs:                 1,
	}
}
