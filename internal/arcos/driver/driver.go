package driver

import (
	"iter"
	"log"

	"github.com/hinderling/arcos4go/internal/arcos/linker"
	"github.com/hinderling/arcos4go/internal/arcos/raster"
	"github.com/hinderling/arcos4go/internal/arcos/tabular"
)

// TrackEventsDataframe links collective events across t.Frame and returns a
// lazy per-frame sequence of output tables, each with EventID populated.
// Consume it fully (e.g. with a for range) to drive tracking to completion.
func TrackEventsDataframe(t *tabular.Table, params linker.Params) (iter.Seq[*tabular.Table], error) {
	l, err := linker.New(params)
	if err != nil {
		return nil, err
	}
	return tabular.Track(t, l)
}

// TrackEventsImage links collective events across x's "T" axis and returns
// a lazy per-frame sequence of output frames, each with EventID scattered
// back to its voxel.
func TrackEventsImage(x *raster.Tensor, params linker.Params) (iter.Seq[*raster.Frame], error) {
	l, err := linker.New(params)
	if err != nil {
		return nil, err
	}
	return raster.Track(x, l)
}

// LegacyDetect is a deprecated adapter kept for callers migrating from a
// single do-everything object to TrackEventsDataframe/TrackEventsImage
// directly. It always forces PropagationThreshold to 1, matching the
// original's hardcoded behavior when going through this path.
type LegacyDetect struct {
	Params linker.Params
}

// NewLegacyDetect returns a LegacyDetect and logs a one-time deprecation
// notice.
func NewLegacyDetect(params linker.Params) *LegacyDetect {
	log.Println("driver: LegacyDetect is deprecated; call TrackEventsDataframe or TrackEventsImage directly")
	params.PropagationThreshold = 1
	return &LegacyDetect{Params: params}
}

// RunDataframe tracks t and collects every frame into a single slice,
// matching the original all-at-once (non-generator) calling convention.
func (d *LegacyDetect) RunDataframe(t *tabular.Table) ([]*tabular.Table, error) {
	seq, err := TrackEventsDataframe(t, d.Params)
	if err != nil {
		return nil, err
	}
	var out []*tabular.Table
	for frame := range seq {
		out = append(out, frame)
	}
	return out, nil
}

// RunImage tracks x and collects every frame into a single slice.
func (d *LegacyDetect) RunImage(x *raster.Tensor) ([]*raster.Frame, error) {
	seq, err := TrackEventsImage(x, d.Params)
	if err != nil {
		return nil, err
	}
	var out []*raster.Frame
	for frame := range seq {
		out = append(out, frame)
	}
	return out, nil
}
