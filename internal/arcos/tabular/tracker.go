package tabular

import (
	"iter"
	"sort"

	"github.com/hinderling/arcos4go/internal/arcos/linker"
)

// Tracker adapts a Table into per-frame Linker.Link calls.
type Tracker struct {
	linker *linker.Linker
}

// NewTracker wraps l for tabular tracking.
func NewTracker(l *linker.Linker) *Tracker {
	return &Tracker{linker: l}
}

// TrackIteration links one frame's already-filtered, already-extracted
// coordinates and returns one event id per row. A frame with no rows still
// calls Link (on an empty coordinate array) so Memory ages correctly; its
// returned slice is empty.
func (tr *Tracker) TrackIteration(coords [][]float64) []int {
	tr.linker.Link(coords)
	ids := tr.linker.EventIDs()
	if len(ids) == 0 && len(coords) > 0 {
		out := make([]int, len(coords))
		for i := range out {
			out[i] = linker.EmptyFrameEventID
		}
		return out
	}
	return ids
}

// Track validates t, sorts it by (Frame, ObjectID), filters to active rows,
// and yields one Table per frame from 0 through the maximum observed frame
// (inclusive), including frames with zero rows.
func Track(t *Table, l *linker.Linker) (iter.Seq[*Table], error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	rows := t.rows()
	maxFrame := 0
	for _, r := range rows {
		if r.frame > maxFrame {
			maxFrame = r.frame
		}
	}
	rows = filterActive(rows)
	sortRows(rows)

	tr := NewTracker(l)

	return func(yield func(*Table) bool) {
		i := 0
		for f := 0; f <= maxFrame; f++ {
			j := i
			for j < len(rows) && rows[j].frame == f {
				j++
			}
			frameRows := rows[i:j]
			i = j

			coords := make([][]float64, len(frameRows))
			for k, r := range frameRows {
				coords[k] = r.coords
			}
			ids := tr.TrackIteration(coords)

			out := &Table{
				Frame:   make([]int, len(frameRows)),
				Coords:  coords,
				EventID: ids,
			}
			hasID := false
			objectIDs := make([]string, len(frameRows))
			for k, r := range frameRows {
				out.Frame[k] = r.frame
				objectIDs[k] = r.objectID
				if r.objectID != "" {
					hasID = true
				}
			}
			if hasID {
				out.ObjectID = objectIDs
			}

			if !yield(out) {
				return
			}
		}
	}, nil
}

func filterActive(rows []row) []row {
	out := rows[:0:0]
	for _, r := range rows {
		if r.active {
			out = append(out, r)
		}
	}
	return out
}

func sortRows(rows []row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].frame != rows[j].frame {
			return rows[i].frame < rows[j].frame
		}
		return rows[i].objectID < rows[j].objectID
	})
}
