package raster

import (
	"iter"

	"github.com/hinderling/arcos4go/internal/arcos/linker"
)

// Frame is one timepoint's worth of spatially-indexed event ids, flattened
// row-major over Shape (the input Tensor's non-"T" axes, in their
// original relative order). Untouched voxels are zero.
type Frame struct {
	Shape   []int
	EventID []uint16
}

// Len returns the number of voxels in Shape.
func (f *Frame) Len() int {
	return product(f.Shape)
}

// Track enumerates x one T-slice at a time, links each slice's positive
// voxels, and yields a Frame scattering the resulting event ids back to
// their spatial position. Voxels with a non-positive value never
// participate in clustering and are left at zero in the output.
func Track(x *Tensor, l *linker.Linker) (iter.Seq[*Frame], error) {
	if err := x.validate(); err != nil {
		return nil, err
	}

	tAxis := timeAxis(x.Dims)
	spatialShape := make([]int, 0, len(x.Shape)-1)
	spatialAxes := make([]int, 0, len(x.Shape)-1)
	for i, d := range x.Shape {
		if i == tAxis {
			continue
		}
		spatialShape = append(spatialShape, d)
		spatialAxes = append(spatialAxes, i)
	}

	fullStrides := strides(x.Shape)
	spatialStrides := strides(spatialShape)
	tSize := x.Shape[tAxis]
	voxelCount := product(spatialShape)

	return func(yield func(*Frame) bool) {
		for f := 0; f < tSize; f++ {
			coords := make([][]float64, 0, voxelCount)
			flatIdx := make([]int, 0, voxelCount)

			enumerateSpatial(spatialShape, func(spatialIdx []int) {
				full := make([]int, len(x.Shape))
				full[tAxis] = f
				for k, axis := range spatialAxes {
					full[axis] = spatialIdx[k]
				}
				offset := 0
				for i, v := range full {
					offset += v * fullStrides[i]
				}
				if x.Data[offset] == 0 {
					return
				}
				row := make([]float64, len(spatialIdx))
				for k, v := range spatialIdx {
					row[k] = float64(v)
				}
				coords = append(coords, row)

				flat := 0
				for k, v := range spatialIdx {
					flat += v * spatialStrides[k]
				}
				flatIdx = append(flatIdx, flat)
			})

			l.Link(coords)
			ids := l.EventIDs()

			out := &Frame{Shape: spatialShape, EventID: make([]uint16, voxelCount)}
			for k, id := range ids {
				if id > 0 {
					out.EventID[flatIdx[k]] = uint16(id)
				}
			}

			if !yield(out) {
				return
			}
		}
	}, nil
}

// enumerateSpatial calls visit once for every index combination across
// shape, in row-major order.
func enumerateSpatial(shape []int, visit func(idx []int)) {
	if len(shape) == 0 {
		return
	}
	idx := make([]int, len(shape))
	var recurse func(d int)
	recurse = func(d int) {
		if d == len(shape) {
			visit(idx)
			return
		}
		for i := 0; i < shape[d]; i++ {
			idx[d] = i
			recurse(d + 1)
		}
	}
	recurse(0)
}
