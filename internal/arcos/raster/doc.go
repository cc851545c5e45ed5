// Package raster adapts a dense integer tensor of shape T x (spatial dims)
// to the linker package: enumerate voxels, filter to those with a positive
// measurement, call Linker.Link once per frame, and scatter the resulting
// event ids back into a zero-filled output tensor of the same shape.
package raster
