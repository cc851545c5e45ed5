// Package cluster partitions a frame's active points into spatial clusters.
//
// Responsibilities: density-based clustering (DBSCAN, HDBSCAN) over a
// point cloud of arbitrary dimension, label normalization, and a
// pluggable custom-function backend.
//
// Dependency rule: cluster has no knowledge of frames, memory, or event
// ids; it only ever sees a single (n, D) coordinate array.
package cluster
