// Package linker is the heart of the system: it wraps a per-frame
// Clusterer and a bounded Memory of past frames to assign each current
// cluster either a fresh event id or the id of a spatially adjacent
// cluster from a short window of previous frames.
//
// A Linker is created once per stream and mutated once per consumed
// frame; it is not safe for concurrent use.
package linker
