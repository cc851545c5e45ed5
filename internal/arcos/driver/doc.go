// Package driver exposes the public entry points for tracking collective
// events: TrackEventsDataframe for row-oriented observations and
// TrackEventsImage for dense tensors. Both build a Linker from the same
// Params and drive it lazily, one frame at a time.
package driver
