// Package track implements a bounded, sequentially-built sliding-window
// track of sample points keyed by an ordered coordinate (time, frame
// number, or similar), supporting interpolated queries between the two
// nearest samples.
//
// A track grows at its leading edge as new samples arrive, can be cancelled
// back to a prior key (discarding samples ahead of it), and can be
// truncated at its trailing edge (discarding stale samples). Samples come
// in two flavors: aligned samples that fall exactly on a fixed-step grid,
// and not-aligned samples placed at arbitrary keys between two grid points.
// A not-aligned sample logically replaces the aligned sample at the next
// grid point until the caller explicitly pushes a new aligned one.
//
// It is intended for use cases like animation/media playback timelines and
// simulation state history, where samples arrive roughly in order, queries
// interpolate between the nearest two, and memory must stay bounded
// regardless of how long the track has been running.
package track
