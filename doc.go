// Package mixer implements a real-time software audio mixing engine: a
// bounded set of voices, each independently resampled, filtered, panned and
// faded, are composited on every device callback into an interleaved stereo
// buffer.
//
// The package itself has no dependency beyond the standard library. Device
// backends, audio sources and filters are supplied by the caller through the
// Source and Filter capability interfaces; concrete implementations live in
// the sibling internal/backend, internal/source and internal/effects
// packages.
package mixer
