package mixer

// SampleGranularity is the fixed block size the resampler consumes per
// refill.
const SampleGranularity = 512

// FixpointFracBits is the number of fractional bits in the resampler's
// fixed-point phase accumulator.
const FixpointFracBits = 20

// FixpointOne is 2^FixpointFracBits, the fixed-point representation of 1.0
// source sample.
const FixpointOne = 1 << FixpointFracBits

// FiltersPerStream is the number of filter slots carried by a Voice and by
// the Engine's output chain.
const FiltersPerStream = 8

// VoiceCount is the number of pre-sized voice slots the Engine carries.
const VoiceCount = 1024

// Flags is a bitset of Engine-level behavior switches.
type Flags uint32

const (
	// ClipRoundoff selects the soft-saturation clipper instead of a hard clip.
	ClipRoundoff Flags = 1 << iota
	// EnableVisualization enables the post-mix wave-data capture.
	EnableVisualization
)

// voiceFlags is a bitset of per-voice state switches.
type voiceFlags uint32

const (
	flagPaused voiceFlags = 1 << iota
	flagLooping
	flagInaudible
	flagInaudibleTick
)
