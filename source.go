package mixer

// Source is the audio-source capability (§6): an opaque decoder, synthesizer
// or stream that the engine pulls samples from. Implementations must be
// non-blocking and must never call back into the Engine — the mixer thread
// calls GetAudio/HasEnded while holding audio_mutex.
type Source interface {
	// Channels reports 1 (mono) or 2 (stereo).
	Channels() int
	// SampleRate reports the source's native sample rate.
	SampleRate() float32
	// GetAudio writes samples frames into out, laid out channel-planar:
	// out[0:samples] is channel 0, out[samples:2*samples] is channel 1 (if
	// stereo). It must fill exactly samples frames; if fewer are available
	// it zero-fills the remainder and the next HasEnded call returns true.
	GetAudio(out []float32, samples int)
	// HasEnded reports whether the source has no more audio to produce.
	HasEnded() bool
}

// Seeker is an optional Source capability used for looping.
type Seeker interface {
	// Rewind resets playback to the start of the source.
	Rewind() Result
}
