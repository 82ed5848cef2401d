package mixer

// EngineOption configures a newly constructed Engine, the same functional-
// options idiom the teacher's NewPlayer uses for PlayerOption/playerConfig.
type EngineOption func(*engineConfig)

type engineConfig struct {
	maxActiveVoices  int
	flags            Flags
	prereservedAlign int
	resampleMode     ResampleMode
	postClipScaler   float32
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		maxActiveVoices: 16,
		flags:           0,
		resampleMode:    ResampleLinear,
		postClipScaler:  0.95,
	}
}

// WithMaxActiveVoices bounds how many voices the selector admits into a
// single mix tick (§4.5). n must be positive; values above VoiceCount are
// clamped.
func WithMaxActiveVoices(n int) EngineOption {
	return func(c *engineConfig) {
		if n > VoiceCount {
			n = VoiceCount
		}
		if n > 0 {
			c.maxActiveVoices = n
		}
	}
}

// WithFlags sets the engine-level behavior bitset (clip mode, visualization).
func WithFlags(flags Flags) EngineOption {
	return func(c *engineConfig) {
		c.flags = flags
	}
}

// WithPrereservedScratch grows the bus's scratch/accumulator buffers to
// frames samples at construction time, so a Mix call with aSamples == frames
// never allocates; a call with any other block size reallocates them to
// that size (see bus.grow). This answers open
// question (c): callers who know their device's callback block size up
// front can avoid the first-tick allocation entirely.
func WithPrereservedScratch(frames int) EngineOption {
	return func(c *engineConfig) {
		if frames > 0 {
			c.prereservedAlign = frames
		}
	}
}

// WithResampleMode selects the interpolation kernel (§9 open question,
// point vs. linear) for every voice mixed by this engine.
func WithResampleMode(mode ResampleMode) EngineOption {
	return func(c *engineConfig) {
		c.resampleMode = mode
	}
}

// WithPostClipScaler overrides the §4.7 headroom scaler applied after
// clipping. The default, 0.95, leaves a small margin below full scale.
func WithPostClipScaler(scaler float32) EngineOption {
	return func(c *engineConfig) {
		c.postClipScaler = scaler
	}
}
