package mixer

import "sync"

// VoiceHandle is an opaque, generation-tagged reference to a voice slot.
// Encoding the generation alongside the slot index means a handle obtained
// before a slot was reused reads back as invalid afterward, the same
// staleness guard the teacher's encodeVoiceID/decodeVoiceID pair gives
// sequencer trigger ids.
type VoiceHandle uint64

const invalidVoiceHandle VoiceHandle = 0

func encodeVoiceHandle(id int, generation uint32) VoiceHandle {
	return VoiceHandle(uint64(generation)<<32 | uint64(uint32(id)+1))
}

func decodeVoiceHandle(h VoiceHandle) (id int, generation uint32, ok bool) {
	if h == invalidVoiceHandle {
		return 0, 0, false
	}
	idPart := uint32(h) - 1
	return int(idPart), uint32(h >> 32), true
}

// Engine is the mixing engine: a bounded set of voices composited on every
// Mix call into an interleaved stereo buffer. All control-surface methods
// and Mix itself serialize on mu, the single audio_mutex the concurrency
// model requires (§5). The one other lock is eventChMu, which guards only
// the Watch channel: Mix takes it briefly, while holding mu, whenever it
// sends a voice lifecycle event.
type Engine struct {
	mu sync.Mutex

	sampleRate float32
	streamTime float64

	globalVolume      float32
	globalVolumeFader Fader
	postClipScaler    float32
	flags             Flags
	resampleMode      ResampleMode

	voices       [VoiceCount]*voice
	highestVoice int // 1 + highest slot index ever handed out

	maxActiveVoices int
	activeVoiceIDs  []int
	activeCount     int

	outputFilter filterSlots

	bus *bus

	visWave []float32 // last mixed block, interleaved; valid when EnableVisualization is set

	eventCh   chan Event
	eventChMu sync.Mutex
}

// NewEngine constructs an Engine driving output at sampleRate Hz, stereo.
func NewEngine(sampleRate float32, opts ...EngineOption) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		sampleRate:      sampleRate,
		globalVolume:    1,
		postClipScaler:  cfg.postClipScaler,
		flags:           cfg.flags,
		resampleMode:    cfg.resampleMode,
		maxActiveVoices: cfg.maxActiveVoices,
		activeVoiceIDs:  make([]int, cfg.maxActiveVoices),
	}
	e.globalVolumeFader.Set(1, 1, 0, 0)
	for i := range e.voices {
		e.voices[i] = newVoice(i)
	}
	align := cfg.prereservedAlign
	if align <= 0 {
		align = SampleGranularity
	}
	e.bus = newBus(align)
	if cfg.flags&EnableVisualization != 0 {
		e.visWave = make([]float32, 2*align)
	}
	return e
}

// Deinit stops every playing voice and releases its source reference.
// Safe to call from any goroutine; it takes the audio mutex.
func (e *Engine) Deinit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := 0; i < e.highestVoice; i++ {
		e.voices[i].clearSlot()
	}
	e.highestVoice = 0
	e.activeCount = 0
}

// SampleRate reports the engine's fixed output sample rate.
func (e *Engine) SampleRate() float32 { return e.sampleRate }

// StreamTime reports the engine's audio clock, advanced by every Mix call.
func (e *Engine) StreamTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streamTime
}

// Mix implements §4.6: it advances the engine by exactly aSamples frames
// and writes the interleaved stereo result into dst (which must be at
// least 2*aSamples floats). This is the only method the pull-based backend
// calls. Besides mu, it takes eventChMu briefly when a voice ends or stops
// during the tick.
func (e *Engine) Mix(dst []float32, aSamples int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if aSamples <= 0 {
		return
	}
	e.bus.grow(aSamples)

	t0 := e.streamTime
	e.streamTime += float64(aSamples) / float64(e.sampleRate)
	t1 := e.streamTime

	// 1. advance every live voice's faders/schedulers and reap the ones
	// whose stop scheduler just fired.
	for i := 0; i < e.highestVoice; i++ {
		v := e.voices[i]
		if !v.live() {
			continue
		}
		if v.tick(t1) {
			e.freeVoice(i, EventVoiceStopped)
		}
	}

	// 2. select which voices actually get mixed this tick (§4.5).
	e.activeCount = selectActiveVoices(e.voices[:], e.highestVoice, e.maxActiveVoices, e.activeVoiceIDs)

	// 3. sum every active voice into the bus accumulator (§4.3/§4.4).
	e.bus.mixBus(e.voices[:], e.activeVoiceIDs[:e.activeCount], aSamples, e.sampleRate, e.resampleMode)

	// 4. reap voices whose source just ran out (non-looping end-of-stream).
	for _, id := range e.activeVoiceIDs[:e.activeCount] {
		if e.voices[id].ended {
			e.freeVoice(id, EventVoiceEnded)
		}
	}

	// 5. run the engine-wide output filter chain in place on the accumulator.
	e.outputFilter.run(e.bus.accumFlat[:2*aSamples], aSamples, 2, e.sampleRate, t1)

	// 6. global-volume ramp, clip/saturate, and interlace into dst (§4.7).
	gv0 := float32(e.globalVolumeFader.Get(t0))
	gv1 := float32(e.globalVolumeFader.Get(t1))
	roundoff := e.flags&ClipRoundoff != 0
	clip(e.bus.accumFlat, e.bus.accumFlat, aSamples, gv0, gv1, roundoff, e.postClipScaler)
	interlace(dst, e.bus.accumFlat, aSamples)

	// 7. visualization tap: remember the last mixed block verbatim.
	if e.flags&EnableVisualization != 0 {
		if cap(e.visWave) < 2*aSamples {
			e.visWave = make([]float32, 2*aSamples)
		}
		e.visWave = e.visWave[:2*aSamples]
		copy(e.visWave, dst[:2*aSamples])
	}
}

// GetWaveData returns a copy of the most recently mixed interleaved stereo
// block. It is nil unless the engine was built WithFlags(EnableVisualization
// | ...). Intended for a visualization package (e.g. an FFT tap) to pull
// from outside the mixer thread.
func (e *Engine) GetWaveData() []float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.visWave == nil {
		return nil
	}
	out := make([]float32, len(e.visWave))
	copy(out, e.visWave)
	return out
}

// freeVoice releases slot id back to the free pool and fires ev, if a
// watcher is attached. Must be called with mu held.
func (e *Engine) freeVoice(id int, kind EventKind) {
	v := e.voices[id]
	handle := encodeVoiceHandle(id, v.generation)
	v.clearSlot()
	e.sendEvent(Event{Kind: kind, Handle: handle})
}

// allocVoice finds a free slot, preferring to extend highestVoice only when
// every slot below it is occupied, then stealing the quietest playing voice
// if the pool is exhausted — the same fallback the teacher's chiptune/FM
// engines use when every hardware channel is busy.
func (e *Engine) allocVoice() (id int, ok bool) {
	for i := 0; i < e.highestVoice; i++ {
		if !e.voices[i].live() {
			return i, true
		}
	}
	if e.highestVoice < VoiceCount {
		id = e.highestVoice
		e.highestVoice++
		return id, true
	}
	quietest, quietestVol := -1, float32(0)
	for i := 0; i < VoiceCount; i++ {
		v := e.voices[i]
		if !v.live() || v.has(flagPaused) {
			continue
		}
		if quietest == -1 || v.overallVolume < quietestVol {
			quietest, quietestVol = i, v.overallVolume
		}
	}
	if quietest == -1 {
		return 0, false
	}
	e.freeVoice(quietest, EventVoiceStopped)
	return quietest, true
}

// resolveLocked validates handle and returns its voice, or nil if the
// handle is stale/invalid. Must be called with mu held.
func (e *Engine) resolveLocked(h VoiceHandle) *voice {
	id, generation, ok := decodeVoiceHandle(h)
	if !ok || id < 0 || id >= VoiceCount {
		return nil
	}
	v := e.voices[id]
	if !v.live() || v.generation != generation {
		return nil
	}
	return v
}

// IsValidVoiceHandle reports whether h still refers to a live voice.
func (e *Engine) IsValidVoiceHandle(h VoiceHandle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveLocked(h) != nil
}

// VoiceCount reports how many slots currently hold a source.
func (e *Engine) VoiceCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for i := 0; i < e.highestVoice; i++ {
		if e.voices[i].live() {
			n++
		}
	}
	return n
}
