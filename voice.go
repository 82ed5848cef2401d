package mixer

// voice holds per-playback state for one sound. It implements §3's Voice
// entity and §4.3's mix-step.
type voice struct {
	id         int    // stable slot index, used as selector tie-break
	generation uint32 // bumped on every reuse; backs VoiceHandle staleness checks

	source     Source
	busHandle  uint32
	flags      voiceFlags
	channels   int
	sampleRate float32 // source rate

	setVolume     float32 // last value passed to SetVolume/FadeVolume's target
	overallVolume float32 // current, post-fade value; recomputed every tick

	channelVolume        [2]float32
	currentChannelVolume [2]float32

	pan           float32 // last value passed to SetPan/FadePan's target
	relativeSpeed float32 // current, post-fade play-speed multiplier

	srcOffset       uint32
	leftoverSamples uint32
	delaySamples    uint32

	// resampleData is the ping-pong pair: [0] current block, [1] previous
	// block. Each slab holds 2*SampleGranularity samples, channel-major; a
	// mono voice uses only the first SampleGranularity.
	// Swapping is pointer-level per §5/§9 — the two slices are exchanged,
	// never copied.
	resampleData [2][]float32

	filter filterSlots

	volumeFader            Fader
	panFader               Fader
	relativePlaySpeedFader Fader
	pauseScheduler         Scheduler
	stopScheduler          Scheduler

	streamTime float64 // current engine stream time, refreshed by tick; used as the filter clock

	ended bool // set by mixStep when the source ran out and looping is off
}

func newVoice(id int) *voice {
	v := &voice{id: id}
	v.resampleData[0] = make([]float32, 2*SampleGranularity)
	v.resampleData[1] = make([]float32, 2*SampleGranularity)
	return v
}

// live reports whether the slot holds a playing source.
func (v *voice) live() bool { return v.source != nil }

func (v *voice) has(f voiceFlags) bool  { return v.flags&f != 0 }
func (v *voice) set(f voiceFlags)       { v.flags |= f }
func (v *voice) clear(f voiceFlags)     { v.flags &^= f }

// reset reinitializes a slot for a new source, per init/Lifecycle in §3.
func (v *voice) reset(source Source, channels int, sampleRate float32, delaySamples uint32) {
	v.generation++
	v.source = source
	v.channels = channels
	v.sampleRate = sampleRate
	v.flags = 0
	v.setVolume = 1
	v.overallVolume = 1
	v.currentChannelVolume = [2]float32{0, 0}
	v.pan = 0
	v.srcOffset = 0
	v.leftoverSamples = 0
	v.delaySamples = delaySamples
	for i := range v.resampleData[0] {
		v.resampleData[0][i] = 0
		v.resampleData[1][i] = 0
	}
	v.filter = filterSlots{}
	v.volumeFader = Fader{}
	v.volumeFader.Set(1, 1, 0, 0)
	v.panFader = Fader{}
	v.panFader.Set(0, 0, 0, 0)
	v.relativePlaySpeedFader = Fader{}
	v.relativePlaySpeedFader.Set(1, 1, 0, 0)
	v.relativeSpeed = 1
	v.pauseScheduler = Scheduler{}
	v.stopScheduler = Scheduler{}
	v.streamTime = 0
	v.ended = false
	v.applyPan(0)
}

// clearSlot empties a voice slot back to "no source".
func (v *voice) clearSlot() {
	v.source = nil
	v.ended = false
}

// applyPan recomputes channelVolume from an already-clamped pan position,
// -1 (full left) to +1 (full right), using the original's balance law
// (soloud.cpp's setVoicePan): the channel being panned away from is
// attenuated while the other stays at unity, so center (pan 0) leaves
// channelVolume at [1, 1] — unlike an equal-power law, which would put
// center at [0.707, 0.707] and break a caller relying on unit gain for an
// un-panned voice. It never touches v.pan, the caller-set target — tick
// calls it once per mix tick with the fader's current (possibly mid-ramp)
// value.
func (v *voice) applyPan(pan float32) {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	if pan <= 0 {
		v.channelVolume[0] = 1
		v.channelVolume[1] = 1 + pan
	} else {
		v.channelVolume[0] = 1 - pan
		v.channelVolume[1] = 1
	}
}

// setPan sets the target pan immediately, disarming any in-flight pan fade.
func (v *voice) setPan(pan float32) {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	v.pan = pan
	v.panFader.Set(float64(pan), float64(pan), 0, 0)
	v.applyPan(pan)
}

// tick evaluates this voice's faders and one-shot schedulers against stream
// time t. It returns true once, the tick the stop scheduler fires, so the
// engine can free the slot.
func (v *voice) tick(t float64) (stopNow bool) {
	v.streamTime = t
	v.overallVolume = float32(v.volumeFader.Get(t))
	v.applyPan(float32(v.panFader.Get(t)))
	v.relativeSpeed = float32(v.relativePlaySpeedFader.Get(t))
	if v.pauseScheduler.Poll(t) {
		v.set(flagPaused)
	}
	if v.stopScheduler.Poll(t) {
		return true
	}
	return false
}

// mixStep advances the voice by exactly aSamples output samples (§4.3).
// scratch holds two channel-planar slabs of length >= aSamples each, used
// as voice-local resample output; accum is the bus's planar accumulation
// buffer that the pan ramp sums into. Both are only touched when ticking is
// false. dstRate is the bus's output sample rate.
func (v *voice) mixStep(aSamples int, scratch, accum [][]float32, dstRate float32, mode ResampleMode, ticking bool) {
	step := (v.sampleRate * v.relativeSpeed) / dstRate
	stepFixed := uint32(step * float32(FixpointOne))
	if stepFixed == 0 {
		return
	}

	outofs := 0

	if v.delaySamples > 0 {
		skip := v.delaySamples
		if skip > uint32(aSamples) {
			skip = uint32(aSamples)
		}
		if !ticking {
			for ch := 0; ch < 2; ch++ {
				for i := uint32(0); i < skip; i++ {
					scratch[ch][int(i)] = 0
				}
			}
		}
		outofs += int(skip)
		v.delaySamples -= skip
	}

	for outofs < aSamples {
		if v.leftoverSamples == 0 {
			v.resampleData[0], v.resampleData[1] = v.resampleData[1], v.resampleData[0]
			if v.source.HasEnded() && v.has(flagLooping) {
				if seeker, ok := v.source.(Seeker); ok {
					seeker.Rewind()
				}
			}
			if v.source.HasEnded() {
				zeroFloat32(v.resampleData[0])
			} else {
				v.source.GetAudio(v.resampleData[0], SampleGranularity)
			}
			if v.srcOffset >= SampleGranularity*FixpointOne {
				v.srcOffset -= SampleGranularity * FixpointOne
			} else {
				v.srcOffset = 0
			}
			if !ticking {
				v.filter.run(v.resampleData[0], SampleGranularity, v.channels, v.sampleRate, v.streamTime)
			}
		} else {
			v.leftoverSamples = 0
		}

		writesamples := (SampleGranularity*FixpointOne-v.srcOffset)/stepFixed + 1
		lastIdx := (v.srcOffset + (writesamples-1)*stepFixed) >> FixpointFracBits
		if lastIdx >= SampleGranularity {
			writesamples--
		}

		if writesamples+uint32(outofs) > uint32(aSamples) {
			v.leftoverSamples = writesamples + uint32(outofs) - uint32(aSamples)
			writesamples = uint32(aSamples) - uint32(outofs)
		}

		if writesamples > 0 && !ticking {
			for ch := 0; ch < v.channels; ch++ {
				cur := v.resampleData[0][ch*SampleGranularity : (ch+1)*SampleGranularity]
				prev := v.resampleData[1][ch*SampleGranularity : (ch+1)*SampleGranularity]
				resample(cur, prev, scratch[ch][outofs:outofs+int(writesamples)], v.srcOffset, stepFixed, mode)
			}
		}

		outofs += int(writesamples)
		v.srcOffset += writesamples * stepFixed
	}

	if !ticking {
		v.panRamp(scratch, accum, aSamples)
	}

	if !v.has(flagLooping) && v.source.HasEnded() {
		v.ended = true
	}
}

// panRamp implements §4.3 step 4: per-sample linear pan interpolation,
// summing scratch (this voice's resampled output) into accum (the bus's
// planar accumulation buffer, shared across all active voices this tick).
func (v *voice) panRamp(scratch, accum [][]float32, aSamples int) {
	lEnd := v.channelVolume[0] * v.overallVolume
	rEnd := v.channelVolume[1] * v.overallVolume
	lStart := v.currentChannelVolume[0]
	rStart := v.currentChannelVolume[1]

	for i := 0; i < aSamples; i++ {
		var frac float32
		if aSamples > 1 {
			frac = float32(i) / float32(aSamples-1)
		} else {
			frac = 1
		}
		lg := lStart + (lEnd-lStart)*frac
		rg := rStart + (rEnd-rStart)*frac

		sLeft := scratch[0][i]
		var sRight float32
		if v.channels == 2 {
			sRight = scratch[1][i]
		} else {
			sRight = sLeft
		}
		accum[0][i] += sLeft * lg
		accum[1][i] += sRight * rg
	}

	v.currentChannelVolume[0] = lEnd
	v.currentChannelVolume[1] = rEnd
}

func zeroFloat32(s []float32) {
	for i := range s {
		s[i] = 0
	}
}
