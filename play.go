package mixer

// Play starts source playing immediately at the given volume and pan, and
// returns a handle for subsequent control calls. volume is clamped to
// [0, +inf); pan is clamped to [-1, 1].
func (e *Engine) Play(source Source, volume, pan float32) (VoiceHandle, Result) {
	return e.play(source, volume, pan, 0, false)
}

// PlayClocked is Play, but the voice's first delaySamples output samples
// are silence. This is how a caller schedules several voices to start in
// exact sample-accurate sync despite being issued on different control
// calls (§4.9) — delaySamples is relative to when this call is made, not to
// any other voice's delay.
func (e *Engine) PlayClocked(source Source, volume, pan float32, delaySamples uint32) (VoiceHandle, Result) {
	return e.play(source, volume, pan, delaySamples, false)
}

func (e *Engine) play(source Source, volume, pan float32, delaySamples uint32, paused bool) (VoiceHandle, Result) {
	if source == nil {
		return invalidVoiceHandle, InvalidParameter
	}
	if volume < 0 {
		volume = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.allocVoice()
	if !ok {
		return invalidVoiceHandle, OutOfMemory
	}
	v := e.voices[id]
	v.reset(source, source.Channels(), source.SampleRate(), delaySamples)
	v.setVolume = volume
	v.overallVolume = volume
	v.volumeFader.Set(float64(volume), float64(volume), 0, 0)
	v.setPan(pan)
	if paused {
		v.set(flagPaused)
	}
	return encodeVoiceHandle(id, v.generation), NoError
}

// Seek is only meaningful for sources that implement Seeker; it rewinds the
// source and resets the voice's resampler state, per §6.
func (e *Engine) Seek(h VoiceHandle) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	seeker, ok := v.source.(Seeker)
	if !ok {
		return NotImplemented
	}
	if r := seeker.Rewind(); !r.Ok() {
		return r
	}
	v.srcOffset = 0
	v.leftoverSamples = 0
	v.ended = false
	return NoError
}

// SetPause pauses or unpauses a voice immediately, bypassing any scheduled
// pause/unpause.
func (e *Engine) SetPause(h VoiceHandle, paused bool) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	if paused {
		v.set(flagPaused)
	} else {
		v.clear(flagPaused)
	}
	return NoError
}

// SchedulePause arms a pause to take effect once the engine's stream clock
// reaches atStreamTime.
func (e *Engine) SchedulePause(h VoiceHandle, atStreamTime float64) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	v.pauseScheduler.Set(atStreamTime)
	return NoError
}

// ScheduleStop arms the voice to stop (and its slot to be reclaimed) once
// the engine's stream clock reaches atStreamTime.
func (e *Engine) ScheduleStop(h VoiceHandle, atStreamTime float64) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	v.stopScheduler.Set(atStreamTime)
	return NoError
}

// SetLooping enables or disables looping; a looping voice's source is
// rewound via Seeker when it runs out instead of ending the voice.
func (e *Engine) SetLooping(h VoiceHandle, looping bool) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	if looping {
		v.set(flagLooping)
	} else {
		v.clear(flagLooping)
	}
	return NoError
}

// SetInaudibleBehavior marks whether a voice that the selector judges
// inaudible should keep ticking its source/resampler state (mustTick=true,
// §4.5's must-live class) or go fully idle while inaudible.
func (e *Engine) SetInaudibleBehavior(h VoiceHandle, inaudible, mustTick bool) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	if inaudible {
		v.set(flagInaudible)
	} else {
		v.clear(flagInaudible)
	}
	if mustTick {
		v.set(flagInaudibleTick)
	} else {
		v.clear(flagInaudibleTick)
	}
	return NoError
}

// SetVolume sets a voice's target volume immediately, disarming any
// in-flight volume fade.
func (e *Engine) SetVolume(h VoiceHandle, volume float32) Result {
	if volume < 0 {
		volume = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	v.setVolume = volume
	v.overallVolume = volume
	v.volumeFader.Set(float64(volume), float64(volume), 0, 0)
	return NoError
}

// FadeVolume arms a linear volume ramp from the voice's current volume to
// to, spanning [streamTime, streamTime+over).
func (e *Engine) FadeVolume(h VoiceHandle, to float32, over float64) Result {
	if to < 0 {
		to = 0
	}
	if over < 0 {
		return InvalidParameter
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	from := v.overallVolume
	v.setVolume = to
	v.volumeFader.Set(float64(from), float64(to), e.streamTime, e.streamTime+over)
	return NoError
}

// SetPan sets a voice's target pan immediately, disarming any in-flight pan
// fade. pan is clamped to [-1, 1].
func (e *Engine) SetPan(h VoiceHandle, pan float32) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	v.setPan(pan)
	return NoError
}

// FadePan arms a linear pan ramp from the voice's current pan to to,
// spanning [streamTime, streamTime+over).
func (e *Engine) FadePan(h VoiceHandle, to float32, over float64) Result {
	if over < 0 {
		return InvalidParameter
	}
	if to < -1 {
		to = -1
	} else if to > 1 {
		to = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	from := v.panFader.Get(e.streamTime)
	v.pan = to
	v.panFader.Set(from, float64(to), e.streamTime, e.streamTime+over)
	return NoError
}

// SetRelativePlaySpeed scales a voice's effective source sample rate,
// speeding up or slowing down playback (and pitch) by mul. mul must be
// positive.
func (e *Engine) SetRelativePlaySpeed(h VoiceHandle, mul float32) Result {
	if mul <= 0 {
		return InvalidParameter
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	v.relativeSpeed = mul
	v.relativePlaySpeedFader.Set(float64(mul), float64(mul), 0, 0)
	return NoError
}

// GetVolume returns the target volume last set via SetVolume/FadeVolume/
// Play, independent of any in-flight fade.
func (e *Engine) GetVolume(h VoiceHandle) (float32, Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return 0, InvalidParameter
	}
	return v.setVolume, NoError
}

// GetOverallVolume returns the voice's current, post-fade volume.
func (e *Engine) GetOverallVolume(h VoiceHandle) (float32, Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return 0, InvalidParameter
	}
	return v.overallVolume, NoError
}

// SetFilter installs factory into the engine's output filter chain slot.
// Pass a nil factory to clear the slot.
func (e *Engine) SetFilter(slot int, factory FilterFactory) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outputFilter.set(slot, factory)
}

// SetVoiceFilter installs factory into voice h's per-voice filter chain
// slot, run before the voice is summed into the bus. Pass a nil factory to
// clear the slot.
func (e *Engine) SetVoiceFilter(h VoiceHandle, slot int, factory FilterFactory) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.resolveLocked(h)
	if v == nil {
		return InvalidParameter
	}
	return v.filter.set(slot, factory)
}

// SetGlobalVolume sets the engine's master volume immediately.
func (e *Engine) SetGlobalVolume(volume float32) {
	if volume < 0 {
		volume = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globalVolume = volume
	e.globalVolumeFader.Set(float64(volume), float64(volume), 0, 0)
}

// FadeGlobalVolume arms a linear ramp of the master volume to to, spanning
// [streamTime, streamTime+over).
func (e *Engine) FadeGlobalVolume(to float32, over float64) Result {
	if to < 0 {
		to = 0
	}
	if over < 0 {
		return InvalidParameter
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	from := e.globalVolumeFader.Get(e.streamTime)
	e.globalVolume = to
	e.globalVolumeFader.Set(from, float64(to), e.streamTime, e.streamTime+over)
	return NoError
}
