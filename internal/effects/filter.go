package effects

import (
	voicemixer "github.com/cbegin/voicemixer"
)

// AsFilter adapts a per-sample Effector into a mixer.Filter, running it
// across a planar channel-major buffer one frame at a time. Mono buffers
// are processed as L==R and only the L output is kept, matching how
// voice.mixStep duplicates mono sources across both output channels.
func AsFilter(e Effector) voicemixer.Filter {
	return &effectorFilter{e: e}
}

type effectorFilter struct {
	e Effector
}

func (f *effectorFilter) Process(buf []float32, samples, channels int, sampleRate float32, streamTime float64) {
	if channels == 1 {
		ch := buf[:samples]
		for i := 0; i < samples; i++ {
			l, _ := f.e.Process(ch[i], ch[i])
			ch[i] = l
		}
		return
	}
	left := buf[0:samples]
	right := buf[samples : 2*samples]
	for i := 0; i < samples; i++ {
		left[i], right[i] = f.e.Process(left[i], right[i])
	}
}

func (f *effectorFilter) Reset() { f.e.Reset() }

// Factory wraps a no-argument Effector constructor as a mixer.FilterFactory,
// the split the engine's SetFilter/SetVoiceFilter expect between a filter's
// definition (factory, owned by the caller) and its live instance (owned by
// the engine).
func Factory(newEffector func() Effector) voicemixer.FilterFactory {
	return func() voicemixer.Filter {
		return AsFilter(newEffector())
	}
}

// DelayFactory builds a mixer.FilterFactory for NewDelay with fixed
// parameters.
func DelayFactory(sampleRate int, delayMs float64, feedback, cross, wet float32) voicemixer.FilterFactory {
	return Factory(func() Effector { return NewDelay(sampleRate, delayMs, feedback, cross, wet) })
}

// ReverbFactory builds a mixer.FilterFactory for NewReverb with fixed
// parameters.
func ReverbFactory(sampleRate int, roomSize, feedback, wet float32) voicemixer.FilterFactory {
	return Factory(func() Effector { return NewReverb(sampleRate, roomSize, feedback, wet) })
}

// ChorusFactory builds a mixer.FilterFactory for NewChorus with fixed
// parameters.
func ChorusFactory(sampleRate int, delayMs, feedback, depthMs, rateHz, wet float32) voicemixer.FilterFactory {
	return Factory(func() Effector { return NewChorus(sampleRate, delayMs, feedback, depthMs, rateHz, wet) })
}

// DistortionFactory builds a mixer.FilterFactory for NewDistortion with
// fixed parameters.
func DistortionFactory(sampleRate int, preGain, postGain, lpfCutoff float32) voicemixer.FilterFactory {
	return Factory(func() Effector { return NewDistortion(sampleRate, preGain, postGain, lpfCutoff) })
}

// EQ3BandFactory builds a mixer.FilterFactory for NewEQ3Band with fixed
// parameters.
func EQ3BandFactory(sampleRate int, lowGain, midGain, highGain, lowFreq, highFreq float32) voicemixer.FilterFactory {
	return Factory(func() Effector {
		return NewEQ3Band(sampleRate, lowGain, midGain, highGain, lowFreq, highFreq)
	})
}

// EQ5BandFactory builds a mixer.FilterFactory for NewEQ5Band.
func EQ5BandFactory(sampleRate int) voicemixer.FilterFactory {
	return Factory(func() Effector { return NewEQ5Band(sampleRate) })
}

// CompressorFactory builds a mixer.FilterFactory for NewCompressor with
// fixed parameters.
func CompressorFactory(sampleRate int, thresholdDB, ratio, attackMs, releaseMs, makeupDB float32) voicemixer.FilterFactory {
	return Factory(func() Effector {
		return NewCompressor(sampleRate, thresholdDB, ratio, attackMs, releaseMs, makeupDB)
	})
}
