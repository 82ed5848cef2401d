package source

import (
	"math"

	voicemixer "github.com/cbegin/voicemixer"
)

// Tone is a synthetic sine-wave mixer.Source, useful for tests and demos
// that don't want a real audio asset on disk. It never ends unless a
// duration is given.
type Tone struct {
	freq       float64
	rate       float32
	phase      float64
	durSamples int64 // <0 means infinite
	emitted    int64
}

// NewTone returns a mono sine-wave source at freq Hz, sampled at rate Hz.
// If dur is non-negative, the source ends after dur seconds.
func NewTone(freq float64, rate float32, dur float64) *Tone {
	durSamples := int64(-1)
	if dur >= 0 {
		durSamples = int64(dur * float64(rate))
	}
	return &Tone{freq: freq, rate: rate, durSamples: durSamples}
}

func (t *Tone) Channels() int       { return 1 }
func (t *Tone) SampleRate() float32 { return t.rate }

func (t *Tone) HasEnded() bool {
	return t.durSamples >= 0 && t.emitted >= t.durSamples
}

func (t *Tone) GetAudio(out []float32, samples int) {
	step := 2 * math.Pi * t.freq / float64(t.rate)
	for i := 0; i < samples; i++ {
		if t.durSamples >= 0 && t.emitted >= t.durSamples {
			out[i] = 0
			continue
		}
		out[i] = float32(math.Sin(t.phase))
		t.phase += step
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
		t.emitted++
	}
}

// Rewind implements mixer.Seeker, restarting the tone from phase zero.
func (t *Tone) Rewind() voicemixer.Result {
	t.phase = 0
	t.emitted = 0
	return voicemixer.NoError
}
