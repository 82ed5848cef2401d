// Package visualize taps an *mixer.Engine's post-mix output and turns it
// into a magnitude spectrum, for VU meters / spectrum analyzer UIs.
package visualize

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	voicemixer "github.com/cbegin/voicemixer"
)

// Spectrum computes a magnitude spectrum from an Engine's wave-data tap.
// It owns a fixed-size FFT plan and its input/output/magnitude buffers, none
// of which are touched by the mixer thread — Spectrum only ever reads a
// copy handed back by Engine.GetWaveData.
type Spectrum struct {
	engine *voicemixer.Engine
	plan   *algofft.Plan[complex128]
	size   int
	input  []complex128
	output []complex128
	magDB  []float64
}

// NewSpectrum builds a Spectrum analyzer with an fftSize-point FFT. fftSize
// must be a size algo-fft's Plan64 supports (a power of two).
func NewSpectrum(engine *voicemixer.Engine, fftSize int) (*Spectrum, error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("visualize: fft plan: %w", err)
	}
	return &Spectrum{
		engine: engine,
		plan:   plan,
		size:   fftSize,
		input:  make([]complex128, fftSize),
		output: make([]complex128, fftSize),
		magDB:  make([]float64, fftSize/2+1),
	}, nil
}

// Update pulls the engine's most recent mixed block, downmixes it to mono,
// windows and transforms it, and refreshes the magnitude-in-dB spectrum
// returned by MagnitudeDB. It is a no-op if the engine has no wave data
// buffered yet (i.e. it wasn't built with mixer.EnableVisualization) or
// hasn't mixed a full fftSize-sample block yet.
func (s *Spectrum) Update() bool {
	wave := s.engine.GetWaveData()
	frames := len(wave) / 2
	if frames < s.size {
		return false
	}
	// use the most recent fftSize frames
	start := frames - s.size
	for i := 0; i < s.size; i++ {
		l := wave[(start+i)*2]
		r := wave[(start+i)*2+1]
		mono := float64(l+r) * 0.5
		w := hannWindow(i, s.size)
		s.input[i] = complex(mono*w, 0)
	}

	if err := s.plan.Forward(s.output, s.input); err != nil {
		return false
	}

	for i := range s.magDB {
		mag := cmplx.Abs(s.output[i]) / float64(s.size)
		if mag < 1e-12 {
			mag = 1e-12
		}
		s.magDB[i] = 20 * math.Log10(mag)
	}
	return true
}

// MagnitudeDB returns the last computed magnitude spectrum, in dBFS, one
// entry per bin from DC to Nyquist inclusive.
func (s *Spectrum) MagnitudeDB() []float64 { return s.magDB }

func hannWindow(i, n int) float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
}
