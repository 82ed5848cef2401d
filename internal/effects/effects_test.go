package effects

import (
	"math"
	"testing"
)

func TestDelayProducesOutput(t *testing.T) {
	d := NewDelay(44100, 100, 0.5, 0, 0.5)
	// Feed a pulse and check delayed output appears
	d.Process(1.0, 1.0)
	for i := 0; i < 4409; i++ { // ~100ms at 44100Hz
		d.Process(0, 0)
	}
	l, r := d.Process(0, 0)
	if math.Abs(float64(l)) < 0.01 || math.Abs(float64(r)) < 0.01 {
		t.Errorf("expected delayed output, got l=%f r=%f", l, r)
	}
}

func TestReverbProducesOutput(t *testing.T) {
	r := NewReverb(44100, 0.5, 0.7, 0.5)
	// Feed impulse
	r.Process(1.0, 1.0)
	// After some samples, reverb tail should be present
	var maxOut float32
	for i := 0; i < 10000; i++ {
		l, _ := r.Process(0, 0)
		if l > maxOut {
			maxOut = l
		}
	}
	if maxOut < 0.001 {
		t.Error("expected reverb tail")
	}
}

func TestDistortionClips(t *testing.T) {
	d := NewDistortion(44100, 10, 0.5, 0)
	l, r := d.Process(0.5, 0.5)
	// With high pregain, tanh should compress the signal
	if math.Abs(float64(l)) > 1.0 || math.Abs(float64(r)) > 1.0 {
		t.Error("distortion output should be bounded")
	}
	if math.Abs(float64(l)) < 0.01 {
		t.Error("expected non-zero distortion output")
	}
}

func TestChainAppliesEffectsInOrder(t *testing.T) {
	c := NewChain(
		NewDistortion(44100, 2, 1, 0),
		NewDelay(44100, 10, 0, 0, 0.5),
	)
	l, r := c.Process(0.5, 0.5)
	if l == 0 || r == 0 {
		t.Error("chain should produce output")
	}
}

func TestEQ3BandUnityGain(t *testing.T) {
	eq := NewEQ3Band(44100, 1.0, 1.0, 1.0, 300, 3000)
	// With unity gains, output should approximate input after warmup
	for i := 0; i < 1000; i++ {
		eq.Process(0.5, 0.5)
	}
	l, r := eq.Process(0.5, 0.5)
	if math.Abs(float64(l)-0.5) > 0.1 || math.Abs(float64(r)-0.5) > 0.1 {
		t.Errorf("expected ~0.5 with unity gains, got l=%f r=%f", l, r)
	}
}

func TestCompressorReducesLoud(t *testing.T) {
	c := NewCompressor(44100, -10, 4, 1, 50, 0)
	// Feed loud signal repeatedly to let envelope settle
	var out float32
	for i := 0; i < 1000; i++ {
		out, _ = c.Process(1.0, 1.0)
	}
	if out >= 1.0 {
		t.Errorf("compressor should reduce loud signals, got %f", out)
	}
}

// The tests below drive the effects through AsFilter/Factory, the planar
// mixer.Filter adapter the engine actually calls, rather than the raw
// per-sample Effector contract exercised above.

func TestAsFilterStereoMatchesPerSampleProcessing(t *testing.T) {
	const n = 8
	left := []float32{0.1, 0.2, -0.3, 0.4, -0.5, 0.6, 0.25, -0.1}
	right := []float32{0.05, -0.15, 0.35, -0.45, 0.5, -0.2, 0.1, 0.3}

	direct := NewDistortion(44100, 4, 0.8, 0)
	wantL := make([]float32, n)
	wantR := make([]float32, n)
	for i := 0; i < n; i++ {
		wantL[i], wantR[i] = direct.Process(left[i], right[i])
	}

	buf := make([]float32, 2*n)
	copy(buf[:n], left)
	copy(buf[n:], right)
	filter := AsFilter(NewDistortion(44100, 4, 0.8, 0))
	filter.Process(buf, n, 2, 44100, 0)

	for i := 0; i < n; i++ {
		if buf[i] != wantL[i] || buf[n+i] != wantR[i] {
			t.Fatalf("sample %d: got L=%v R=%v, want L=%v R=%v", i, buf[i], buf[n+i], wantL[i], wantR[i])
		}
	}
}

func TestAsFilterMonoDuplicatesChannelAndCollapses(t *testing.T) {
	const n = 4
	samples := []float32{0.2, -0.3, 0.4, -0.1}

	direct := NewDistortion(44100, 4, 0.8, 0)
	want := make([]float32, n)
	for i := 0; i < n; i++ {
		l, _ := direct.Process(samples[i], samples[i])
		want[i] = l
	}

	buf := append([]float32{}, samples...)
	filter := AsFilter(NewDistortion(44100, 4, 0.8, 0))
	filter.Process(buf, n, 1, 44100, 0)

	for i := 0; i < n; i++ {
		if buf[i] != want[i] {
			t.Fatalf("sample %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestAsFilterResetDelegatesToEffector(t *testing.T) {
	// A one-sample delay line: without Reset, the next read would return the
	// sample just written.
	d := NewDelay(44100, 0, 0.5, 0, 0.5)
	filter := AsFilter(d)
	filter.Process([]float32{1, 1}, 1, 2, 44100, 0)

	filter.Reset()

	l, r := d.Process(0, 0)
	if l != 0 || r != 0 {
		t.Fatalf("after Reset, delay line should read back silence, got l=%v r=%v", l, r)
	}
}

func TestFactoryProducesIndependentInstances(t *testing.T) {
	factory := DelayFactory(44100, 50, 0.3, 0, 0.5)
	f1 := factory()
	f2 := factory()

	ef1, ok1 := f1.(*effectorFilter)
	ef2, ok2 := f2.(*effectorFilter)
	if !ok1 || !ok2 {
		t.Fatal("factory should produce *effectorFilter instances")
	}
	if ef1.e == ef2.e {
		t.Fatal("each factory call should build a fresh Effector instance, not share one")
	}
}
