package mixer

import "testing"

func TestClipSampleHardClip(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{0.5, 0.5},
		{1.5, 1},
		{-1.5, -1},
	}
	for _, c := range cases {
		got := clipSample(c.in, false, 1)
		if got != c.want {
			t.Errorf("clipSample(%v, hard) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClipSamplePostScalerAppliesAfterClip(t *testing.T) {
	got := clipSample(2, false, 0.5)
	if got != 0.5 {
		t.Errorf("clipSample(2, hard, scaler=0.5) = %v, want 0.5", got)
	}
}

func TestClipSampleSoftSaturationStaysInRange(t *testing.T) {
	for _, in := range []float32{-3, -1.65, -1, 0, 1, 1.65, 3} {
		got := clipSample(in, true, 1)
		if got < -1.0001 || got > 1.0001 {
			t.Errorf("clipSample(%v, soft) = %v, out of [-1,1]", in, got)
		}
	}
}

func TestClipAppliesVolumeRamp(t *testing.T) {
	const n = 4
	src := make([]float32, 2*n)
	for i := range src {
		src[i] = 1
	}
	dst := make([]float32, 2*n)
	clip(dst, src, n, 0, 1, false, 1)
	for ch := 0; ch < 2; ch++ {
		base := ch * n
		if dst[base] >= dst[base+n-1] {
			t.Errorf("channel %d: expected increasing ramp, got %v .. %v", ch, dst[base], dst[base+n-1])
		}
	}
	if dst[0] != 0 {
		t.Errorf("dst[0] = %v, want 0 (volume0)", dst[0])
	}
}

func TestInterlaceDeinterlaceRoundTrip(t *testing.T) {
	const n = 5
	planar := []float32{1, 2, 3, 4, 5, 10, 20, 30, 40, 50}
	interleaved := make([]float32, 2*n)
	interlace(interleaved, planar, n)

	want := []float32{1, 10, 2, 20, 3, 30, 4, 40, 5, 50}
	for i := range want {
		if interleaved[i] != want[i] {
			t.Errorf("interleaved[%d] = %v, want %v", i, interleaved[i], want[i])
		}
	}

	back := make([]float32, 2*n)
	deinterlace(back, interleaved, n)
	for i := range planar {
		if back[i] != planar[i] {
			t.Errorf("round trip back[%d] = %v, want %v", i, back[i], planar[i])
		}
	}
}
