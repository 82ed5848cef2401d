package mixer

import "testing"

func makeTestVoices(n int) []*voice {
	vs := make([]*voice, n)
	for i := range vs {
		vs[i] = newVoice(i)
	}
	return vs
}

func playVoice(v *voice, overallVolume float32) {
	v.reset(nil, 2, 48000, 0)
	v.source = stubSource{} // live() requires a non-nil source
	v.overallVolume = overallVolume
}

type stubSource struct{}

func (stubSource) Channels() int           { return 2 }
func (stubSource) SampleRate() float32     { return 48000 }
func (stubSource) GetAudio([]float32, int) {}
func (stubSource) HasEnded() bool          { return false }

func TestSelectActiveVoicesUnderCapReturnsAll(t *testing.T) {
	vs := makeTestVoices(4)
	for i, v := range vs {
		playVoice(v, float32(i))
	}
	out := make([]int, 10)
	n := selectActiveVoices(vs, len(vs), 10, out)
	if n != 4 {
		t.Fatalf("got %d active voices, want 4", n)
	}
}

func TestSelectActiveVoicesSkipsPaused(t *testing.T) {
	vs := makeTestVoices(3)
	for _, v := range vs {
		playVoice(v, 1)
	}
	vs[1].set(flagPaused)
	out := make([]int, 10)
	n := selectActiveVoices(vs, len(vs), 10, out)
	if n != 2 {
		t.Fatalf("got %d active voices, want 2 (paused voice excluded)", n)
	}
	for _, id := range out[:n] {
		if id == 1 {
			t.Fatal("paused voice 1 should not be selected")
		}
	}
}

func TestSelectActiveVoicesSkipsFullyInaudible(t *testing.T) {
	vs := makeTestVoices(3)
	for _, v := range vs {
		playVoice(v, 1)
	}
	vs[0].set(flagInaudible) // inaudible, no must-tick -> fully idle this tick
	out := make([]int, 10)
	n := selectActiveVoices(vs, len(vs), 10, out)
	if n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
}

func TestSelectActiveVoicesMustLiveAlwaysIncluded(t *testing.T) {
	vs := makeTestVoices(3)
	for i, v := range vs {
		playVoice(v, float32(i))
	}
	vs[0].set(flagInaudible | flagInaudibleTick) // must-live despite low volume
	out := make([]int, 2)
	n := selectActiveVoices(vs, len(vs), 2, out)
	if n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
	if out[0] != 0 {
		t.Fatalf("must-live voice 0 should be first in out, got %v", out[:n])
	}
}

func TestSelectActiveVoicesTopKByVolume(t *testing.T) {
	vs := makeTestVoices(5)
	vols := []float32{0.1, 0.9, 0.5, 0.8, 0.2}
	for i, v := range vs {
		playVoice(v, vols[i])
	}
	out := make([]int, 3)
	n := selectActiveVoices(vs, len(vs), 3, out)
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
	selected := map[int]bool{}
	for _, id := range out[:n] {
		selected[id] = true
	}
	// the 3 loudest are voices 1 (0.9), 3 (0.8), 2 (0.5)
	for _, want := range []int{1, 2, 3} {
		if !selected[want] {
			t.Errorf("expected voice %d (volume %v) to be selected, got %v", want, vols[want], out[:n])
		}
	}
}

func TestSelectActiveVoicesMustLiveAtCapTakesOnlyMustLive(t *testing.T) {
	vs := makeTestVoices(4)
	for i, v := range vs {
		playVoice(v, float32(i))
		v.set(flagInaudible | flagInaudibleTick)
	}
	out := make([]int, 2)
	n := selectActiveVoices(vs, len(vs), 2, out)
	if n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
}
