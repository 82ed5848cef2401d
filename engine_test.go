package mixer

import "testing"

func TestEnginePlayAndMixProducesAudio(t *testing.T) {
	e := NewEngine(48000)
	h, res := e.Play(&constantSource{channels: 2, rate: 48000, value: 1}, 1, 0)
	if !res.Ok() {
		t.Fatalf("Play failed: %v", res)
	}
	if !e.IsValidVoiceHandle(h) {
		t.Fatal("handle should be valid right after Play")
	}

	dst := make([]float32, 2*128)
	e.Mix(dst, 128)

	nonzero := false
	for _, v := range dst {
		if v != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Fatal("Mix of a single audible voice produced silence")
	}
}

func TestEngineVoiceEndsAndFreesSlot(t *testing.T) {
	e := NewEngine(48000)
	src := &constantSource{channels: 2, rate: 48000, value: 1}
	h, _ := e.Play(src, 1, 0)
	src.ended = true

	dst := make([]float32, 2*64)
	e.Mix(dst, 64)

	if e.IsValidVoiceHandle(h) {
		t.Fatal("handle should be invalidated once the voice's source ends")
	}
	if e.VoiceCount() != 0 {
		t.Fatalf("VoiceCount() = %d, want 0 after the only voice ended", e.VoiceCount())
	}
}

func TestEngineLoopingVoiceSurvivesSourceExhaustion(t *testing.T) {
	e := NewEngine(48000)
	src := &constantSource{channels: 2, rate: 48000, value: 1}
	h, _ := e.Play(src, 1, 0)
	e.SetLooping(h, true)
	src.ended = true

	dst := make([]float32, 2*64)
	e.Mix(dst, 64)

	if !e.IsValidVoiceHandle(h) {
		t.Fatal("a looping voice must not be freed just because its source briefly reports ended")
	}
}

func TestEnginePauseStopsAudioWithoutFreeingSlot(t *testing.T) {
	e := NewEngine(48000)
	h, _ := e.Play(&constantSource{channels: 2, rate: 48000, value: 1}, 1, 0)
	e.SetPause(h, true)

	dst := make([]float32, 2*64)
	e.Mix(dst, 64)

	for _, v := range dst {
		if v != 0 {
			t.Fatal("a paused voice should not contribute to the mix")
		}
	}
	if !e.IsValidVoiceHandle(h) {
		t.Fatal("pausing should not invalidate the handle")
	}
}

func TestEngineStaleHandleAfterSlotReuse(t *testing.T) {
	e := NewEngine(48000, WithMaxActiveVoices(4))
	src := &constantSource{channels: 2, rate: 48000, value: 1}
	h1, _ := e.Play(src, 1, 0)
	src.ended = true
	dst := make([]float32, 2*8)
	e.Mix(dst, 8) // frees h1's slot

	src2 := &constantSource{channels: 2, rate: 48000, value: 1}
	h2, _ := e.Play(src2, 1, 0)

	if e.IsValidVoiceHandle(h1) {
		t.Fatal("h1 must be invalid once its slot has been reused")
	}
	if !e.IsValidVoiceHandle(h2) {
		t.Fatal("h2, the new occupant, should be valid")
	}
}

func TestEngineInvalidHandleReturnsInvalidParameter(t *testing.T) {
	e := NewEngine(48000)
	if res := e.SetPause(VoiceHandle(9999), true); res != InvalidParameter {
		t.Fatalf("SetPause on a garbage handle = %v, want InvalidParameter", res)
	}
	if res := e.SetVolume(invalidVoiceHandle, 1); res != InvalidParameter {
		t.Fatalf("SetVolume on the zero handle = %v, want InvalidParameter", res)
	}
}

func TestEngineMaxActiveVoicesCapsSelection(t *testing.T) {
	e := NewEngine(48000, WithMaxActiveVoices(2))
	for i := 0; i < 5; i++ {
		e.Play(&constantSource{channels: 2, rate: 48000, value: 1}, float32(i), 0)
	}
	dst := make([]float32, 2*32)
	e.Mix(dst, 32)
	if e.activeCount != 2 {
		t.Fatalf("activeCount = %d, want 2 (maxActiveVoices)", e.activeCount)
	}
}

func TestEngineFadeVolumeRampsTowardTarget(t *testing.T) {
	e := NewEngine(48000)
	h, _ := e.Play(&constantSource{channels: 2, rate: 48000, value: 1}, 0, 0)
	e.FadeVolume(h, 1, 1.0)

	before, _ := e.GetOverallVolume(h)
	if before != 0 {
		t.Fatalf("overall volume before any Mix = %v, want 0", before)
	}

	dst := make([]float32, 2*100)
	for i := 0; i < 10; i++ {
		e.Mix(dst, 100)
	}
	after, _ := e.GetOverallVolume(h)
	if after <= before {
		t.Fatalf("overall volume after fading = %v, want > %v", after, before)
	}
}

func TestEngineSetVolumeIsClampedNonNegative(t *testing.T) {
	e := NewEngine(48000)
	h, _ := e.Play(&constantSource{channels: 2, rate: 48000, value: 1}, 1, 0)
	e.SetVolume(h, -5)
	got, _ := e.GetVolume(h)
	if got != 0 {
		t.Fatalf("GetVolume after SetVolume(-5) = %v, want 0 (clamped)", got)
	}
}
