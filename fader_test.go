package mixer

import "testing"

func TestFaderRampsLinearly(t *testing.T) {
	var f Fader
	f.Set(0, 10, 0, 1)
	if !f.Active() {
		t.Fatal("fader should be active right after Set")
	}
	if got := f.Get(0); got != 0 {
		t.Errorf("Get(0) = %v, want 0", got)
	}
	if got := f.Get(0.5); got != 5 {
		t.Errorf("Get(0.5) = %v, want 5", got)
	}
	if got := f.Get(1); got != 10 {
		t.Errorf("Get(1) = %v, want 10", got)
	}
	if f.Active() {
		t.Fatal("fader should have deactivated once it reached t1")
	}
	if got := f.Get(5); got != 10 {
		t.Errorf("Get after completion = %v, want 10 (held)", got)
	}
}

func TestFaderDegenerateSetIsImmediatelyInactive(t *testing.T) {
	var f Fader
	f.Set(3, 3, 0, 0)
	if f.Active() {
		t.Fatal("a zero-length ramp should be inactive immediately")
	}
	if got := f.Get(100); got != 3 {
		t.Errorf("Get = %v, want 3", got)
	}
}

func TestFaderClampsBeforeStart(t *testing.T) {
	var f Fader
	f.Set(1, 2, 10, 20)
	if got := f.Get(0); got != 1 {
		t.Errorf("Get before t0 = %v, want 1 (from)", got)
	}
}

func TestSchedulerFiresExactlyOnce(t *testing.T) {
	var s Scheduler
	s.Set(5)
	if !s.Armed() {
		t.Fatal("scheduler should be armed after Set")
	}
	if s.Poll(4) {
		t.Fatal("scheduler fired before its time")
	}
	if !s.Poll(5) {
		t.Fatal("scheduler should fire at its time")
	}
	if s.Armed() {
		t.Fatal("scheduler should be disarmed after firing")
	}
	if s.Poll(6) {
		t.Fatal("scheduler fired a second time")
	}
}

func TestSchedulerClear(t *testing.T) {
	var s Scheduler
	s.Set(5)
	s.Clear()
	if s.Armed() {
		t.Fatal("scheduler should not be armed after Clear")
	}
	if s.Poll(100) {
		t.Fatal("a cleared scheduler must never fire")
	}
}
