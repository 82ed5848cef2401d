package mixer

// faderState mirrors spec's active ∈ {0 inactive, +1 linear, -1 one-shot
// event}.
type faderState int

const (
	faderInactive faderState = 0
	faderLinear   faderState = 1
	faderEvent    faderState = -1
)

// Fader is a time-parameterized scalar: it ramps linearly from "from" to
// "to" between t0 and t1, then goes inactive (or fires a one-shot event, for
// schedulers). It is evaluated on the mixer thread but mutated only under
// the engine's audio mutex, the same split the teacher's lfo.LFO draws
// between Set (control thread) and Sample (audio thread).
type Fader struct {
	from, to float64
	t0, t1   float64
	state    faderState
}

// Set arms a linear ramp from "from" to "to" spanning [t0, t1).
func (f *Fader) Set(from, to, t0, t1 float64) {
	f.from, f.to, f.t0, f.t1 = from, to, t0, t1
	if t1 <= t0 {
		f.state = faderInactive
		return
	}
	f.state = faderLinear
}

// Active reports whether the fader still has work to do.
func (f *Fader) Active() bool { return f.state == faderLinear }

// Get evaluates the fader at time t, clamped at t1, and deactivates the
// fader once t reaches t1.
func (f *Fader) Get(t float64) float64 {
	if f.state != faderLinear {
		return f.to
	}
	if t >= f.t1 {
		f.state = faderInactive
		return f.to
	}
	if t <= f.t0 {
		return f.from
	}
	frac := (t - f.t0) / (f.t1 - f.t0)
	return f.from + (f.to-f.from)*frac
}

// Scheduler is a one-shot Fader variant used for scheduled pause/stop
// events: it carries no ramp, only a fire time, and exposes exactly one
// "did it just fire" transition so the caller can run the associated side
// effect exactly once.
type Scheduler struct {
	at    float64
	state faderState
}

// Set arms the scheduler to fire at time at.
func (s *Scheduler) Set(at float64) {
	s.at = at
	s.state = faderLinear
}

// Clear disarms the scheduler without firing.
func (s *Scheduler) Clear() {
	s.state = faderInactive
}

// Armed reports whether the scheduler is waiting to fire.
func (s *Scheduler) Armed() bool { return s.state == faderLinear }

// Poll advances the scheduler against the current stream time. It returns
// true exactly once, the first call where t >= the armed fire time, and
// then disarms itself.
func (s *Scheduler) Poll(t float64) bool {
	if s.state != faderLinear {
		return false
	}
	if t >= s.at {
		s.state = faderInactive
		return true
	}
	return false
}
