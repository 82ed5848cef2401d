package mixer

// Filter is the generic filter capability (§6): an in-place, planar audio
// processor. buf is laid out channel-planar, channels slabs of samples
// each — the same layout the bus mixer accumulates into and clip/interlace
// consume, so a filter never has to guess (§9 open question (b)).
type Filter interface {
	Process(buf []float32, samples, channels int, sampleRate float32, streamTime float64)
	Reset()
}

// FilterFactory builds a fresh Filter instance. The engine owns instances;
// the caller owns factories (definitions), the same split the teacher draws
// between an effects.Effector and whatever produced it in buildEffectChain.
type FilterFactory func() Filter

// PlanarSlice returns per-channel views (not copies) into a planar buffer
// of channels slabs of samples frames each.
func PlanarSlice(buf []float32, channels, samples int) [][]float32 {
	out := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		out[c] = buf[c*samples : (c+1)*samples]
	}
	return out
}

// filterSlots is the fixed-size array of optional filter instances shared by
// Voice's per-voice chain and Engine's output chain.
type filterSlots [FiltersPerStream]struct {
	factory FilterFactory
	inst    Filter
}

// set installs factory into slot, destroying whatever instance was there.
func (s *filterSlots) set(slot int, factory FilterFactory) Result {
	if slot < 0 || slot >= FiltersPerStream {
		return InvalidParameter
	}
	s[slot].factory = factory
	if factory == nil {
		s[slot].inst = nil
		return NoError
	}
	s[slot].inst = factory()
	return NoError
}

// run applies every installed slot, in slot order, to buf.
func (s *filterSlots) run(buf []float32, samples, channels int, sampleRate float32, streamTime float64) {
	for i := range s {
		if s[i].inst != nil {
			s[i].inst.Process(buf, samples, channels, sampleRate, streamTime)
		}
	}
}

// reset clears per-instance filter state without destroying instances.
func (s *filterSlots) reset() {
	for i := range s {
		if s[i].inst != nil {
			s[i].inst.Reset()
		}
	}
}
