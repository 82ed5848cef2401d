package mixer

// bus holds the shared, reusable buffers that mixBus needs each tick: the
// two-channel planar accumulator every active voice sums into, and a
// per-voice scratch slab reused across voices (never aliased, since voices
// are mixed one at a time). accumFlat/scratchFlat are laid out channel-major
// (111222), the same layout Filter.Process and clip expect, so the output
// filter chain and clip/interlace can consume accumFlat directly with no
// repacking; accum/scratch are just [][]float32 views into those flats for
// the per-channel indexing voice.mixStep wants.
type bus struct {
	capacity int

	accumFlat   []float32
	scratchFlat []float32

	accum   [][]float32
	scratch [][]float32
}

func newBus(capacity int) *bus {
	b := &bus{}
	b.grow(capacity)
	return b
}

// grow resizes the flat buffers so their channel-slab stride is exactly
// capacity, which callers must keep equal to the aSamples they intend to
// pass to mixBus — the flat layout is only well-formed for downstream
// filters/clip when stride and block length agree. In steady state
// (fixed-size audio callback blocks) this reallocates only on the first
// tick and on WithPrereservedScratch's initial call.
func (b *bus) grow(capacity int) {
	if capacity == b.capacity {
		return
	}
	b.capacity = capacity
	b.accumFlat = make([]float32, 2*capacity)
	b.scratchFlat = make([]float32, 2*capacity)
	b.accum = PlanarSlice(b.accumFlat, 2, capacity)
	b.scratch = PlanarSlice(b.scratchFlat, 2, capacity)
}

// mixBus implements §4.4: it zeroes the planar accumulator, then dispatches
// every voice named in active to mixStep, ticking-only voices included (they
// still need to advance their source/resampler state so they stay in sync,
// they just don't get summed into accum).
func (b *bus) mixBus(voices []*voice, active []int, aSamples int, dstRate float32, mode ResampleMode) {
	for ch := 0; ch < 2; ch++ {
		for i := 0; i < aSamples; i++ {
			b.accum[ch][i] = 0
		}
	}

	for _, id := range active {
		v := voices[id]
		ticking := v.has(flagInaudibleTick)
		v.mixStep(aSamples, b.scratch, b.accum, dstRate, mode, ticking)
	}
}
