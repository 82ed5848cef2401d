package mixer

// ResampleMode selects the interpolation kernel used by resample. The
// teacher's C++ ancestor selects this at build time via a preprocessor
// switch; here it is a runtime Engine option, which is the idiomatic Go
// equivalent and lets tests exercise both kernels against the same build.
type ResampleMode int

const (
	ResamplePoint  ResampleMode = iota // nearest-neighbor
	ResampleLinear                     // linear interpolation with one-sample lookback
)

// resample converts a SampleGranularity-sized source block (plus its
// predecessor, for linear lookback across the ping-pong boundary) into an
// arbitrary-length destination block.
//
// srcOffset is the fixed-point read position within cur, in units of
// 1/FixpointOne source samples. stepFixed is the fixed-point per-output-
// sample advance. Both must already satisfy the invariant that every
// resulting read index p = (srcOffset+i*stepFixed)>>FixpointFracBits stays
// inside [0, SampleGranularity) — callers are responsible for the
// writesamples bookkeeping in §4.3 that guarantees this.
func resample(cur, prev []float32, dst []float32, srcOffset uint32, stepFixed uint32, mode ResampleMode) {
	switch mode {
	case ResamplePoint:
		resamplePoint(cur, dst, srcOffset, stepFixed)
	default:
		resampleLinear(cur, prev, dst, srcOffset, stepFixed)
	}
}

func resamplePoint(cur []float32, dst []float32, srcOffset uint32, stepFixed uint32) {
	offset := srcOffset
	for i := range dst {
		p := offset >> FixpointFracBits
		if p >= uint32(len(cur)) {
			p = uint32(len(cur)) - 1 // defensive clamp; indicates a bookkeeping bug upstream
		}
		dst[i] = cur[p]
		offset += stepFixed
	}
}

const fixpointMask = FixpointOne - 1

func resampleLinear(cur, prev []float32, dst []float32, srcOffset uint32, stepFixed uint32) {
	offset := srcOffset
	n := uint32(len(cur))
	for i := range dst {
		p := offset >> FixpointFracBits
		frac := offset & fixpointMask
		if p >= n {
			p = n - 1
		}
		var s1 float32
		if p == 0 {
			s1 = prev[len(prev)-1]
		} else {
			s1 = cur[p-1]
		}
		s2 := cur[p]
		dst[i] = s1 + (s2-s1)*float32(frac)*(1.0/float32(FixpointOne))
		offset += stepFixed
	}
}
