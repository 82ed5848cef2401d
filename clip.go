package mixer

// clipSample applies the §4.7 soft-saturation or hard-clip curve, scaled by
// postClipScaler. roundoff selects the soft curve.
func clipSample(x float32, roundoff bool, postClipScaler float32) float32 {
	var s float32
	if roundoff {
		switch {
		case x <= -1.65:
			s = -0.9862875
		case x >= 1.65:
			s = 0.9862875
		default:
			s = 0.87*x - 0.1*x*x*x
		}
	} else {
		switch {
		case x < -1:
			s = -1
		case x > 1:
			s = 1
		default:
			s = x
		}
	}
	return s * postClipScaler
}

// clip applies §4.7 to a planar two-channel buffer of aSamples frames per
// channel, ramping the volume multiplier linearly from volume0 to volume1
// across the block, and writes the result into dst (also planar, same
// layout). src and dst may alias.
func clip(dst, src []float32, aSamples int, volume0, volume1 float32, roundoff bool, postClipScaler float32) {
	for ch := 0; ch < 2; ch++ {
		base := ch * aSamples
		for i := 0; i < aSamples; i++ {
			var v float32
			if aSamples <= 1 {
				v = volume1
			} else {
				frac := float32(i) / float32(aSamples-1)
				v = volume0 + (volume1-volume0)*frac
			}
			dst[base+i] = clipSample(src[base+i]*v, roundoff, postClipScaler)
		}
	}
}

// interlace converts a planar two-channel block (111222, channel-major) of
// aSamples frames into interleaved L,R,L,R order.
func interlace(dst, src []float32, aSamples int) {
	for i := 0; i < aSamples; i++ {
		dst[i*2] = src[i]
		dst[i*2+1] = src[aSamples+i]
	}
}

// deinterlace converts an interleaved L,R,L,R block of aSamples frames into
// planar two-channel (111222, channel-major).
func deinterlace(dst, src []float32, aSamples int) {
	for i := 0; i < aSamples; i++ {
		dst[i] = src[i*2]
		dst[aSamples+i] = src[i*2+1]
	}
}
