// Package source provides concrete mixer.Source implementations: decoded
// WAV and MP3 files, and a synthetic tone generator.
package source

import (
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	voicemixer "github.com/cbegin/voicemixer"
)

// WAV decodes a PCM WAV file into a mixer.Source. It requires an
// io.ReadSeeker because go-audio/wav seeks to read chunk headers, and
// again so Rewind can reopen the stream for looping.
type WAV struct {
	r        io.ReadSeeker
	dec      *wav.Decoder
	channels int
	rate     float32
	bitDepth int

	intBuf *goaudio.IntBuffer
	ended  bool
}

// NewWAV decodes r's WAV header and returns a ready-to-play Source.
func NewWAV(r io.ReadSeeker) (*WAV, voicemixer.Result) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, voicemixer.FileLoadFailed
	}
	dec.ReadInfo()
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, voicemixer.FileLoadFailed
	}
	return &WAV{
		r:        r,
		dec:      dec,
		channels: int(dec.NumChans),
		rate:     float32(dec.SampleRate),
		bitDepth: int(dec.BitDepth),
	}, voicemixer.NoError
}

func (w *WAV) Channels() int       { return w.channels }
func (w *WAV) SampleRate() float32 { return w.rate }
func (w *WAV) HasEnded() bool      { return w.ended }

// GetAudio implements mixer.Source: it decodes samples frames of
// interleaved PCM and deinterleaves+normalizes them into out's
// channel-planar layout.
func (w *WAV) GetAudio(out []float32, samples int) {
	need := samples * w.channels
	if w.intBuf == nil || cap(w.intBuf.Data) < need {
		w.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, need),
			Format: &goaudio.Format{NumChannels: w.channels, SampleRate: int(w.rate)},
		}
	}
	w.intBuf.Data = w.intBuf.Data[:need]

	n, err := w.dec.PCMBuffer(w.intBuf)
	framesRead := n / w.channels

	maxVal := float32(int(1) << (w.bitDepth - 1))
	for ch := 0; ch < w.channels; ch++ {
		base := ch * samples
		for i := 0; i < framesRead; i++ {
			out[base+i] = float32(w.intBuf.Data[i*w.channels+ch]) / maxVal
		}
		for i := framesRead; i < samples; i++ {
			out[base+i] = 0
		}
	}
	if framesRead < samples || err != nil {
		w.ended = true
	}
}

// Rewind implements mixer.Seeker by reopening the decoder at the start of
// the underlying stream.
func (w *WAV) Rewind() voicemixer.Result {
	if _, err := w.r.Seek(0, io.SeekStart); err != nil {
		return voicemixer.UnknownError
	}
	dec := wav.NewDecoder(w.r)
	if !dec.IsValidFile() {
		return voicemixer.UnknownError
	}
	dec.ReadInfo()
	w.dec = dec
	w.ended = false
	return voicemixer.NoError
}
