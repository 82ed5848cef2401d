package source

import (
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	voicemixer "github.com/cbegin/voicemixer"
)

// MP3 decodes an MP3 stream into a mixer.Source. go-mp3 always decodes to
// 16-bit little-endian stereo PCM regardless of the source file's own
// channel count.
type MP3 struct {
	dec   *gomp3.Decoder
	rate  float32
	buf   []byte
	ended bool
}

// NewMP3 wraps r in a go-mp3 decoder.
func NewMP3(r io.Reader) (*MP3, voicemixer.Result) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, voicemixer.FileLoadFailed
	}
	return &MP3{
		dec:  dec,
		rate: float32(dec.SampleRate()),
	}, voicemixer.NoError
}

func (m *MP3) Channels() int       { return 2 }
func (m *MP3) SampleRate() float32 { return m.rate }
func (m *MP3) HasEnded() bool      { return m.ended }

// GetAudio implements mixer.Source: it reads samples frames of interleaved
// 16-bit stereo PCM and deinterleaves+normalizes into out's channel-planar
// layout.
func (m *MP3) GetAudio(out []float32, samples int) {
	need := samples * 2 * 2 // frames * channels * bytes-per-sample
	if cap(m.buf) < need {
		m.buf = make([]byte, need)
	}
	m.buf = m.buf[:need]

	n, err := io.ReadFull(m.dec, m.buf)
	framesRead := n / 4 // 2 channels * 2 bytes

	for i := 0; i < framesRead; i++ {
		l := int16(uint16(m.buf[4*i]) | uint16(m.buf[4*i+1])<<8)
		r := int16(uint16(m.buf[4*i+2]) | uint16(m.buf[4*i+3])<<8)
		out[i] = float32(l) / 32768.0
		out[samples+i] = float32(r) / 32768.0
	}
	for i := framesRead; i < samples; i++ {
		out[i] = 0
		out[samples+i] = 0
	}
	if framesRead < samples || (err != nil && err != io.ErrUnexpectedEOF) {
		m.ended = true
	}
}
