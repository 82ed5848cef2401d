// Package backend adapts an *mixer.Engine to a pull-based platform audio
// device via ebitengine's audio subsystem (itself backed by ebitengine/oto).
package backend

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"

	voicemixer "github.com/cbegin/voicemixer"
)

// defaultBufferSize is the device callback block size, in frames, used when
// no WithBufferSize option is given.
const defaultBufferSize = 4096

// SampleSource is the pull interface the stream reader drives: Process
// fills dst (interleaved stereo float32) with exactly len(dst)/2 frames.
type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal definite end of stream.
// When Finished returns true, the stream returns io.EOF on the next Read.
// mixer.Engine never finishes on its own (voices come and go, the engine
// itself doesn't), so Device never implements this; it exists for sources
// the caller might layer on top, same as the teacher's eventWrapper.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// StreamReader turns a SampleSource into an io.ReadCloser of raw float32LE
// PCM bytes, the format ebitengine's audio.Context.NewPlayerF32 consumes.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		u := math.Float32bits(r.buf[i])
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	n := frames * 8
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return n, io.EOF
	}
	return n, nil
}

func (r *StreamReader) Close() error { return nil }

var (
	contextOnce sync.Once
	context     *ebitaudio.Context
	contextErr  error
	contextRate int
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		contextRate = sampleRate
		context = ebitaudio.NewContext(sampleRate)
	})
	if contextErr != nil {
		return nil, contextErr
	}
	if contextRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", contextRate, sampleRate)
	}
	return context, nil
}

// engineSource adapts an *mixer.Engine to SampleSource: Process pulls
// exactly one mix tick worth of interleaved stereo samples.
type engineSource struct {
	engine *voicemixer.Engine
}

func (s engineSource) Process(dst []float32) {
	s.engine.Mix(dst, len(dst)/2)
}

// Option configures Open.
type Option func(*config)

type config struct {
	bufferSize int
}

// WithBufferSize overrides the device callback block size, in frames. The
// default is 4096; callers wanting lower latency at the risk of more
// underrun-prone platforms can request 2048.
func WithBufferSize(frames int) Option {
	return func(c *config) {
		if frames > 0 {
			c.bufferSize = frames
		}
	}
}

// Device is an open audio output stream pulling from an Engine.
type Device struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

// Open opens a device at engine's sample rate and starts it playing
// immediately. The options are applied in order, so with several
// WithBufferSize options the last one wins; only one player is constructed,
// and a failure returns UnknownError without trying another size. The
// configured buffer size is not passed on to the player or to StreamReader:
// ebitengine's player itself decides how it chunks reads from StreamReader.
func Open(engine *voicemixer.Engine, preferred ...Option) (*Device, voicemixer.Result) {
	cfg := config{bufferSize: defaultBufferSize}
	for _, opt := range preferred {
		opt(&cfg)
	}

	ctx, err := sharedContext(int(engine.SampleRate()))
	if err != nil {
		return nil, voicemixer.UnknownError
	}

	reader := NewStreamReader(engineSource{engine: engine})
	player, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, voicemixer.UnknownError
	}
	player.Play()

	return &Device{player: player, reader: reader}, voicemixer.NoError
}

func (d *Device) Pause()  { d.player.Pause() }
func (d *Device) Resume() { d.player.Play() }

func (d *Device) IsPlaying() bool { return d.player.IsPlaying() }

// Position returns how much audio the device has actually played back,
// which lags Engine.StreamTime by the device's internal buffering.
func (d *Device) Position() time.Duration { return d.player.Position() }

func (d *Device) Close() error {
	d.player.Pause()
	d.player.Close()
	return d.reader.Close()
}
