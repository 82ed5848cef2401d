package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	voicemixer "github.com/cbegin/voicemixer"
	"github.com/cbegin/voicemixer/internal/backend"
	"github.com/cbegin/voicemixer/internal/effects"
	"github.com/cbegin/voicemixer/internal/source"
)

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		wavPath    = flag.String("wav", "", "path to a WAV file to play")
		mp3Path    = flag.String("mp3", "", "path to an MP3 file to play")
		toneHz     = flag.Float64("tone", 0, "play a synthetic sine tone at this frequency instead of a file")
		volume     = flag.Float64("volume", 1.0, "voice volume scalar")
		pan        = flag.Float64("pan", 0, "voice pan, -1 (left) to +1 (right)")
		loop       = flag.Bool("loop", false, "loop the voice")
		reverb     = flag.Bool("reverb", false, "add a reverb filter to the voice")
		duration   = flag.Duration("duration", 5*time.Second, "how long to play before exiting")
	)
	flag.Parse()

	src, err := resolveSource(*wavPath, *mp3Path, *toneHz, *sampleRate)
	if err != nil {
		log.Fatal(err)
	}

	engine := voicemixer.NewEngine(float32(*sampleRate),
		voicemixer.WithPrereservedScratch(4096),
		voicemixer.WithFlags(voicemixer.EnableVisualization),
	)

	handle, res := engine.Play(src, float32(*volume), float32(*pan))
	if !res.Ok() {
		log.Fatal(res)
	}
	if *loop {
		engine.SetLooping(handle, true)
	}
	if *reverb {
		engine.SetVoiceFilter(handle, 0, effects.ReverbFactory(*sampleRate, 0.6, 0.35, 0.3))
	}

	dev, res := backend.Open(engine, backend.WithBufferSize(2048))
	if !res.Ok() {
		log.Fatal(res)
	}
	defer dev.Close()

	watch := engine.Watch()
	timeout := time.After(*duration)
	for {
		select {
		case ev := <-watch:
			switch ev.Kind {
			case voicemixer.EventVoiceEnded:
				fmt.Println("voice ended")
				return
			case voicemixer.EventVoiceStopped:
				fmt.Println("voice stopped")
				return
			}
		case <-timeout:
			return
		}
	}
}

func resolveSource(wavPath, mp3Path string, toneHz float64, sampleRate int) (voicemixer.Source, error) {
	switch {
	case strings.TrimSpace(wavPath) != "":
		f, err := os.Open(wavPath)
		if err != nil {
			return nil, err
		}
		src, res := source.NewWAV(f)
		if !res.Ok() {
			return nil, res
		}
		return src, nil
	case strings.TrimSpace(mp3Path) != "":
		f, err := os.Open(mp3Path)
		if err != nil {
			return nil, err
		}
		src, res := source.NewMP3(f)
		if !res.Ok() {
			return nil, res
		}
		return src, nil
	case toneHz > 0:
		return source.NewTone(toneHz, float32(sampleRate), -1), nil
	default:
		return source.NewTone(440, float32(sampleRate), -1), nil
	}
}
