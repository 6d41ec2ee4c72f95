package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate  = beep.SampleRate(44100)
	eatFreq     = 880.0
	eatDuration = 60 * time.Millisecond
)

// Config selects the eat sound and its volume.
type Config struct {
	Volume  float64 `yaml:"volume"`   // 0 mutes, 1 is unity gain
	EatFile string  `yaml:"eat_file"` // optional mp3 played instead of the tone
}

// Silent is a sink that plays nothing.
type Silent struct{}

func (Silent) PlayEat() {}

// Player plays sound effects through the system speaker.
type Player struct {
	mu     sync.Mutex
	eat    *beep.Buffer
	volume float64
	closed bool
	logger *log.Logger
}

// NewPlayer initialises the speaker and prepares the eat sound.
func NewPlayer(cfg Config, logger *log.Logger) (*Player, error) {
	eat, err := loadEatSound(cfg.EatFile)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}

	logger.Debug("audio ready", "sampleRate", int(sampleRate), "samples", eat.Len())
	return &Player{
		eat:    eat,
		volume: cfg.Volume,
		logger: logger,
	}, nil
}

// PlayEat queues the eat sound on the speaker mixer.
func (p *Player) PlayEat() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.volume <= 0 {
		return
	}
	speaker.Play(withVolume(p.eat.Streamer(0, p.eat.Len()), p.volume))
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	speaker.Close()
}

// EatTone is the generated eat sound: a short sine beep.
func EatTone(rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, eatFreq)
	if err != nil {
		return nil, err
	}
	return beep.Take(rate.N(eatDuration), sine), nil
}

func loadEatSound(path string) (*beep.Buffer, error) {
	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})

	if path == "" {
		tone, err := EatTone(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("failed to build eat tone: %w", err)
		}
		buffer.Append(tone)
		return buffer, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open eat sound: %w", err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode eat sound %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	buffer.Append(s)
	return buffer, nil
}

// withVolume scales s linearly; math.Log2(0) is -Inf so 0 is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
