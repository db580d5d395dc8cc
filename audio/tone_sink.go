// Package audio plays pulse notes through the system speaker
package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/parameter"
)

// Sentinel errors
var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrUnknownNote    = errors.New("unknown note")
	ErrVoiceLimit     = errors.New("voice limit reached")
)

// output is the playback device, the speaker in production
type output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (speakerOutput) Play(s beep.Streamer)                          { speaker.Play(s) }
func (speakerOutput) Lock()                                          { speaker.Lock() }
func (speakerOutput) Unlock()                                        { speaker.Unlock() }

// ToneSink plays one synthesized note per pulse through a shared mixer
// Implements engine.AudioSink
type ToneSink struct {
	mu          sync.Mutex
	config      *Config
	sampleRate  beep.SampleRate
	cache       *toneCache
	mixer       *beep.Mixer
	out         output
	initialized bool

	muted   atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
}

var _ engine.AudioSink = (*ToneSink)(nil)

// NewToneSink creates a sink, cfg nil uses DefaultConfig
func NewToneSink(cfg *Config) *ToneSink {
	return newToneSink(cfg, speakerOutput{})
}

func newToneSink(cfg *Config, out output) *ToneSink {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	sr := beep.SampleRate(cfg.SampleRate)
	ts := &ToneSink{
		config:     cfg,
		sampleRate: sr,
		cache:      newToneCache(sr),
		mixer:      &beep.Mixer{},
		out:        out,
	}
	ts.muted.Store(!cfg.Enabled)
	return ts
}

// Initialize renders all tones and opens the speaker
func (ts *ToneSink) Initialize() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.initialized {
		return nil
	}

	if err := ts.cache.preload(); err != nil {
		return fmt.Errorf("render tones: %w", err)
	}
	if err := ts.out.Init(ts.sampleRate, ts.sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	ts.out.Play(ts.mixer)
	ts.initialized = true
	return nil
}

// Play starts note at volume (0-1, scaled by master volume) and returns immediately
// A muted sink accepts and discards
func (ts *ToneSink) Play(note engine.Note, volume float64) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if !ts.initialized {
		return ErrNotInitialized
	}
	if ts.muted.Load() {
		return nil
	}

	buf, err := ts.cache.get(int(note))
	if err != nil {
		return fmt.Errorf("play note %d: %w", note, err)
	}

	gain := min(max(volume, 0), 1) * ts.config.MasterVolume
	voice := &effects.Gain{Streamer: buf.Streamer(0, buf.Len()), Gain: gain - 1}

	ts.out.Lock()
	defer ts.out.Unlock()
	if ts.mixer.Len() >= parameter.MaxVoices {
		ts.dropped.Add(1)
		return ErrVoiceLimit
	}
	ts.mixer.Add(voice)
	ts.played.Add(1)
	return nil
}

// Close silences every sounding tone
func (ts *ToneSink) Close() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if !ts.initialized {
		return
	}

	ts.out.Lock()
	ts.mixer.Clear()
	ts.out.Unlock()

	// beep has no speaker teardown, an empty mixer plays silence
	ts.initialized = false
}

// ToggleMute flips mute, returns true if sound is now on
func (ts *ToneSink) ToggleMute() bool {
	m := !ts.muted.Load()
	ts.muted.Store(m)
	return !m
}

// IsMuted returns current mute state
func (ts *ToneSink) IsMuted() bool {
	return ts.muted.Load()
}

// Voices returns the number of tones still sounding
func (ts *ToneSink) Voices() int {
	ts.out.Lock()
	defer ts.out.Unlock()
	return ts.mixer.Len()
}

// Stats returns played and dropped counts
func (ts *ToneSink) Stats() (played, dropped uint64) {
	return ts.played.Load(), ts.dropped.Load()
}
