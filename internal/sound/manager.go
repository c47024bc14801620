// Package sound plays the interface sounds: typewriter clicks and the
// chime used by the contact form and quantum mode.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(44100)
	// tapSize holds about 180ms of output.
	tapSize = 8192
	// levelWindow is the sample window used by Level.
	levelWindow = 2048
)

// Config controls audio output.
type Config struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // in beep volume units, base 2; 0 is unchanged
}

// Manager owns the speaker, a mixer for one-shot sounds and the output tap.
// A disabled or uninitialised manager ignores every call.
type Manager struct {
	mu          sync.Mutex
	cfg         Config
	log         *zap.Logger
	mixer       *beep.Mixer
	tap         *Tap
	initialized bool
}

func NewManager(cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	mixer := &beep.Mixer{}
	return &Manager{
		cfg:   cfg,
		log:   log,
		mixer: mixer,
		tap:   NewTap(mixer, tapSize),
	}
}

// Initialize opens the audio device. Failing to open it leaves the manager
// silent.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(&effects.Volume{
		Streamer: m.tap,
		Base:     2,
		Volume:   m.cfg.Volume,
	})
	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// PlayClick plays a keystroke tick.
func (m *Manager) PlayClick() {
	m.play(beep.Take(sampleRate.N(40*time.Millisecond), NewClickGenerator(sampleRate, 1800)))
}

// PlayChime plays the two-note chime.
func (m *Manager) PlayChime() {
	m.play(beep.Take(sampleRate.N(600*time.Millisecond), NewChimeGenerator(sampleRate)))
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Level is the recent output loudness mapped to 0..1.
func (m *Manager) Level() float64 {
	m.mu.Lock()
	ok := m.initialized
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return min(m.tap.RMS(levelWindow)*4, 1)
}

// Close stops all sounds.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}
