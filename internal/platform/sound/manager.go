// Package sound plays synthesized effects for simulation events through the
// system audio device.
package sound

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dos-defender/internal/games/defender"
)

const sampleRate = beep.SampleRate(44100)

// CueFor maps a simulation event to its sound effect.
// An absorbed hit is followed by an acquired event, which plays the cue.
func CueFor(e defender.Event) (Cue, bool) {
	switch e.Type {
	case defender.EventShotFired:
		return CueShot, true
	case defender.EventEnemyShotFired:
		return CueEnemyShot, true
	case defender.EventExplosion:
		return CueExplosion, true
	case defender.EventPlayerHit:
		return CuePlayerHit, true
	case defender.EventPowerUpAcquired:
		return CuePowerUp, true
	case defender.EventPowerUpExpired:
		return CuePowerDown, true
	case defender.EventLevelUp:
		return CueLevelUp, true
	case defender.EventGameOver:
		return CueGameOver, true
	default:
		return 0, false
	}
}

// Manager mixes effects onto the speaker. A Manager that failed to
// initialize stays silent, so callers never need to check for audio.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	logger      *log.Logger
	initialized bool
	muted       bool
}

// NewManager creates a manager. Call Initialize before playing.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the audio device.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	m.logger.Debug("audio initialized", "sample_rate", int(sampleRate))
	return nil
}

// SetMuted silences or restores playback.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether playback is silenced.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Play starts the effect for an event, if it has one.
func (m *Manager) Play(e defender.Event) {
	cue, ok := CueFor(e)
	if !ok {
		return
	}
	m.PlayCue(cue)
}

// PlayCue starts an effect.
func (m *Manager) PlayCue(cue Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return
	}
	s := cue.Streamer(sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the audio device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}
