package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency glides linearly from
// startFreq to endFreq over its duration.
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	wave      WaveType
	rate      beep.SampleRate
	noise     *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding between two frequencies.
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		startFreq: startFreq,
		endFreq:   endFreq,
		duration:  rate.N(duration),
		wave:      wave,
		rate:      rate,
		noise:     rand.New(rand.NewSource(1)), //#nosec G404 -- audio noise
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := range n {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one shaped note.
func tone(startFreq, endFreq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(startFreq, endFreq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate)
}

// Cue identifies a sound effect.
type Cue int

const (
	CueShot Cue = iota
	CueEnemyShot
	CueExplosion
	CuePlayerHit
	CuePowerUp
	CuePowerDown
	CueLevelUp
	CueGameOver
)

// String returns the name of the cue.
func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueEnemyShot:
		return "enemy-shot"
	case CueExplosion:
		return "explosion"
	case CuePlayerHit:
		return "player-hit"
	case CuePowerUp:
		return "powerup"
	case CuePowerDown:
		return "powerdown"
	case CueLevelUp:
		return "level-up"
	case CueGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Streamer builds a fresh streamer for the cue.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueShot:
		return newVolume(tone(880, 440, 80*time.Millisecond, WaveSquare, rate), 0.25)
	case CueEnemyShot:
		return newVolume(tone(320, 200, 90*time.Millisecond, WaveSaw, rate), 0.2)
	case CueExplosion:
		d := 300 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 250*time.Millisecond, rate)
		return newVolume(noise, 0.4)
	case CuePlayerHit:
		return newVolume(tone(160, 60, 250*time.Millisecond, WaveSquare, rate), 0.35)
	case CuePowerUp:
		return newVolume(beep.Seq(
			tone(523.25, 523.25, 60*time.Millisecond, WaveSine, rate),
			tone(659.25, 659.25, 60*time.Millisecond, WaveSine, rate),
			tone(783.99, 783.99, 90*time.Millisecond, WaveSine, rate),
		), 0.3)
	case CuePowerDown:
		return newVolume(tone(440, 220, 150*time.Millisecond, WaveSine, rate), 0.25)
	case CueLevelUp:
		return newVolume(beep.Seq(
			tone(392, 392, 100*time.Millisecond, WaveSquare, rate),
			tone(523.25, 523.25, 100*time.Millisecond, WaveSquare, rate),
			tone(659.25, 659.25, 100*time.Millisecond, WaveSquare, rate),
			tone(783.99, 783.99, 200*time.Millisecond, WaveSquare, rate),
		), 0.25)
	case CueGameOver:
		return newVolume(beep.Seq(
			tone(392, 392, 200*time.Millisecond, WaveSquare, rate),
			tone(329.63, 329.63, 200*time.Millisecond, WaveSquare, rate),
			tone(261.63, 130.81, 500*time.Millisecond, WaveSquare, rate),
		), 0.3)
	default:
		return nil
	}
}
