package defender

import (
	"math"

	"github.com/vovakirdan/dos-defender/internal/core"
)

// frameScale converts elapsed milliseconds into reference frames.
func frameScale(deltaMs, frameReferenceMs float64) float64 {
	if frameReferenceMs <= 0 {
		return 0
	}
	return deltaMs / frameReferenceMs
}

// movePlayer applies the held intent and clamps the ship to the playfield.
func movePlayer(p *Player, scale, fieldW float64) {
	p.Box.X += p.Intent * p.Speed * scale
	p.Box.X = core.ClampF(p.Box.X, 0, fieldW-p.Box.W)
}

// placePlayer pins the ship to the bottom band and clamps it horizontally.
func placePlayer(p *Player, fieldW, fieldH, bottomMargin float64) {
	p.Box.Y = fieldH - p.Box.H - bottomMargin
	p.Box.X = core.ClampF(p.Box.X, 0, fieldW-p.Box.W)
}

// moveProjectile advances a shot along its owner's direction.
func moveProjectile(p *Projectile, scale float64) {
	if p.Owner == OwnerEnemy {
		p.Box.Y += p.Speed * scale
		return
	}
	p.Box.Y -= p.Speed * scale
}

// moveEnemy integrates the enemy position for its movement pattern.
func moveEnemy(e *Enemy, scale, fieldW float64) {
	e.Box.Y += e.Speed * scale

	switch e.Movement.Pattern {
	case PatternBounce:
		e.Box.X += e.Movement.Direction * (e.Speed / 2) * scale
		maxX := fieldW - e.Box.W
		if e.Box.X < 0 {
			e.Box.X = 0
			e.Movement.Direction = 1
		} else if e.Box.X > maxX {
			e.Box.X = math.Max(0, maxX)
			e.Movement.Direction = -1
		}
	case PatternSine:
		e.Box.X = e.Movement.OriginX + e.Movement.Amplitude*math.Sin(e.Box.Y*e.Movement.Frequency)
	}
}

// movePowerUp drops a pickup toward the bottom.
func movePowerUp(p *PowerUp, scale float64) {
	p.Box.Y += p.Speed * scale
}

// moveParticle drifts, shrinks and fades a particle.
func moveParticle(p *Particle, scale, shrinkRate, fadeRate float64) {
	p.X += p.VX * scale
	p.Y += p.VY * scale
	p.Size = math.Max(0, p.Size-shrinkRate*scale)
	p.Opacity = math.Max(0, p.Opacity-fadeRate*scale)
}
