package defender

import (
	"time"

	"github.com/vovakirdan/dos-defender/internal/core"
)

// EnemyShape is the cosmetic variant of an enemy. It has no gameplay effect.
type EnemyShape int

const (
	ShapeSquare EnemyShape = iota
	ShapeTriangle
	ShapeDiamond
	shapeCount
)

// String returns the name of the shape.
func (s EnemyShape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	case ShapeDiamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// MovementPattern selects how an enemy integrates its position.
type MovementPattern int

const (
	PatternLinear MovementPattern = iota // Straight descent
	PatternBounce                        // Descent plus wall-to-wall sweep
	PatternSine                          // Descent plus sinusoidal drift around OriginX
	patternCount
)

// String returns the name of the pattern.
func (p MovementPattern) String() string {
	switch p {
	case PatternLinear:
		return "linear"
	case PatternBounce:
		return "bounce"
	case PatternSine:
		return "sine"
	default:
		return "unknown"
	}
}

// Movement is the tagged movement variant with its pattern-specific payload.
// Only the fields of the active pattern are meaningful.
type Movement struct {
	Pattern MovementPattern

	Direction float64 // PatternBounce: -1 or +1

	Amplitude float64 // PatternSine
	Frequency float64 // PatternSine: radians per unit of y
	OriginX   float64 // PatternSine
}

// Owner identifies who fired a projectile.
type Owner int

const (
	OwnerPlayer Owner = iota // Travels up, hits enemies
	OwnerEnemy               // Travels down, hits the player
)

// PowerUpKind identifies a buff pickup.
type PowerUpKind int

const (
	PowerUpRapidFire PowerUpKind = iota
	PowerUpShield
	powerUpKindCount
)

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpRapidFire:
		return "rapid-fire"
	case PowerUpShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Player is the singleton ship controlled by commands.
type Player struct {
	Box    core.Rect
	Speed  float64
	Intent float64 // -1 left, 0 idle, +1 right

	FireInterval time.Duration // Base interval, halved while rapid-fire is active
	LastShot     time.Time
	hasShot      bool

	FlashUntil time.Time // Invulnerable-flash visual; never affects collision

	leftHeld  bool
	rightHeld bool
}

// EffectiveFireInterval returns the cooldown between shots.
func (p *Player) EffectiveFireInterval(rapidFire bool) time.Duration {
	if rapidFire {
		return p.FireInterval / 2
	}
	return p.FireInterval
}

// CanFire reports whether the cooldown has elapsed at now.
func (p *Player) CanFire(now time.Time, rapidFire bool) bool {
	if !p.hasShot {
		return true
	}
	return now.Sub(p.LastShot) >= p.EffectiveFireInterval(rapidFire)
}

// Flashing reports whether the hit flash is visible at now.
func (p *Player) Flashing(now time.Time) bool {
	return now.Before(p.FlashUntil)
}

// press marks a direction as held. The most recent press wins.
func (p *Player) press(dir float64) {
	if dir < 0 {
		p.leftHeld = true
	} else {
		p.rightHeld = true
	}
	p.Intent = dir
}

// clearHeld drops held directions and stops the ship.
func (p *Player) clearHeld() {
	p.leftHeld = false
	p.rightHeld = false
	p.Intent = 0
}

// release clears a held direction and falls back to the other one if held.
func (p *Player) release(dir float64) {
	if dir < 0 {
		p.leftHeld = false
		if p.rightHeld {
			p.Intent = 1
		} else {
			p.Intent = 0
		}
		return
	}
	p.rightHeld = false
	if p.leftHeld {
		p.Intent = -1
	} else {
		p.Intent = 0
	}
}

// Enemy is a descending hostile ship.
type Enemy struct {
	Box      core.Rect
	Shape    EnemyShape
	Movement Movement
	Speed    float64

	Shooter      bool
	FireInterval time.Duration
	NextFireAt   time.Time

	destroyed bool
}

// Projectile is a shot fired by the player or an enemy.
type Projectile struct {
	Box   core.Rect
	Owner Owner
	Speed float64

	consumed bool
}

// PowerUp is a falling buff pickup.
type PowerUp struct {
	Box   core.Rect
	Kind  PowerUpKind
	Speed float64

	collected bool
}

// Particle is cosmetic explosion debris, centered on (X, Y).
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
}

// Alive reports whether the particle is still visible.
func (p *Particle) Alive() bool {
	return p.Size > 0 && p.Opacity > 0
}

// Box returns the particle's bounding box.
func (p *Particle) Box() core.Rect {
	return core.NewRect(p.X-p.Size/2, p.Y-p.Size/2, p.Size, p.Size)
}
