package defender

import "math"

// EntityKind identifies what an EntityView draws.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota
	KindEnemy
	KindPlayerShot
	KindEnemyShot
	KindPowerUp
	KindParticle
)

// String returns the name of the entity kind.
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPlayerShot:
		return "player-shot"
	case KindEnemyShot:
		return "enemy-shot"
	case KindPowerUp:
		return "powerup"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// EntityView is the read-only rendering data of one entity.
// Variant carries the enemy shape or the power-up kind.
type EntityView struct {
	Kind    EntityKind `msgpack:"k"`
	Variant int        `msgpack:"v,omitempty"`
	Pattern int        `msgpack:"p,omitempty"`
	X       float64    `msgpack:"x"`
	Y       float64    `msgpack:"y"`
	W       float64    `msgpack:"w"`
	H       float64    `msgpack:"h"`
	Opacity float64    `msgpack:"o"`
	Flash   bool       `msgpack:"f,omitempty"`
}

// Snapshot is the complete observable state after a tick: the HUD values and
// every entity in draw order. It shares no memory with the simulation.
type Snapshot struct {
	Frame     uint64 `msgpack:"frame"`
	State     State  `msgpack:"state"`
	Score     int    `msgpack:"score"`
	Lives     int    `msgpack:"lives"`
	Level     int    `msgpack:"level"`
	HighScore int    `msgpack:"high_score"`

	// Whole seconds left on each buff, rounded up. Zero when inactive.
	RapidFireSeconds int `msgpack:"rapid_fire_s"`
	ShieldSeconds    int `msgpack:"shield_s"`

	Spawned int `msgpack:"spawned"`
	Quota   int `msgpack:"quota"`

	FieldW float64 `msgpack:"field_w"`
	FieldH float64 `msgpack:"field_h"`

	Entities []EntityView `msgpack:"entities"`
}

// Count returns the number of entities of the given kind.
func (snap Snapshot) Count(kind EntityKind) int {
	n := 0
	for _, e := range snap.Entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Player returns the player's view. The player is always the first entity.
func (snap Snapshot) Player() (EntityView, bool) {
	if len(snap.Entities) == 0 || snap.Entities[0].Kind != KindPlayer {
		return EntityView{}, false
	}
	return snap.Entities[0], true
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + uint64(snap.State)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.RapidFireSeconds) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShieldSeconds)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Spawned)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Quota)            //#nosec G115 -- hash computation
	for _, e := range snap.Entities {
		h = h*31 + uint64(e.Kind)
		h = h*31 + uint64(e.Variant) //#nosec G115 -- hash computation
		h = h*31 + uint64(e.Pattern) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
		h = h*31 + math.Float64bits(e.W)
		h = h*31 + math.Float64bits(e.H)
		h = h*31 + math.Float64bits(e.Opacity)
		if e.Flash {
			h = h*31 + 1
		}
	}
	return h
}
