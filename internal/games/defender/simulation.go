// Package defender implements the DOS Defender simulation: a player ship at
// the bottom of a rectangular playfield shoots down waves of descending
// enemies. The simulation is driven by an external frame loop through Tick
// and by discrete input through Command, and is not safe for concurrent use.
package defender

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dos-defender/internal/config"
	"github.com/vovakirdan/dos-defender/internal/core"
)

// HighScoreKey is the storage key of the persisted high score.
const HighScoreKey = "dos-defender.highscore"

var (
	// ErrNegativeDelta is returned by Tick for a negative elapsed time.
	ErrNegativeDelta = errors.New("defender: negative delta time")
	// ErrInvalidDelta is returned by Tick for a NaN or infinite elapsed time.
	ErrInvalidDelta = errors.New("defender: delta time is not finite")
	// ErrInvalidPlayfield is returned by Tick while the playfield has no area.
	ErrInvalidPlayfield = errors.New("defender: playfield must have positive width and height")
)

// KeyValueStore persists integers by key. Implementations must tolerate
// missing keys by returning zero.
type KeyValueStore interface {
	GetInt(key string) (int, error)
	SetInt(key string, value int) error
}

// Playfield reports the current playfield size in playfield units.
// It is polled at the start of every tick.
type Playfield interface {
	Size() (width, height float64)
}

// Field is a resizable Playfield that may be updated from another goroutine.
type Field struct {
	mu   sync.RWMutex
	w, h float64
}

// NewField creates a playfield of the given size.
func NewField(width, height float64) *Field {
	return &Field{w: width, h: height}
}

// Size returns the current size.
func (f *Field) Size() (float64, float64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.w, f.h
}

// Set replaces the size. The simulation picks it up on its next tick.
func (f *Field) Set(width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.w, f.h = width, height
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithClock sets the time source for timers and cooldowns.
func WithClock(c core.Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

// WithStore sets the high score store. Without one the high score only
// lives for the lifetime of the simulation.
func WithStore(st KeyValueStore) Option {
	return func(s *Simulation) { s.store = st }
}

// WithLogger sets the logger for state transitions and store failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithSeed sets the seed of the gameplay random source.
func WithSeed(seed int64) Option {
	return func(s *Simulation) { s.seed = seed }
}

// Simulation is the aggregate root owning the world, the state machine, the
// timers and the run counters.
type Simulation struct {
	cfg    config.DefenderConfig
	field  Playfield
	clock  core.Clock
	store  KeyValueStore
	logger *log.Logger
	seed   int64
	rng    *rand.Rand

	world    *World
	sched    Scheduler
	buffs    *BuffManager
	director *SpawnDirector
	bus      *EventBus

	state     State
	score     int
	lives     int
	level     int
	highScore int

	frame  uint64
	stepAt time.Time // Clock reading of the last simulated step

	fieldW, fieldH float64
}

// New creates a simulation in the Menu state. The configuration is assumed
// valid; see config.DefenderConfig.Validate.
func New(cfg config.DefenderConfig, field Playfield, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:    cfg,
		field:  field,
		clock:  core.SystemClock{},
		logger: log.New(io.Discard),
		seed:   1,
		bus:    NewEventBus(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rng = rand.New(rand.NewSource(s.seed)) //#nosec G404 -- gameplay randomness, not security
	s.buffs = NewBuffManager(cfg.Buffs, &s.sched)
	s.director = NewSpawnDirector(cfg, s.rng)
	s.fieldW, s.fieldH = field.Size()
	s.stepAt = s.clock.Now()
	s.state = StateMenu
	s.resetRun()
	return s
}

// State returns the current game phase.
func (s *Simulation) State() State { return s.state }

// Score returns the run score.
func (s *Simulation) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Simulation) Lives() int { return s.lives }

// Level returns the current level, starting at 1.
func (s *Simulation) Level() int { return s.level }

// HighScore returns the best score known to the simulation.
func (s *Simulation) HighScore() int { return s.highScore }

// World exposes the live entities. Callers must not retain or mutate it.
func (s *Simulation) World() *World { return s.world }

// Subscribe registers a handler that receives every event after the tick
// or command that produced it.
func (s *Simulation) Subscribe(h EventHandler) { s.bus.Subscribe(h) }

// Drain returns the events produced since the previous Drain.
func (s *Simulation) Drain() []Event { return s.bus.Drain() }

// Command applies a discrete input immediately. Commands that are not
// meaningful in the current state are ignored.
func (s *Simulation) Command(cmd core.Command) {
	now := s.clock.Now()
	p := s.world.Player
	steerable := s.state == StatePlaying || s.state == StatePaused

	switch cmd {
	case core.CommandMoveLeftStart:
		if steerable {
			p.press(-1)
		}
	case core.CommandMoveLeftStop:
		if steerable {
			p.release(-1)
		}
	case core.CommandMoveRightStart:
		if steerable {
			p.press(1)
		}
	case core.CommandMoveRightStop:
		if steerable {
			p.release(1)
		}
	case core.CommandFire:
		s.fire(now)
	case core.CommandPause:
		s.togglePause(now)
	case core.CommandConfirm:
		switch s.state {
		case StateMenu:
			s.start(now)
		case StateLevelComplete:
			s.nextLevel(now)
		case StateGameOver:
			s.restart()
		}
	case core.CommandRestart:
		if s.state == StateGameOver {
			s.restart()
		}
	}
	s.bus.Dispatch()
}

// Tick advances the simulation by deltaMs milliseconds of elapsed time.
// Deltas above the configured maximum are clamped. Nothing moves outside
// the Playing state.
func (s *Simulation) Tick(deltaMs float64) (Snapshot, error) {
	if math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) {
		return s.Snapshot(), ErrInvalidDelta
	}
	if deltaMs < 0 {
		return s.Snapshot(), ErrNegativeDelta
	}
	w, h := s.field.Size()
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return s.Snapshot(), fmt.Errorf("%w: got %vx%v", ErrInvalidPlayfield, w, h)
	}
	if w != s.fieldW || h != s.fieldH {
		s.resize(w, h)
	}
	deltaMs = math.Min(deltaMs, s.cfg.Gameplay.MaxDeltaMs)

	now := s.clock.Now()
	s.runTimers(now)
	if s.state == StatePlaying {
		s.frame++
		s.stepAt = now
		s.step(deltaMs, now)
		s.checkLevelComplete()
	}
	s.bus.Dispatch()
	return s.Snapshot(), nil
}

// Snapshot returns the observable state without advancing the simulation.
func (s *Simulation) Snapshot() Snapshot {
	at := s.stepAt
	snap := Snapshot{
		Frame:            s.frame,
		State:            s.state,
		Score:            s.score,
		Lives:            s.lives,
		Level:            s.level,
		HighScore:        s.highScore,
		RapidFireSeconds: ceilSeconds(s.buffs.Remaining(PowerUpRapidFire, at)),
		ShieldSeconds:    ceilSeconds(s.buffs.Remaining(PowerUpShield, at)),
		Spawned:          s.director.Spawned(),
		Quota:            s.director.Quota(),
		FieldW:           s.fieldW,
		FieldH:           s.fieldH,
	}

	w := s.world
	entities := make([]EntityView, 0, 1+w.EntityCount())
	p := w.Player
	player := boxView(KindPlayer, p.Box)
	player.Flash = p.Flashing(at)
	if s.buffs.Active(PowerUpShield) {
		player.Variant = 1
	}
	entities = append(entities, player)
	for _, e := range w.Enemies {
		v := boxView(KindEnemy, e.Box)
		v.Variant = int(e.Shape)
		v.Pattern = int(e.Movement.Pattern)
		entities = append(entities, v)
	}
	for _, shot := range w.PlayerShots {
		entities = append(entities, boxView(KindPlayerShot, shot.Box))
	}
	for _, shot := range w.EnemyShots {
		entities = append(entities, boxView(KindEnemyShot, shot.Box))
	}
	for _, pu := range w.PowerUps {
		v := boxView(KindPowerUp, pu.Box)
		v.Variant = int(pu.Kind)
		entities = append(entities, v)
	}
	for _, pt := range w.Particles {
		v := boxView(KindParticle, pt.Box())
		v.Opacity = pt.Opacity
		entities = append(entities, v)
	}
	snap.Entities = entities
	return snap
}

func boxView(kind EntityKind, r core.Rect) EntityView {
	return EntityView{Kind: kind, X: r.X, Y: r.Y, W: r.W, H: r.H, Opacity: 1}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// step moves every entity and resolves collisions. Each collection is first
// updated as a whole and then partitioned into survivors, so no collection
// is mutated while it is being iterated.
func (s *Simulation) step(deltaMs float64, now time.Time) {
	scale := frameScale(deltaMs, s.cfg.Gameplay.FrameReferenceMs)
	w := s.world
	p := w.Player

	movePlayer(p, scale, s.fieldW)

	for _, shot := range w.PlayerShots {
		moveProjectile(shot, scale)
	}
	w.PlayerShots = retain(w.PlayerShots, func(shot *Projectile) bool {
		return shot.Box.Y > -shot.Box.H
	})

	for _, shot := range w.EnemyShots {
		moveProjectile(shot, scale)
	}
	for _, shot := range w.EnemyShots {
		if s.state != StatePlaying {
			break
		}
		if shot.Box.Intersects(p.Box) {
			shot.consumed = true
			s.hitPlayer(now)
		}
	}
	w.EnemyShots = retain(w.EnemyShots, func(shot *Projectile) bool {
		return !shot.consumed && shot.Box.Y < s.fieldH
	})

	for _, pu := range w.PowerUps {
		movePowerUp(pu, scale)
	}
	for _, pu := range w.PowerUps {
		if s.state != StatePlaying {
			break
		}
		if pu.Box.Intersects(p.Box) {
			pu.collected = true
			s.buffs.Activate(pu.Kind, now)
			s.bus.Emit(Event{Type: EventPowerUpAcquired, Frame: s.frame, Kind: pu.Kind, X: pu.Box.X, Y: pu.Box.Y})
		}
	}
	w.PowerUps = retain(w.PowerUps, func(pu *PowerUp) bool {
		return !pu.collected && pu.Box.Y < s.fieldH
	})

	pc := s.cfg.Particles
	for _, pt := range w.Particles {
		moveParticle(pt, scale, pc.ShrinkRate, pc.FadeRate)
	}
	w.Particles = retain(w.Particles, (*Particle).Alive)

	for _, e := range w.Enemies {
		moveEnemy(e, scale, s.fieldW)
		s.enemyFire(e, now)
	}
	for _, e := range w.Enemies {
		if s.state != StatePlaying {
			break
		}
		if e.Box.Intersects(p.Box) {
			e.destroyed = true
			s.explode(e)
			s.hitPlayer(now)
			continue
		}
		for _, shot := range w.PlayerShots {
			if shot.consumed || !shot.Box.Intersects(e.Box) {
				continue
			}
			shot.consumed = true
			e.destroyed = true
			s.kill(e)
			break
		}
	}
	w.Enemies = retain(w.Enemies, func(e *Enemy) bool {
		return !e.destroyed && e.Box.Y < s.fieldH
	})
	w.PlayerShots = retain(w.PlayerShots, func(shot *Projectile) bool {
		return !shot.consumed
	})
}

// runTimers fires every timer due at now, earliest first.
func (s *Simulation) runTimers(now time.Time) {
	for {
		slot, ok := s.sched.Next(now)
		if !ok {
			return
		}
		if slot == SlotSpawn {
			s.spawn(now)
			continue
		}
		if kind, ok := slotBuff(slot); ok {
			s.buffs.Expire(kind)
			s.bus.Emit(Event{Type: EventPowerUpExpired, Frame: s.frame, Kind: kind})
		}
	}
}

func (s *Simulation) spawn(now time.Time) {
	if s.state != StatePlaying {
		s.sched.Cancel(SlotSpawn)
		return
	}
	e := s.director.Fire(&s.sched, len(s.world.Enemies), s.fieldW, now)
	if e == nil {
		return
	}
	s.world.AddEnemy(e)
	s.logger.Debug("enemy spawned",
		"level", s.level,
		"spawned", s.director.Spawned(),
		"quota", s.director.Quota(),
		"pattern", e.Movement.Pattern,
		"shooter", e.Shooter)
}

func (s *Simulation) fire(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	p := s.world.Player
	if !p.CanFire(now, s.buffs.Active(PowerUpRapidFire)) {
		return
	}
	pc := s.cfg.Projectiles
	x := p.Box.X + p.Box.W/2 - pc.Width/2
	y := p.Box.Y - pc.Height
	s.world.AddProjectile(&Projectile{
		Box:   core.NewRect(x, y, pc.Width, pc.Height),
		Owner: OwnerPlayer,
		Speed: pc.PlayerSpeed,
	})
	p.LastShot = now
	p.hasShot = true
	s.bus.Emit(Event{Type: EventShotFired, Frame: s.frame, X: x, Y: y})
}

func (s *Simulation) enemyFire(e *Enemy, now time.Time) {
	if !e.Shooter || now.Before(e.NextFireAt) || e.Box.Bottom() <= 0 {
		return
	}
	pc := s.cfg.Projectiles
	cx, _ := e.Box.Center()
	x := cx - pc.Width/2
	y := e.Box.Bottom()
	s.world.AddProjectile(&Projectile{
		Box:   core.NewRect(x, y, pc.Width, pc.Height),
		Owner: OwnerEnemy,
		Speed: pc.EnemySpeed,
	})
	e.NextFireAt = now.Add(e.FireInterval)
	s.bus.Emit(Event{Type: EventEnemyShotFired, Frame: s.frame, X: x, Y: y})
}

// hitPlayer resolves one hit on the player. An active shield absorbs it.
func (s *Simulation) hitPlayer(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	p := s.world.Player
	cx, cy := p.Box.Center()
	if s.buffs.Consume(PowerUpShield) {
		s.bus.Emit(Event{Type: EventShieldAbsorbed, Frame: s.frame, Kind: PowerUpShield, X: cx, Y: cy})
		s.bus.Emit(Event{Type: EventPowerUpAcquired, Frame: s.frame, Kind: PowerUpShield, X: cx, Y: cy})
		return
	}
	if s.lives > 0 {
		s.lives--
	}
	p.FlashUntil = now.Add(msDuration(s.cfg.Player.FlashMs))
	s.bus.Emit(Event{Type: EventPlayerHit, Frame: s.frame, X: cx, Y: cy})
	if s.lives == 0 {
		s.gameOver()
	}
}

// kill scores a projectile kill and rolls for a power-up drop.
func (s *Simulation) kill(e *Enemy) {
	s.score += s.cfg.Gameplay.KillScore
	s.explode(e)

	if s.rng.Float64() >= s.cfg.PowerUps.DropChance {
		return
	}
	pc := s.cfg.PowerUps
	cx, cy := e.Box.Center()
	s.world.AddPowerUp(&PowerUp{
		Box:   core.NewRect(cx-pc.Width/2, cy-pc.Height/2, pc.Width, pc.Height),
		Kind:  PowerUpKind(s.rng.Intn(int(powerUpKindCount))),
		Speed: pc.Speed,
	})
}

// explode bursts particles at the enemy center and emits one explosion.
func (s *Simulation) explode(e *Enemy) {
	cx, cy := e.Box.Center()
	pc := s.cfg.Particles
	for range pc.Count {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := pc.Speed * (0.5 + 0.5*s.rng.Float64())
		s.world.AddParticle(&Particle{
			X:       cx,
			Y:       cy,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Size:    pc.Size,
			Opacity: 1,
		})
	}
	s.bus.Emit(Event{Type: EventExplosion, Frame: s.frame, X: cx, Y: cy})
}

func (s *Simulation) checkLevelComplete() {
	if s.state != StatePlaying {
		return
	}
	if !s.director.Exhausted() || s.sched.Active(SlotSpawn) || len(s.world.Enemies) > 0 {
		return
	}
	if !s.setState(StateLevelComplete) {
		return
	}
	s.sched.CancelAll()
	s.buffs.Clear()
	s.world.Player.clearHeld()
	s.bus.Emit(Event{Type: EventLevelUp, Frame: s.frame, Level: s.level, Score: s.score})
	s.logger.Info("level complete", "level", s.level, "score", s.score)
}

func (s *Simulation) gameOver() {
	if !s.setState(StateGameOver) {
		return
	}
	s.sched.CancelAll()
	s.buffs.Clear()
	s.world.Player.clearHeld()
	if s.score > s.highScore {
		s.highScore = s.score
		s.saveHighScore()
	}
	s.bus.Emit(Event{Type: EventGameOver, Frame: s.frame, Level: s.level, Score: s.score})
	s.logger.Info("game over", "level", s.level, "score", s.score, "high_score", s.highScore)
}

func (s *Simulation) start(now time.Time) {
	if !s.setState(StatePlaying) {
		return
	}
	s.beginLevel(now)
}

func (s *Simulation) nextLevel(now time.Time) {
	if !s.setState(StatePlaying) {
		return
	}
	s.level++
	s.beginLevel(now)
}

func (s *Simulation) restart() {
	if !s.setState(StateMenu) {
		return
	}
	s.resetRun()
}

func (s *Simulation) togglePause(now time.Time) {
	switch s.state {
	case StatePlaying:
		s.setState(StatePaused)
		s.sched.Cancel(SlotSpawn)
		s.buffs.Suspend(now)
	case StatePaused:
		s.setState(StatePlaying)
		s.stepAt = now
		s.director.Arm(&s.sched, now)
		s.buffs.Resume(now)
	}
}

// beginLevel clears the playfield and arms the spawn timer for s.level.
func (s *Simulation) beginLevel(now time.Time) {
	s.sched.CancelAll()
	s.buffs.Clear()
	s.world.Reset(s.newPlayer())
	s.director.Begin(s.level)
	s.director.Arm(&s.sched, now)
	s.stepAt = now
	s.logger.Debug("level started",
		"level", s.level,
		"quota", s.director.Quota(),
		"interval", s.director.curve.SpawnInterval(s.level))
}

// resetRun restores the run counters and reloads the high score.
func (s *Simulation) resetRun() {
	s.sched.CancelAll()
	s.buffs.Clear()
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.level = 1
	s.frame = 0
	s.world = NewWorld(s.newPlayer())
	s.director.Begin(s.level)
	s.highScore = s.loadHighScore()
}

func (s *Simulation) setState(to State) bool {
	from := s.state
	if !CanTransition(from, to) {
		s.logger.Debug("ignored state transition", "from", from, "to", to)
		return false
	}
	s.state = to
	s.bus.Emit(Event{Type: EventStateChanged, Frame: s.frame, From: from, To: to})
	s.logger.Debug("state changed", "from", from, "to", to)
	return true
}

func (s *Simulation) newPlayer() *Player {
	pc := s.cfg.Player
	p := &Player{
		Box:          core.NewRect((s.fieldW-pc.Width)/2, 0, pc.Width, pc.Height),
		Speed:        pc.Speed,
		FireInterval: msDuration(pc.FireIntervalMs),
	}
	placePlayer(p, s.fieldW, s.fieldH, pc.BottomMargin)
	return p
}

func (s *Simulation) resize(w, h float64) {
	s.logger.Debug("playfield resized", "width", w, "height", h)
	s.fieldW, s.fieldH = w, h
	placePlayer(s.world.Player, w, h, s.cfg.Player.BottomMargin)
}

func (s *Simulation) loadHighScore() int {
	if s.store == nil {
		return s.highScore
	}
	v, err := s.store.GetInt(HighScoreKey)
	if err != nil {
		s.logger.Warn("failed to read high score", "err", err)
		return s.highScore
	}
	return v
}

func (s *Simulation) saveHighScore() {
	if s.store == nil {
		return
	}
	if err := s.store.SetInt(HighScoreKey, s.highScore); err != nil {
		s.logger.Warn("failed to persist high score", "err", err)
	}
}
