package defender

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/dos-defender/internal/config"
	"github.com/vovakirdan/dos-defender/internal/core"
)

// SpawnDirector injects a level's quota of enemies on the spawn timer.
type SpawnDirector struct {
	curve   *config.LevelCurve
	enemies config.EnemyConfig
	rng     *rand.Rand

	level   int
	quota   int
	spawned int
}

// NewSpawnDirector creates a director drawing randomness from rng.
func NewSpawnDirector(cfg config.DefenderConfig, rng *rand.Rand) *SpawnDirector {
	return &SpawnDirector{
		curve:   config.NewLevelCurve(cfg),
		enemies: cfg.Enemies,
		rng:     rng,
		level:   1,
	}
}

// Begin resets the counters for a level.
func (d *SpawnDirector) Begin(level int) {
	d.level = level
	d.quota = d.curve.Quota(level)
	d.spawned = 0
}

// Arm schedules the spawn timer with the level's interval. It does nothing
// once the quota has been spawned.
func (d *SpawnDirector) Arm(sched *Scheduler, now time.Time) {
	if d.Exhausted() {
		return
	}
	interval := d.curve.SpawnInterval(d.level)
	sched.Schedule(SlotSpawn, now, interval, interval)
}

// Spawned returns how many enemies this level has produced.
func (d *SpawnDirector) Spawned() int { return d.spawned }

// Quota returns how many enemies this level produces in total.
func (d *SpawnDirector) Quota() int { return d.quota }

// Exhausted reports whether the whole quota has been spawned.
func (d *SpawnDirector) Exhausted() bool {
	return d.spawned >= d.quota
}

// Fire handles one spawn timer firing. It returns the new enemy, or nil when
// the quota is already exhausted or the concurrency cap blocked the spawn.
// The timer is cancelled as soon as the quota has been reached.
func (d *SpawnDirector) Fire(sched *Scheduler, live int, fieldW float64, now time.Time) *Enemy {
	if d.Exhausted() {
		sched.Cancel(SlotSpawn)
		return nil
	}
	if live >= d.curve.MaxConcurrent() {
		return nil
	}

	e := d.newEnemy(fieldW, now)
	d.spawned++
	if d.Exhausted() {
		sched.Cancel(SlotSpawn)
	}
	return e
}

// newEnemy rolls a fresh enemy just above the playfield.
func (d *SpawnDirector) newEnemy(fieldW float64, now time.Time) *Enemy {
	w, h := d.enemies.Width, d.enemies.Height
	maxX := math.Max(0, fieldW-w)
	x := d.rng.Float64() * maxX

	e := &Enemy{
		Box:          core.NewRect(x, -h, w, h),
		Shape:        EnemyShape(d.rng.Intn(int(shapeCount))),
		Speed:        d.curve.EnemySpeed(d.level),
		FireInterval: msDuration(d.enemies.FireIntervalMs),
	}

	pattern := MovementPattern(d.rng.Intn(int(patternCount)))
	e.Movement = Movement{Pattern: pattern}
	switch pattern {
	case PatternBounce:
		e.Movement.Direction = 1
		if d.rng.Intn(2) == 0 {
			e.Movement.Direction = -1
		}
	case PatternSine:
		amp := d.enemies.MinAmplitude + d.rng.Float64()*(d.enemies.MaxAmplitude-d.enemies.MinAmplitude)
		// The drift must stay inside the playfield; shrink it on narrow fields.
		amp = math.Min(amp, maxX/2)
		e.Movement.Amplitude = amp
		e.Movement.Frequency = d.enemies.MinFrequency + d.rng.Float64()*(d.enemies.MaxFrequency-d.enemies.MinFrequency)
		e.Movement.OriginX = core.ClampF(x, amp, maxX-amp)
		e.Box.X = e.Movement.OriginX + amp*math.Sin(e.Box.Y*e.Movement.Frequency)
	}

	if d.rng.Float64() < d.curve.ShooterChance(d.level) {
		e.Shooter = true
		jitter := 0.5 + d.rng.Float64()
		e.NextFireAt = now.Add(time.Duration(float64(e.FireInterval) * jitter))
	}
	return e
}
