package config

import (
	"math"
	"time"
)

// LevelCurve calculates per-level spawn and enemy parameters.
type LevelCurve struct {
	spawn   SpawnConfig
	enemies EnemyConfig
}

// NewLevelCurve creates a level curve from the given configuration.
func NewLevelCurve(cfg DefenderConfig) *LevelCurve {
	return &LevelCurve{
		spawn:   cfg.Spawn,
		enemies: cfg.Enemies,
	}
}

// steps returns the number of levels past the first; levels below 1 count as 1.
func steps(level int) float64 {
	if level < 1 {
		return 0
	}
	return float64(level - 1)
}

// Quota returns the total number of enemies spawned during the level:
// base + perLevel*(level-1).
func (c *LevelCurve) Quota(level int) int {
	return c.spawn.BaseQuota + c.spawn.QuotaPerLevel*int(steps(level))
}

// SpawnInterval returns the spawn cadence for the level:
// max(floor, nominal - decrease*(level-1)).
func (c *LevelCurve) SpawnInterval(level int) time.Duration {
	ms := math.Max(c.spawn.MinIntervalMs, c.spawn.IntervalMs-c.spawn.IntervalDecreasePerLevel*steps(level))
	return time.Duration(ms * float64(time.Millisecond))
}

// EnemySpeed returns the descent speed for enemies spawned during the level.
func (c *LevelCurve) EnemySpeed(level int) float64 {
	return c.enemies.BaseSpeed + c.enemies.SpeedPerLevel*steps(level)
}

// ShooterChance returns the probability that a spawned enemy can shoot.
func (c *LevelCurve) ShooterChance(level int) float64 {
	chance := c.enemies.ShooterChance + c.enemies.ShooterChancePerLevel*steps(level)
	return clampF(chance, 0.0, c.enemies.ShooterChanceMax)
}

// MaxConcurrent returns the cap on live enemies.
func (c *LevelCurve) MaxConcurrent() int {
	return c.spawn.MaxConcurrent
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
