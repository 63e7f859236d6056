// Package config provides YAML-based game configuration loading,
// difficulty presets and the per-level progression curve.
package config

import (
	"errors"
	"fmt"
)

// DefenderConfig contains all tunable parameters of the simulation.
// Distances are playfield units, speeds are units per reference frame
// (1/60 s) and durations are milliseconds.
type DefenderConfig struct {
	Player      PlayerConfig     `yaml:"player"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Enemies     EnemyConfig      `yaml:"enemies"`
	Spawn       SpawnConfig      `yaml:"spawn"`
	PowerUps    PowerUpConfig    `yaml:"powerups"`
	Buffs       BuffConfig       `yaml:"buffs"`
	Particles   ParticleConfig   `yaml:"particles"`
	Gameplay    GameplayConfig   `yaml:"gameplay"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	BottomMargin   float64 `yaml:"bottom_margin"` // Gap between ship and playfield bottom
	FireIntervalMs float64 `yaml:"fire_interval_ms"`
	FlashMs        float64 `yaml:"flash_ms"` // Invulnerable-flash duration after a hit (visual only)
}

// ProjectileConfig defines shots for both owners.
type ProjectileConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	PlayerSpeed float64 `yaml:"player_speed"`
	EnemySpeed  float64 `yaml:"enemy_speed"`
}

// EnemyConfig defines enemy size, speed and shooter capability.
type EnemyConfig struct {
	Width                 float64 `yaml:"width"`
	Height                float64 `yaml:"height"`
	BaseSpeed             float64 `yaml:"base_speed"`
	SpeedPerLevel         float64 `yaml:"speed_per_level"`
	FireIntervalMs        float64 `yaml:"fire_interval_ms"`
	ShooterChance         float64 `yaml:"shooter_chance"`
	ShooterChancePerLevel float64 `yaml:"shooter_chance_per_level"`
	ShooterChanceMax      float64 `yaml:"shooter_chance_max"`
	MinAmplitude          float64 `yaml:"min_amplitude"`
	MaxAmplitude          float64 `yaml:"max_amplitude"`
	MinFrequency          float64 `yaml:"min_frequency"`
	MaxFrequency          float64 `yaml:"max_frequency"`
}

// SpawnConfig defines wave composition and pacing.
type SpawnConfig struct {
	BaseQuota                int     `yaml:"base_quota"`
	QuotaPerLevel            int     `yaml:"quota_per_level"`
	IntervalMs               float64 `yaml:"interval_ms"`
	IntervalDecreasePerLevel float64 `yaml:"interval_decrease_per_level"`
	MinIntervalMs            float64 `yaml:"min_interval_ms"`
	MaxConcurrent            int     `yaml:"max_concurrent"`
}

// PowerUpConfig defines dropped pickups.
type PowerUpConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	DropChance float64 `yaml:"drop_chance"` // 0.0 - 1.0 per projectile kill
}

// BuffConfig defines buff durations.
type BuffConfig struct {
	RapidFireMs float64 `yaml:"rapid_fire_ms"`
	ShieldMs    float64 `yaml:"shield_ms"`
}

// ParticleConfig defines explosion debris.
type ParticleConfig struct {
	Count      int     `yaml:"count"`
	Size       float64 `yaml:"size"`
	Speed      float64 `yaml:"speed"`
	ShrinkRate float64 `yaml:"shrink_rate"` // Size lost per reference frame
	FadeRate   float64 `yaml:"fade_rate"`   // Opacity lost per reference frame
}

// GameplayConfig defines run rules.
type GameplayConfig struct {
	Lives            int     `yaml:"lives"`
	KillScore        int     `yaml:"kill_score"`
	FrameReferenceMs float64 `yaml:"frame_reference_ms"`
	MaxDeltaMs       float64 `yaml:"max_delta_ms"` // Longer frames are clamped
}

// Validate checks that the configuration describes a playable game.
func (c DefenderConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.fire_interval_ms", c.Player.FireIntervalMs)
	positive("projectiles.width", c.Projectiles.Width)
	positive("projectiles.height", c.Projectiles.Height)
	positive("enemies.width", c.Enemies.Width)
	positive("enemies.height", c.Enemies.Height)
	positive("enemies.fire_interval_ms", c.Enemies.FireIntervalMs)
	positive("spawn.interval_ms", c.Spawn.IntervalMs)
	positive("spawn.min_interval_ms", c.Spawn.MinIntervalMs)
	positive("powerups.width", c.PowerUps.Width)
	positive("powerups.height", c.PowerUps.Height)
	positive("buffs.rapid_fire_ms", c.Buffs.RapidFireMs)
	positive("buffs.shield_ms", c.Buffs.ShieldMs)
	positive("particles.size", c.Particles.Size)
	positive("gameplay.frame_reference_ms", c.Gameplay.FrameReferenceMs)
	positive("gameplay.max_delta_ms", c.Gameplay.MaxDeltaMs)
	probability("enemies.shooter_chance", c.Enemies.ShooterChance)
	probability("enemies.shooter_chance_max", c.Enemies.ShooterChanceMax)
	probability("powerups.drop_chance", c.PowerUps.DropChance)

	if c.Spawn.BaseQuota < 1 {
		errs = append(errs, fmt.Errorf("spawn.base_quota must be at least 1, got %d", c.Spawn.BaseQuota))
	}
	if c.Spawn.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("spawn.max_concurrent must be at least 1, got %d", c.Spawn.MaxConcurrent))
	}
	if c.Gameplay.Lives < 1 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be at least 1, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.KillScore < 1 {
		errs = append(errs, fmt.Errorf("gameplay.kill_score must be positive, got %d", c.Gameplay.KillScore))
	}
	if c.Enemies.MaxAmplitude < c.Enemies.MinAmplitude {
		errs = append(errs, errors.New("enemies.max_amplitude must not be below min_amplitude"))
	}
	if c.Enemies.MaxFrequency < c.Enemies.MinFrequency {
		errs = append(errs, errors.New("enemies.max_frequency must not be below min_frequency"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid defender config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI flag value to a preset.
// Unknown values yield an empty preset (no adjustment).
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables per-level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
