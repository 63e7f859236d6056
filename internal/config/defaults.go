package config

import (
	_ "embed"
)

//go:embed defaults/defender.yaml
var defaultDefenderYAML []byte

// DefaultDefenderConfig returns the default configuration.
// The values mirror the classic DOS Defender tuning.
func DefaultDefenderConfig() DefenderConfig {
	return DefenderConfig{
		Player: PlayerConfig{
			Width:          40,
			Height:         20,
			Speed:          5,
			BottomMargin:   30,
			FireIntervalMs: 250,
			FlashMs:        1000,
		},
		Projectiles: ProjectileConfig{
			Width:       4,
			Height:      10,
			PlayerSpeed: 7,
			EnemySpeed:  4,
		},
		Enemies: EnemyConfig{
			Width:                 30,
			Height:                30,
			BaseSpeed:             0.5,
			SpeedPerLevel:         0.2,
			FireIntervalMs:        1500,
			ShooterChance:         0.1,
			ShooterChancePerLevel: 0.05,
			ShooterChanceMax:      0.6,
			MinAmplitude:          20,
			MaxAmplitude:          60,
			MinFrequency:          0.02,
			MaxFrequency:          0.05,
		},
		Spawn: SpawnConfig{
			BaseQuota:                10,
			QuotaPerLevel:            5,
			IntervalMs:               1000,
			IntervalDecreasePerLevel: 50,
			MinIntervalMs:            200,
			MaxConcurrent:            12,
		},
		PowerUps: PowerUpConfig{
			Width:      20,
			Height:     20,
			Speed:      2,
			DropChance: 0.15,
		},
		Buffs: BuffConfig{
			RapidFireMs: 8000,
			ShieldMs:    10000,
		},
		Particles: ParticleConfig{
			Count:      12,
			Size:       6,
			Speed:      3,
			ShrinkRate: 0.15,
			FadeRate:   0.03,
		},
		Gameplay: GameplayConfig{
			Lives:            3,
			KillScore:        100,
			FrameReferenceMs: 1000.0 / 60.0,
			MaxDeltaMs:       250,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDefenderYAML
}
