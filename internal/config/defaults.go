package config

import (
	_ "embed"
)

//go:embed defaults/loftwahnoid.yaml
var defaultGameYAML []byte

// DefaultConfig returns the hardcoded configuration.
// It mirrors defaults/loftwahnoid.yaml and is the last resort of the loader.
func DefaultConfig() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			BallSpeed:       24,
			LaunchSpread:    30,
			MaxBounceAngle:  60,
			ProjectileSpeed: 32,
			MinVertical:     0.25,
			FallSpeed:       12,
		},
		Paddle: PaddleConfig{
			Speed:         60,
			Stages:        []int{6, 8, 10, 12, 14},
			DefaultStage:  2,
			BottomPadding: 2,
		},
		PowerUps: PowerUpConfig{
			DropChance:   0.3,
			Duration:     20,
			SlowFactor:   0.7,
			FastFactor:   1.3,
			MiniBalls:    2,
			FireInterval: 1,
			FireCooldown: 0.25,
			MissMargin:   4,
		},
		Gameplay: GameplayConfig{
			Lives:      3,
			StartLevel: 1,
		},
		Layout: LayoutConfig{
			BrickWidth:  5,
			BrickHeight: 1,
			PadX:        1,
			PadY:        0,
			SideMargin:  4,
			OffsetTop:   1,
			MinColumns:  3,
		},
		Generator: GeneratorConfig{
			MaxDifficultyLevel:  10,
			DensityBase:         0.6,
			DensitySlope:        0.3,
			DensityCap:          0.9,
			ToughBase:           0.1,
			ToughSlope:          0.3,
			ToughCap:            0.4,
			IndestructibleBase:  0.05,
			IndestructibleSlope: 0.15,
			IndestructibleCap:   0.2,
			BaseRows:            4,
			MaxExtraRows:        6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
		Audio: AudioConfig{
			Enabled:     false,
			MusicDir:    "music",
			MusicVolume: 0.7,
			CueVolume:   0.5,
		},
	}
}
