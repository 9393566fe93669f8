// Package config provides YAML-based game configuration loading and
// difficulty management for Loftwahnoid.
package config

// GameConfig contains all tunables for the brick breaker.
// Speeds are in cells per second and durations in seconds. The game converts
// them to per-tick values using the runtime tick rate.
type GameConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Layout     LayoutConfig     `yaml:"layout"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio"`
}

// PhysicsConfig defines ball and projectile motion.
type PhysicsConfig struct {
	BallSpeed       float64 `yaml:"ball_speed"`
	LaunchSpread    float64 `yaml:"launch_spread"`     // Degrees either side of straight up
	MaxBounceAngle  float64 `yaml:"max_bounce_angle"`  // Degrees at the paddle edge
	ProjectileSpeed float64 `yaml:"projectile_speed"`  // Upward speed of shots
	MinVertical     float64 `yaml:"min_vertical"`      // Smallest |vy|/speed allowed for spawned balls
	FallSpeed       float64 `yaml:"powerup_fall_speed"`
}

// PaddleConfig defines the paddle size stages and movement.
type PaddleConfig struct {
	Speed         float64 `yaml:"speed"`
	Stages        []int   `yaml:"stages"`
	DefaultStage  int     `yaml:"default_stage"`
	BottomPadding int     `yaml:"bottom_padding"` // Rows between paddle and screen bottom
}

// PowerUpConfig defines drop rates and effect strengths.
type PowerUpConfig struct {
	DropChance   float64 `yaml:"drop_chance"`
	Duration     float64 `yaml:"duration"`
	SlowFactor   float64 `yaml:"slow_factor"`
	FastFactor   float64 `yaml:"fast_factor"`
	MiniBalls    int     `yaml:"mini_balls"`
	FireInterval float64 `yaml:"fire_interval"`
	FireCooldown float64 `yaml:"fire_cooldown"`
	MissMargin   float64 `yaml:"miss_margin"` // Distance below the playfield before a pickup is dropped
}

// GameplayConfig defines lives and the starting level.
type GameplayConfig struct {
	Lives      int `yaml:"lives"`
	StartLevel int `yaml:"start_level"`
}

// LayoutConfig defines brick geometry on the terminal grid.
type LayoutConfig struct {
	BrickWidth  int `yaml:"brick_width"`
	BrickHeight int `yaml:"brick_height"`
	PadX        int `yaml:"pad_x"`
	PadY        int `yaml:"pad_y"`
	SideMargin  int `yaml:"side_margin"`
	OffsetTop   int `yaml:"offset_top"` // Rows between the top wall and the first brick row
	MinColumns  int `yaml:"min_columns"`
}

// GeneratorConfig defines how level difficulty maps to brick density and mix.
type GeneratorConfig struct {
	MaxDifficultyLevel  int     `yaml:"max_difficulty_level"`
	DensityBase         float64 `yaml:"density_base"`
	DensitySlope        float64 `yaml:"density_slope"`
	DensityCap          float64 `yaml:"density_cap"`
	ToughBase           float64 `yaml:"tough_base"`
	ToughSlope          float64 `yaml:"tough_slope"`
	ToughCap            float64 `yaml:"tough_cap"`
	IndestructibleBase  float64 `yaml:"indestructible_base"`
	IndestructibleSlope float64 `yaml:"indestructible_slope"`
	IndestructibleCap   float64 `yaml:"indestructible_cap"`
	BaseRows            int     `yaml:"base_rows"`
	MaxExtraRows        int     `yaml:"max_extra_rows"`
}

// DifficultyConfig controls how quickly levels get harder.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MusicDir    string  `yaml:"music_dir"`
	MusicVolume float64 `yaml:"music_volume"`
	CueVolume   float64 `yaml:"cue_volume"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}
