package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "loftwahnoid.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.loftwahnoid/configs/loftwahnoid.yaml -> ./configs/loftwahnoid.yaml -> embedded default.
// Files only need to list the keys they override.
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the game cannot run with.
func (c GameConfig) Validate() error {
	var errs []error

	if len(c.Paddle.Stages) == 0 {
		errs = append(errs, errors.New("paddle.stages must not be empty"))
	} else if c.Paddle.DefaultStage < 0 || c.Paddle.DefaultStage >= len(c.Paddle.Stages) {
		errs = append(errs, fmt.Errorf("paddle.default_stage %d out of range [0,%d)", c.Paddle.DefaultStage, len(c.Paddle.Stages)))
	}
	for i, w := range c.Paddle.Stages {
		if w <= 0 {
			errs = append(errs, fmt.Errorf("paddle.stages[%d] must be positive", i))
		}
	}
	if c.Physics.BallSpeed <= 0 {
		errs = append(errs, errors.New("physics.ball_speed must be positive"))
	}
	if c.Paddle.Speed <= 0 {
		errs = append(errs, errors.New("paddle.speed must be positive"))
	}
	if c.PowerUps.DropChance < 0 || c.PowerUps.DropChance > 1 {
		errs = append(errs, errors.New("powerups.drop_chance must be within [0,1]"))
	}
	if c.PowerUps.Duration <= 0 {
		errs = append(errs, errors.New("powerups.duration must be positive"))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, errors.New("gameplay.lives must be positive"))
	}
	if c.Gameplay.StartLevel < 1 {
		errs = append(errs, errors.New("gameplay.start_level must be at least 1"))
	}
	if c.Layout.BrickWidth <= 0 || c.Layout.BrickHeight <= 0 {
		errs = append(errs, errors.New("layout brick size must be positive"))
	}
	if c.Layout.PadX < 0 || c.Layout.PadY < 0 {
		errs = append(errs, errors.New("layout padding must not be negative"))
	}
	if c.Generator.MaxDifficultyLevel <= 0 {
		errs = append(errs, errors.New("generator.max_difficulty_level must be positive"))
	}
	if c.Generator.ToughCap+c.Generator.IndestructibleCap > 1 {
		errs = append(errs, errors.New("generator tough_cap + indestructible_cap must not exceed 1"))
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".loftwahnoid", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Physics.BallSpeed *= 0.85
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Physics.BallSpeed *= 1.2
	}
}
