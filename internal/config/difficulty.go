package config

import "math"

// Tuning holds the generator parameters for one level.
type Tuning struct {
	Difficulty           float64 // 0.0 to 1.0
	Density              float64 // Chance that a non-path cell holds a brick
	ToughChance          float64
	IndestructibleChance float64
}

// DifficultyManager maps level numbers to generator tuning.
type DifficultyManager struct {
	cfg          DifficultyConfig
	gen          GeneratorConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, gen GeneratorConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		gen:          gen,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty (0.0 to 1.0) of the given level number.
// With the default initial level of 0 this is min(level/10, 1).
func (d *DifficultyManager) Level(level int) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	maxAt := float64(d.gen.MaxDifficultyLevel)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(level)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Tuning returns the brick density and type mix for a level.
func (d *DifficultyManager) Tuning(level int) Tuning {
	return LevelTuning(d.Level(level), d.gen)
}

// Rows returns the brick row count for a level, growing every second level up to the cap.
func (d *DifficultyManager) Rows(level int) int {
	extra := level / 2
	if extra > d.gen.MaxExtraRows {
		extra = d.gen.MaxExtraRows
	}
	if extra < 0 {
		extra = 0
	}
	return d.gen.BaseRows + extra
}

// LevelTuning derives generator parameters from a difficulty in [0, 1].
func LevelTuning(difficulty float64, gen GeneratorConfig) Tuning {
	dd := clampF(difficulty, 0.0, 1.0)
	return Tuning{
		Difficulty:           dd,
		Density:              math.Min(gen.DensityBase+gen.DensitySlope*dd, gen.DensityCap),
		ToughChance:          math.Min(gen.ToughBase+gen.ToughSlope*dd, gen.ToughCap),
		IndestructibleChance: math.Min(gen.IndestructibleBase+gen.IndestructibleSlope*dd, gen.IndestructibleCap),
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
