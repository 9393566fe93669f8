package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultGameYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadCustomPathOverridesOnlyListedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gameplay:\n  lives: 7\npaddle:\n  stages: [4, 6, 8]\n  default_stage: 1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Gameplay.Lives)
	assert.Equal(t, []int{4, 6, 8}, cfg.Paddle.Stages)
	assert.Equal(t, 1, cfg.Paddle.DefaultStage)
	assert.Equal(t, 24.0, cfg.Physics.BallSpeed, "unlisted keys keep defaults")
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("paddle:\n  stages: []\n"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paddle.stages")
}

func TestValidateRejectsBrokenValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paddle.DefaultStage = 9
	cfg.Gameplay.Lives = 0
	cfg.PowerUps.DropChance = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_stage")
	assert.Contains(t, err.Error(), "lives")
	assert.Contains(t, err.Error(), "drop_chance")
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	assert.Equal(t, 5, easy.Gameplay.Lives)
	assert.Less(t, easy.Physics.BallSpeed, DefaultConfig().Physics.BallSpeed)

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	assert.Equal(t, 2, hard.Gameplay.Lives)
	assert.InDelta(t, 0.5, hard.Difficulty.InitialLevel, 1e-9)

	fixed := DefaultConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	assert.False(t, fixed.Difficulty.Enabled)

	normal := DefaultConfig()
	ApplyPreset(&normal, DifficultyNormal)
	assert.Equal(t, DefaultConfig(), normal)
}

func TestParsePreset(t *testing.T) {
	p, ok := ParsePreset("")
	assert.True(t, ok)
	assert.Equal(t, DifficultyNormal, p)

	_, ok = ParsePreset("nightmare")
	assert.False(t, ok)
}
