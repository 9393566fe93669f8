package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/loftwahnoid/internal/settings"
)

func TestEnvOr(t *testing.T) {
	t.Setenv(envDB, "/tmp/from-env.db")

	assert.Equal(t, "/tmp/flag.db", envOr("/tmp/flag.db", envDB, defaultDBPath))
	assert.Equal(t, "/tmp/from-env.db", envOr("", envDB, defaultDBPath))

	t.Setenv(envDB, "")
	assert.Equal(t, defaultDBPath, envOr("", envDB, defaultDBPath))
}

func TestApplySetting(t *testing.T) {
	st := settings.New(nil)

	require.NoError(t, applySetting(st, settings.KeyBackground, "random"))
	assert.Equal(t, settings.BackgroundRandom, st.Background())

	require.NoError(t, applySetting(st, settings.KeyHighScore, "420"))
	assert.Equal(t, 420, st.HighScore())

	require.NoError(t, applySetting(st, settings.KeyMusicTrack, "3"))
	assert.Equal(t, 3, st.MusicTrack(5))

	require.NoError(t, applySetting(st, settings.KeyMusicLoop, "false"))
	assert.False(t, st.MusicLoop())

	require.NoError(t, applySetting(st, settings.KeyMusicPlaying, "true"))
	assert.True(t, st.MusicPlaying())
}

func TestApplySettingRejects(t *testing.T) {
	st := settings.New(nil)

	cases := map[string][2]string{
		"bad background": {settings.KeyBackground, "9"},
		"negative score": {settings.KeyHighScore, "-1"},
		"not a number":   {settings.KeyHighScore, "lots"},
		"track range":    {settings.KeyMusicTrack, "5"},
		"bad bool":       {settings.KeyMusicLoop, "sometimes"},
		"unknown key":    {"volume", "11"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, applySetting(st, kv[0], kv[1]))
		})
	}

	assert.Equal(t, settings.BackgroundDefault, st.Background(), "rejected values are not stored")
	assert.Equal(t, 0, st.HighScore())
}

func TestDifficultyFlag(t *testing.T) {
	defer func(old string) { flagDifficulty = old }(flagDifficulty)

	flagDifficulty = ""
	preset, err := difficulty()
	require.NoError(t, err)
	assert.Equal(t, "normal", string(preset))

	flagDifficulty = "nightmare"
	_, err = difficulty()
	assert.Error(t, err)
}
