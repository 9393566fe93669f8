package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/loftwahnoid/internal/assets"
	"github.com/vovakirdan/loftwahnoid/internal/breakout"
	"github.com/vovakirdan/loftwahnoid/internal/config"
	"github.com/vovakirdan/loftwahnoid/internal/core"
	"github.com/vovakirdan/loftwahnoid/internal/music"
	"github.com/vovakirdan/loftwahnoid/internal/settings"
	"github.com/vovakirdan/loftwahnoid/internal/storage"
)

// Env bundles what a session needs to build and host games.
// Store may be nil; scores are then not recorded.
type Env struct {
	Config   config.GameConfig
	Mode     string // difficulty preset name, used as the score mode
	Player   string
	Store    *storage.Store
	Settings *settings.Settings
	Music    *music.Player
	Cues     breakout.CuePlayer
	Sprites  *assets.Catalog
	Logger   *log.Logger
}

// withDefaults fills missing collaborators with in-memory or silent ones.
func (e Env) withDefaults() Env {
	if len(e.Config.Paddle.Stages) == 0 {
		e.Config = config.DefaultConfig()
	}
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Settings == nil {
		e.Settings = settings.New(nil)
	}
	if e.Music == nil {
		e.Music = music.New(e.Settings, music.Options{NoProbe: true, Logger: e.Logger})
	}
	if e.Sprites == nil {
		e.Sprites = assets.NewCatalog(e.Logger)
	}
	if e.Mode == "" {
		e.Mode = string(config.DifficultyNormal)
	}
	if e.Player == "" {
		e.Player = "local"
	}
	return e
}

// NewGame builds a game wired to the environment's collaborators.
// The background choice is read from settings each time.
func (e Env) NewGame(runtime core.RuntimeConfig) *breakout.Game {
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	g := breakout.New(e.Config, breakout.Deps{
		Cues:       e.Cues,
		HighScores: e.Settings,
		Sprites:    e.Sprites,
		Background: e.Settings.Background(),
		Logger:     e.Logger,
	})
	g.Reset(runtime)
	return g
}

// SaveScore appends a finished game to the score history.
func (e Env) SaveScore(score, level int) {
	if e.Store == nil || score <= 0 {
		return
	}
	entry := storage.ScoreEntry{
		RunID:  uuid.NewString(),
		Player: e.Player,
		Mode:   e.Mode,
		Score:  score,
		Level:  level,
	}
	if _, err := e.Store.SaveScore(entry); err != nil {
		e.Logger.Warn("cannot save score", "err", err, "score", score)
		return
	}
	e.Logger.Info("score saved", "run", entry.RunID, "score", score, "level", level, "mode", e.Mode)
}
