package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/loftwahnoid/internal/assets"
	"github.com/vovakirdan/loftwahnoid/internal/audio"
	"github.com/vovakirdan/loftwahnoid/internal/music"
	"github.com/vovakirdan/loftwahnoid/internal/platform/tui"
	"github.com/vovakirdan/loftwahnoid/internal/settings"
	"github.com/vovakirdan/loftwahnoid/internal/storage"
)

// envOptions selects what buildEnv sets up.
type envOptions struct {
	Audio        bool // open the speaker and the music player
	RequireStore bool // fail instead of playing without a database
}

// buildEnv loads config, storage, settings, theme and audio.
// The returned cleanup releases everything that was opened.
func buildEnv(logger *log.Logger, opts envOptions) (tui.Env, func(), error) {
	var cleanup []func()
	done := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}

	cfg, preset, err := loadConfig()
	if err != nil {
		return tui.Env{}, nil, err
	}

	env := tui.Env{
		Config: cfg,
		Mode:   string(preset),
		Logger: logger,
	}

	store, err := storage.Open(dbPath())
	switch {
	case err != nil && opts.RequireStore:
		return tui.Env{}, nil, err
	case err != nil:
		logger.Warn("playing without a database", "err", err)
		env.Settings = settings.New(nil)
	default:
		cleanup = append(cleanup, func() { store.Close() })
		env.Store = store
		env.Settings = settings.New(store)
	}
	if err := env.Settings.InitDefaults(); err != nil {
		logger.Warn("cannot write default settings", "err", err)
	}

	env.Sprites = assets.NewCatalog(logger)
	if theme := envOr("", envTheme, ""); theme != "" {
		if err := env.Sprites.LoadTheme(theme); err != nil {
			logger.Warn("using the built-in theme", "err", err)
		}
	}

	if opts.Audio {
		speaker, cues := audio.Open(cfg.Audio.Enabled, cfg.Audio.CueVolume, logger)
		if speaker != nil {
			cleanup = append(cleanup, speaker.Close)
		}
		env.Cues = cues
		env.Music = music.New(env.Settings, music.Options{
			Dir:    envOr("", envMusicDir, cfg.Audio.MusicDir),
			Volume: cfg.Audio.MusicVolume,
			Sink:   cues.Sink(),
			Logger: logger,
		})
		cleanup = append(cleanup, env.Music.Close)
	}

	logger.Debug("environment ready", "mode", env.Mode, "db", env.Store != nil, "audio", opts.Audio && cfg.Audio.Enabled)
	return env, done, nil
}

// openStore opens the database for the read-only commands.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening scores database: %w", err)
	}
	return store, nil
}
