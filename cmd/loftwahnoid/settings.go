package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loftwahnoid/internal/music"
	"github.com/vovakirdan/loftwahnoid/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show persisted settings",
	Long: `Show the settings stored in the database, as the game reads them.
Malformed stored values are shown with the default they read as.

Keys:
  background     0 (black), 1-5, or random
  highscore      non-negative integer
  music_track    0-4
  music_playing  true or false
  music_loop     true or false

Examples:
  loftwahnoid settings
  loftwahnoid settings set background random
  loftwahnoid settings set music_loop false`,
	Args: cobra.NoArgs,
	Run:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a persisted setting",
	Args:  cobra.ExactArgs(2),
	Run:   runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	st := settings.New(store)
	track := st.MusicTrack(len(music.Tracks))
	values := map[string]string{
		settings.KeyBackground:   st.Background(),
		settings.KeyHighScore:    strconv.Itoa(st.HighScore()),
		settings.KeyMusicTrack:   fmt.Sprintf("%d (%s)", track, music.Tracks[track].Name),
		settings.KeyMusicPlaying: strconv.FormatBool(st.MusicPlaying()),
		settings.KeyMusicLoop:    strconv.FormatBool(st.MusicLoop()),
	}

	raw, err := store.AllSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		stored, ok := raw[k]
		note := ""
		switch {
		case !ok:
			note = "  (default)"
		case stored != values[k] && k != settings.KeyMusicTrack:
			note = fmt.Sprintf("  (stored %q)", stored)
		}
		fmt.Printf("  %-14s %s%s\n", k, values[k], note)
	}
}

func runSettingsSet(_ *cobra.Command, args []string) {
	key, value := args[0], args[1]

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := applySetting(settings.New(store), key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
	fmt.Printf("%s = %s\n", key, value)
}

// applySetting validates value for key and stores it through the typed setters.
func applySetting(st *settings.Settings, key, value string) error {
	switch key {
	case settings.KeyBackground:
		return st.SetBackground(value)
	case settings.KeyHighScore:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("highscore must be a number: %w", err)
		}
		return st.SetHighScore(n)
	case settings.KeyMusicTrack:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n >= len(music.Tracks) {
			return fmt.Errorf("music_track must be between 0 and %d", len(music.Tracks)-1)
		}
		return st.SetMusicTrack(n)
	case settings.KeyMusicPlaying, settings.KeyMusicLoop:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		if key == settings.KeyMusicLoop {
			return st.SetMusicLoop(b)
		}
		return st.SetMusicPlaying(b)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}
