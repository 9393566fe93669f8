// loftwahnoid is a brick breaker for the terminal.
//
// Usage:
//
//	loftwahnoid play                 - Start at the main menu
//	loftwahnoid play --now           - Start a game right away
//	loftwahnoid serve                - Start SSH server for remote play
//	loftwahnoid scores [mode]        - Show high scores
//	loftwahnoid settings             - Show or change persisted settings
//	loftwahnoid levels               - Preview generated levels
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.loftwahnoid/loftwahnoid.db)
//	--config <path>        - Custom game config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-file <path>      - Write logs to a file
//
// Defaults can also come from a .env file: LOFTWAHNOID_DB, LOFTWAHNOID_MUSIC_DIR,
// LOFTWAHNOID_THEME and LOFTWAHNOID_SSH_ADDR.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/loftwahnoid/internal/config"
)

const (
	envDB       = "LOFTWAHNOID_DB"
	envMusicDir = "LOFTWAHNOID_MUSIC_DIR"
	envTheme    = "LOFTWAHNOID_THEME"
	envSSHAddr  = "LOFTWAHNOID_SSH_ADDR"

	defaultDBPath = "~/.loftwahnoid/loftwahnoid.db"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "loftwahnoid",
	Short: "Loftwahnoid - a brick breaker in your terminal",
	Long: `Loftwahnoid is a brick breaker with procedurally generated levels,
power-ups and a lo-fi soundtrack, played in the terminal or over SSH.

Available commands:
  play      - Open the main menu (or start a game with --now)
  serve     - Start SSH server for remote play
  scores    - View high scores
  settings  - Show or change persisted settings
  levels    - Print generated level layouts

Examples:
  loftwahnoid play
  loftwahnoid play --now --difficulty hard
  loftwahnoid serve --ssh :2222
  loftwahnoid scores easy
  loftwahnoid levels --level 5 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the database (default $"+envDB+" or "+defaultDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(levelsCmd)
}

// envOr returns value if set, else the environment variable key, else def.
func envOr(value, key, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func dbPath() string {
	return envOr(flagDBPath, envDB, defaultDBPath)
}

// difficulty validates the --difficulty flag.
func difficulty() (config.DifficultyPreset, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return preset, nil
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.GameConfig, config.DifficultyPreset, error) {
	preset, err := difficulty()
	if err != nil {
		return config.GameConfig{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// newLogger writes to --log-file when given, otherwise to fallback.
// The returned closer must be called when done.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "loftwahnoid",
	})
	return logger, closer, nil
}
