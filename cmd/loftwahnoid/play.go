package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/loftwahnoid/internal/core"
	"github.com/vovakirdan/loftwahnoid/internal/platform/tui"
)

var flagNow bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Loftwahnoid",
	Long: `Open the main menu. From there you can start a game, pick a
background, control the soundtrack and browse high scores.

Controls:
  Left/Right, A/D  - Move paddle (the mouse works too)
  Space            - Launch ball
  F/X              - Fire (with the shooting paddle)
  P                - Pause
  R                - Restart
  M / N            - Music play/pause, next track
  Esc              - Back to menu (paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, slower ball
  normal - Difficulty grows from the first level
  hard   - 2 lives, faster ball, starts halfway up the curve
  fixed  - No progression, stays at config's initial level

Examples:
  loftwahnoid play
  loftwahnoid play --now
  loftwahnoid play --difficulty hard
  loftwahnoid play --config ./my-loftwahnoid.yaml --log-file debug.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNow, "now", false, "Skip the menu and start a game")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	env, cleanup, err := buildEnv(logger, envOptions{Audio: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	runErr := tui.Run(env, cfg, flagNow)

	// Release the speaker and database before a potential exit
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
