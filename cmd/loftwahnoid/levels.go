package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loftwahnoid/internal/breakout"
)

var (
	flagLevel  int
	flagCount  int
	flagWidth  int
	flagHeight int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print generated level layouts",
	Long: `Generate levels the way the game does and print them as brick maps.

Legend:
  #  normal brick
  H  tough brick
  X  indestructible brick
  .  empty cell

The same --seed, --level and terminal size always give the same layout.

Examples:
  loftwahnoid levels
  loftwahnoid levels --level 8 --seed 42
  loftwahnoid levels --count 5 --difficulty hard
  loftwahnoid levels --width 120 --height 40`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevel, "level", 1, "First level to generate")
	levelsCmd.Flags().IntVar(&flagCount, "count", 1, "Number of consecutive levels")
	levelsCmd.Flags().IntVar(&flagWidth, "width", 80, "Terminal width to size the levels for")
	levelsCmd.Flags().IntVar(&flagHeight, "height", 24, "Terminal height to size the levels for")
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagWidth < breakout.MinScreenW || flagHeight < breakout.MinScreenH {
		fmt.Fprintf(os.Stderr, "Error: screen must be at least %dx%d\n", breakout.MinScreenW, breakout.MinScreenH)
		os.Exit(1)
	}

	cfg, preset, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := breakout.NewSimpleRNG(seed)
	gen := breakout.NewGenerator(cfg)

	// Same playfield as the game: side walls, HUD and top wall, paddle rows
	playW := flagWidth - 2
	playH := flagHeight - 1 - cfg.Paddle.BottomPadding - 2

	fmt.Printf("Seed %d, %s, %dx%d\n\n", seed, preset, flagWidth, flagHeight)
	for level := max(1, flagLevel); level < max(1, flagLevel)+max(1, flagCount); level++ {
		cols, rows, geom := gen.DefaultLayout(level, playW, playH)
		layout := gen.Generate(level, cols, rows, geom, rng)

		t := layout.Tuning
		fmt.Printf("Level %d  difficulty %.2f  density %.2f  tough %.2f  indestructible %.2f\n",
			level, t.Difficulty, t.Density, t.ToughChance, t.IndestructibleChance)
		fmt.Print(layout.ASCII())
		fmt.Printf("%d bricks, %d destructible\n\n", len(layout.Placements), layout.Destructible())
	}
}
