package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loftwahnoid/internal/config"
	"github.com/vovakirdan/loftwahnoid/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a difficulty mode (default: normal),
followed by a short summary of every game played on it.

Examples:
  loftwahnoid scores
  loftwahnoid scores hard
  loftwahnoid scores easy --limit 20
  loftwahnoid scores fixed --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := string(config.DifficultyNormal)
	if len(args) == 1 {
		mode = args[0]
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("Cleared %s scores.\n", mode)
		return
	}

	scores, err := store.TopScores(mode, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		printModes(store)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "Rank", "Score", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  %-12s  %s\n", i+1, entry.Score, entry.Level, entry.Player, dateStr)
	}

	fmt.Println()
	if stats, err := store.Stats(mode); err == nil {
		fmt.Printf("Best: %d  |  Games: %d  |  Average: %.0f  |  Furthest level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
}

// printModes lists the modes that do have scores.
func printModes(store *storage.Store) {
	modes, err := store.Modes()
	if err != nil || len(modes) == 0 {
		fmt.Println("Run 'loftwahnoid play' to set the first high score!")
		return
	}
	fmt.Println("Modes with scores:")
	for _, m := range modes {
		best, err := store.HighScore(m)
		if err != nil {
			continue
		}
		fmt.Printf("  %-8s  best %d\n", m, best)
	}
}
