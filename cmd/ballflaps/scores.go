package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/platform/tui"
	"github.com/vovakirdan/ballflaps/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores.

Examples:
  ballflaps scores
  ballflaps scores --limit 25
  ballflaps scores -i          # Browse in the interactive scoreboard
  ballflaps scores --clear     # Delete every recorded score`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(storage.GameID); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagInteractive {
		rt := core.DefaultConfig()
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			rt.ScreenW, rt.ScreenH = w, h
		}
		return tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
	}

	scores, err := store.TopScores(storage.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Ball Flaps")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ballflaps play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-12s  %-9s  %s\n", "Rank", "Score", "Player", "Cause", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-9s  %s\n", "----", "-----", "------", "-----", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-12s  %-9s  %s\n", i+1, entry.Score, player, entry.Cause, dateStr)
	}

	fmt.Println()
	if best, err := store.ForGame(storage.GameID).Best(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
