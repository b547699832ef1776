package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogdash/internal/games/dogdash"
	"github.com/vovakirdan/dogdash/internal/registry"
	"github.com/vovakirdan/dogdash/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show past runs and best scores",
	Long: `Display the top 10 runs for a game mode (default: dogdash) and the
stored best score of every course.

Examples:
  dogdash scores
  dogdash scores dogdash_levels
  dogdash scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history of the mode (best scores are kept)")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := dogdash.IDInfinite
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'dogdash list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return fmt.Errorf("clear runs: %w", err)
		}
		fmt.Printf("Cleared run history for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopRuns(gameID, 10)
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}
	stats, err := store.Stats(gameID)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	fmt.Printf("Top runs - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-6s  %-14s  %-8s  %s\n", "Rank", "Score", "Course", "Ended by", "Date")
		fmt.Printf("  %-4s  %-6s  %-14s  %-8s  %s\n", "----", "-----", "------", "--------", "----")
		for i, e := range scores {
			course := e.Course
			if course == "" {
				course = "-"
			}
			fmt.Printf("  %-4d  %-6d  %-14s  %-8s  %s\n", i+1, e.Score, course, e.Cause, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
		fmt.Printf("%d runs, average %.1f, %d finished\n", stats.Runs, stats.Average, stats.Finished)
	}

	bests, err := store.BestScores()
	if err != nil {
		return fmt.Errorf("load best scores: %w", err)
	}
	if len(bests) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Println("Best scores:")
	for _, b := range bests {
		fmt.Printf("  %-40s  %d\n", b.Key, b.Value)
	}
	return nil
}
