package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/platform/tui"
	"github.com/vovakirdan/dogdash/internal/registry"
	"github.com/vovakirdan/dogdash/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a course interactively",
	Long: `Show the course menu: the endless run and every fixed level with its
best score. Leaving a run with B or Esc (paused or crashed) comes back here.

Menu keys:
  Up/Down, j/k  choose a course
  Enter, Space  start it
  Tab           run history
  Q             quit`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error { return withLogger(true, runMenu) },
}

func runMenu(logger *log.Logger) error {
	store := openStore(flagDBPath, logger)
	if store != nil {
		defer store.Close()
	}
	setupGame(store, logger)

	sound := startSound(logger)
	defer sound.Cleanup()

	levels := loadLevels(logger)
	cfg := terminalConfig()
	for {
		choice, err := tui.RunMenu(store, cfg, levels)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = choice.Config

		var again bool
		switch {
		case choice.Quit:
			return nil
		case choice.WantsScoreboard:
			again, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		default:
			again, err = playChoice(choice, store, &cfg, logger)
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// playChoice runs the chosen course and reports whether to show the menu again.
func playChoice(choice tui.MenuResult, store *storage.Store, cfg *core.RuntimeConfig, logger *log.Logger) (bool, error) {
	game, err := registry.Create(choice.GameID)
	if err != nil {
		return false, fmt.Errorf("create game: %w", err)
	}
	if ls, ok := game.(tui.LevelSelector); ok && choice.LevelID != "" {
		ls.SelectLevel(choice.LevelID)
	}

	// A pinned --seed replays the same world every time.
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	quit, err := tui.Run(game, store, *cfg, logger)
	if err != nil {
		return false, fmt.Errorf("run game: %w", err)
	}
	return !quit, nil
}
