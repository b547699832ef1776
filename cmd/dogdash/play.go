package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogdash/internal/audio"
	"github.com/vovakirdan/dogdash/internal/games/dogdash"
	"github.com/vovakirdan/dogdash/internal/platform/tui"
	"github.com/vovakirdan/dogdash/internal/registry"
)

var (
	flagLevel string
	flagMute  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start the endless run, or a fixed course with --level.

Controls:
  Space/Up/W  - Jump (also starts and retries)
  P           - Pause
  R           - Retry after a crash
  B/Esc       - Leave when paused or crashed
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at the lowest difficulty, ramps up with distance
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No ramp, stays at the config's initial level

Examples:
  dogdash play
  dogdash play --seed 42
  dogdash play --level 02-park
  dogdash play --difficulty hard --mute`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error { return withLogger(true, runPlay) },
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Play a fixed course by ID (see 'dogdash list')")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(logger *log.Logger) error {
	gameID := dogdash.IDInfinite
	if flagLevel != "" {
		gameID = dogdash.IDLevels
		dogdash.SetStartLevel(flagLevel)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	store := openStore(flagDBPath, logger)
	if store != nil {
		defer store.Close()
	}
	setupGame(store, logger)

	sound := startSound(logger)
	defer sound.Cleanup()

	if _, err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// startSound opens the speaker and routes game events to it. Without an
// audio device the game runs silently.
func startSound(logger *log.Logger) *audio.SoundManager {
	sm := audio.NewSoundManager()
	if flagMute {
		return sm
	}
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return sm
	}
	dogdash.SetEventSink(sm)
	return sm
}
