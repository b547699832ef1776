// dogdash is an endless runner for the terminal: a dog runs right on its
// own and you only decide when it jumps.
//
// Usage:
//
//	dogdash list              - List game modes
//	dogdash play              - Play the endless run (or --level <id>)
//	dogdash menu              - Pick a course interactively
//	dogdash serve             - Start SSH server for remote play
//	dogdash web               - Serve the browser client over HTTP
//	dogdash scores [mode]     - Show past runs and best scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible worlds
//	--db <path>           - Set database path (default: ~/.dogdash/scores.db)
//	--config <path>       - Custom dogdash.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/games/dogdash"
	"github.com/vovakirdan/dogdash/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dogdash",
	Short: "Dog Dash - an endless runner in your terminal",
	Long: `Dog Dash is a one-button runner. The dog runs on its own over
procedurally generated ground; jump over spikes, land on blocks, bounce
off pads and don't fall into pits.

Available commands:
  list     - Show game modes and levels
  play     - Start a run directly
  menu     - Interactive course picker
  serve    - Start SSH server for remote play
  web      - Serve the browser client
  scores   - View past runs

Examples:
  dogdash play
  dogdash play --level 02-park
  dogdash menu --difficulty hard
  dogdash serve --ssh :2222
  dogdash web --http :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dogdash/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom dogdash.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the root logger. Terminal modes own the screen, so
// without --log-file they log nowhere; servers fall back to stderr.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dogdash",
		Level:           level,
	})
	return logger, closeFn, nil
}

// withLogger runs fn with the root logger. The log file is closed after fn
// returns, whatever it returns; commands report failures as errors so that
// their deferred cleanup runs before main exits.
func withLogger(interactive bool, fn func(*log.Logger) error) error {
	logger, closeLog, err := newLogger(interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := fn(logger); err != nil {
		logger.Error("command failed", "err", err)
		return err
	}
	return nil
}

// setupGame applies the global flags to the game package. store may be nil.
func setupGame(store *storage.Store, logger *log.Logger) {
	dogdash.SetConfigPath(flagConfig)
	dogdash.SetDifficultyPreset(flagDifficulty)
	dogdash.SetLogger(logger)
	if store != nil {
		dogdash.SetBestStore(store)
	}
}

// openStore opens the scores database; runs are still playable without it.
func openStore(path string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("open scores database", "path", path, "err", err)
		return nil
	}
	return store
}

// loadLevels returns the configured fixed courses.
func loadLevels(logger *log.Logger) []config.Level {
	cfg, err := config.LoadDogDash(flagConfig)
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		return config.DefaultLevels()
	}
	return cfg.Levels
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
