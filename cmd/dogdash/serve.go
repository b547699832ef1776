package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogdash/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host Dog Dash over SSH",
	Long: `Host Dog Dash for anyone with an SSH client. Every connection gets its
own menu and runs; the run history and best scores are shared.

Without --host-key a key is generated once at ~/.dogdash/host_key.

Examples:
  dogdash serve
  dogdash serve --ssh :2222 --idle-timeout 10
  dogdash serve --host-key ./host_key --db ./scores.db

Then connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error { return withLogger(false, runServe) },
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "Listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file, generated when missing")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Minutes of inactivity before a connection is closed")
}

func runServe(logger *log.Logger) error {
	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Levels:      loadLevels(logger),
		Logger:      logger.WithPrefix("ssh"),
	})
	if err != nil {
		return fmt.Errorf("start ssh server: %w", err)
	}
	setupGame(server.Store(), logger)

	logger.Info("ready", "connect", "ssh -p "+portOf(flagSSHAddr)+" localhost")
	return server.ListenAndServe()
}
