package main

import (
	"fmt"
	"net"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogdash/internal/platform/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser client",
	Long: `Start an HTTP server with a canvas client at / and the game
websocket at /ws. Every browser tab plays its own run on the server.

Open /?level=<id> to play a fixed course.

Examples:
  dogdash web
  dogdash web --http :9000 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error { return withLogger(false, runWeb) },
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
}

func runWeb(logger *log.Logger) error {
	store := openStore(flagDBPath, logger)
	if store != nil {
		defer store.Close()
	}
	setupGame(store, logger)

	server := web.NewServer(web.ServerConfig{
		Address:  flagHTTPAddr,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Store:    store,
		Logger:   logger.WithPrefix("dogdash-web"),
	})

	fmt.Printf("Serving Dog Dash on http://localhost:%s\n", portOf(flagHTTPAddr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
