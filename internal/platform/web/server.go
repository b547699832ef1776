package web

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogdash/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate of every connection.
	TickRate int

	// Seed pins the world of every connection. Zero means random.
	Seed int64

	// Store receives finished runs. May be nil.
	Store *storage.Store

	// Logger receives server and session logs.
	Logger *log.Logger
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:  ":8080",
		TickRate: 60,
	}
}

// Server serves the browser client and the /ws game endpoint.
type Server struct {
	config ServerConfig
	server *http.Server
	logger *log.Logger
}

// NewServer creates a web server with the given configuration.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Server{
		config: cfg,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           NewMux(cfg),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewMux routes / to the bundled client and /ws to a Handler.
func NewMux(cfg ServerConfig) *http.ServeMux {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	handler := NewHandler(HandlerConfig{
		Logger:   cfg.Logger,
		Store:    cfg.Store,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.Handle)
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
