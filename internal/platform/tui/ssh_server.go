package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/storage"
)

// SSHServerConfig configures the Dog Dash SSH server.
type SSHServerConfig struct {
	Address     string        // Listen address, ":23234" by default
	HostKeyPath string        // Generated under ~/.dogdash when empty
	DBPath      string        // Scores database shared by all sessions
	IdleTimeout time.Duration // Idle connections are dropped after this
	TickRate    int           // Simulation ticks per second of each session
	Levels      []config.Level
	Logger      *log.Logger // Defaults to a stderr logger
}

// DefaultSSHServerConfig returns the settings used by "dogdash serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.dogdash/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Levels:      config.DefaultLevels(),
	}
}

// SSHServer serves Dog Dash over SSH, one Bubble Tea program per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer opens the scores database and prepares the Wish server.
// A database that cannot be opened only disables score keeping.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "dogdash-ssh"})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	keyPath, err := ensureHostKeyDir(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{config: cfg, logger: cfg.Logger}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
		s.store = nil
	}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(bubbletea.Middleware(s.teaHandler), s.trackConnection),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return s, nil
}

// ensureHostKeyDir resolves the host key location and creates its directory.
func ensureHostKeyDir(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, ".dogdash", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("rejecting session without a terminal", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s.store, cfg, s.config.Levels, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// trackConnection logs each connection and how long it stayed.
func (s *SSHServer) trackConnection(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		began := time.Now()
		logger.Info("connected")
		next(sess)
		logger.Info("disconnected", "duration", time.Since(began).Round(time.Second))
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("listening", "address", s.config.Address)
	failed := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	case err := <-failed:
		s.closeStore()
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown closes the listener, waits up to ten seconds for sessions
// and closes the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("close scores database", "error", err)
	}
	s.store = nil
}

// Store returns the scores database, or nil if it could not be opened.
func (s *SSHServer) Store() *storage.Store {
	return s.store
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
