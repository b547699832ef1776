package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/registry"
	"github.com/vovakirdan/dogdash/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewScores
	viewRun
	viewClosed
)

// SessionModel is one remote player's program. It moves between the course
// menu, the run history and a run without ever leaving Bubble Tea.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	levels []config.Level
	logger *log.Logger

	view   sessionView
	menu   MenuModel
	scores ScoreboardModel
	run    Model
}

// NewSessionModel starts a session on the course menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, levels []config.Level, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := SessionModel{store: store, config: cfg, levels: levels, logger: logger}
	m.showMenu()
	return m
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}
	// Only a run consumes ticks; stale ones arrive after it ends.
	if _, ok := msg.(TickMsg); ok && m.view != viewRun {
		return m, nil
	}

	switch m.view {
	case viewRun:
		return m.updateRun(msg)
	case viewScores:
		return m.updateScores(msg)
	case viewMenu:
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m *SessionModel) showMenu() {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config, m.levels)
}

func (m SessionModel) close() (tea.Model, tea.Cmd) {
	m.view = viewClosed
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.close()
	case m.menu.WantsScoreboard():
		m.view = viewScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	}

	item := m.menu.Selected()
	if item == nil {
		return m, nil
	}
	return m.startRun(*item)
}

func (m SessionModel) startRun(item MenuItem) (tea.Model, tea.Cmd) {
	game, err := registry.Create(item.GameID)
	if err != nil {
		m.logger.Error("create game", "game", item.GameID, "error", err)
		m.showMenu()
		return m, nil
	}
	if item.LevelID != "" {
		if ls, ok := game.(LevelSelector); ok {
			ls.SelectLevel(item.LevelID)
		}
	}

	m.config = m.menu.Config()
	m.config.Seed = time.Now().UnixNano()
	m.run = NewModel(game, m.store, m.config, m.logger)
	m.run.embedded = true
	m.view = viewRun
	m.logger.Info("run started", "game", item.GameID, "level", item.LevelID)
	return m, m.run.Init()
}

func (m SessionModel) updateRun(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.run.Update(msg)
	m.run = next.(Model)

	switch {
	case m.run.IsQuitting():
		return m.close()
	case m.run.BackToMenu():
		m.showMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		return m.close()
	case m.scores.IsGoingBack():
		m.showMenu()
		return m, nil
	}
	return m, cmd
}

// View implements tea.Model.
func (m SessionModel) View() string {
	switch m.view {
	case viewRun:
		return m.run.View()
	case viewScores:
		return m.scores.View()
	case viewMenu:
		return m.menu.View()
	}
	return ""
}
