package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/registry"
	"github.com/vovakirdan/dogdash/internal/storage"
)

// RunReporter is implemented by games that can describe how the last
// attempt ended.
type RunReporter interface {
	RunSummary() (course, cause string)
}

// LevelSelector is implemented by games with selectable fixed courses.
type LevelSelector interface {
	SelectLevel(id string)
}

// Model plays one game at the configured tick rate. Keys pressed between
// two ticks are merged into the frame the next tick consumes.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	keys   *KeyMapper

	pending core.InputFrame
	state   core.GameState

	embedded bool // Back returns to the owner instead of quitting
	quit     bool
	back     bool
}

// NewModel prepares game for play. The game is reset by Init.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		logger:  logger,
		config:  cfg,
		keys:    NewKeyMapper(),
		pending: core.NewInputFrame(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		res := m.game.Step(m.pending)
		m.pending.Clear()
		m.state = res.State
		if res.Ended() {
			m.recordRun()
		}
		cmd = tickCmd(m.config.TickRate)

	case tea.KeyMsg:
		cmd = m.press(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	}
	return m, cmd
}

func (m *Model) press(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+s" {
		m.screenshot()
		return nil
	}
	if m.keys.MapKeyToFrame(msg, &m.pending) {
		m.quit = true
		return tea.Quit
	}

	// Back leaves the game only when nothing is in motion.
	idle := m.state.GameOver || m.state.Paused
	if idle && m.keys.MapKeyToMenuAction(msg) == MenuActionBack {
		m.back = true
		if !m.embedded {
			return tea.Quit
		}
	}
	return nil
}

// recordRun stores the attempt that just ended. Zero scores are not kept.
func (m *Model) recordRun() {
	if m.store == nil || m.state.Score == 0 {
		return
	}

	run := storage.ScoreEntry{GameID: m.game.ID(), Score: m.state.Score}
	if r, ok := m.game.(RunReporter); ok {
		run.Course, run.Cause = r.RunSummary()
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("save run", "game", run.GameID, "err", err)
	}
}

// screenshot dumps the current frame as text under ~/.dogdash/screenshots.
func (m *Model) screenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".dogdash", "screenshots")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405")))

	err = os.MkdirAll(dir, 0o755)
	if err == nil {
		err = os.WriteFile(path, []byte(m.screen.String()), 0o600)
	}
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// IsQuitting reports whether the player quit the program.
func (m Model) IsQuitting() bool { return m.quit }

// BackToMenu reports whether the player left the game for the menu.
func (m Model) BackToMenu() bool { return m.back }

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run plays game full screen until the player quits or goes back. It
// reports whether the player asked to quit the program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (quit bool, err error) {
	final, err := tea.NewProgram(NewModel(game, store, cfg, logger), tea.WithAltScreen()).Run()
	if err != nil {
		return true, err
	}
	m, ok := final.(Model)
	return !ok || m.IsQuitting(), nil
}
