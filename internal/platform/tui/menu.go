package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/games/dogdash"
	"github.com/vovakirdan/dogdash/internal/storage"
)

const previewLen = 48 // Layout columns shown under the course list

var (
	menuTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e8a43a")).Bold(true)
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")).Bold(true)
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5d5d7c"))

	// Layout rune colors of the course preview.
	previewStyles = map[rune]lipgloss.Style{
		'.': lipgloss.NewStyle().Foreground(lipgloss.Color("#4a8c3f")),
		'^': lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3344")),
		'#': lipgloss.NewStyle().Foreground(lipgloss.Color("#8d8dac")),
		'=': lipgloss.NewStyle().Foreground(lipgloss.Color("#8d8dac")),
		'p': lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")),
		'_': lipgloss.NewStyle().Foreground(lipgloss.Color("#3d2b1e")),
		'|': lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true),
	}
)

// MenuItem is a selectable course: the endless run or one fixed level.
type MenuItem struct {
	GameID  string
	LevelID string // Empty for the endless run
	Title   string
	Layout  string // Empty for the endless run
	Best    int
}

type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceScores
	choiceQuit
)

// MenuModel is the course picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	cfg    core.RuntimeConfig
	keys   *KeyMapper
	choice menuChoice
}

// NewMenuModel lists the endless run followed by levels. Best scores come
// from store when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, levels []config.Level) MenuModel {
	items := make([]MenuItem, 0, len(levels)+1)
	items = append(items, MenuItem{GameID: dogdash.IDInfinite, Title: "Endless run"})
	for _, l := range levels {
		items = append(items, MenuItem{GameID: dogdash.IDLevels, LevelID: l.ID, Title: l.Name, Layout: l.Layout})
	}

	for i := range items {
		if store == nil {
			break
		}
		items[i].Best, _ = store.LoadBest(dogdash.BestKey(items[i].LevelID))
	}

	return MenuModel{items: items, cfg: cfg, keys: NewKeyMapper()}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Choosing anything ends the program; the
// caller reads the choice from Result.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cfg.ScreenW, m.cfg.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case MenuActionSelect:
			m.choice = choicePlay
			return m, tea.Quit
		case MenuActionScoreboard:
			m.choice = choiceScores
			return m, tea.Quit
		case MenuActionQuit:
			m.choice = choiceQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("D O G   D A S H"),
		menuDimStyle.Render("one button: jump spikes, blocks and pits"),
		"",
	}

	for i, item := range m.items {
		row := fmt.Sprintf("%-18s best %4d", item.Title, item.Best)
		if i == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	lines = append(lines, "", m.preview(), "", menuDimStyle.Render("↑/↓ choose · enter run · tab runs · q quit"))

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.PlaceHorizontal(m.cfg.ScreenW, lipgloss.Center, block)
}

// preview shows the start of the highlighted course.
func (m MenuModel) preview() string {
	item := m.items[m.cursor]
	if item.Layout == "" {
		return menuDimStyle.Render("procedural, harder the further you get")
	}

	var b strings.Builder
	for i, r := range []rune(item.Layout) {
		if i == previewLen {
			b.WriteString(menuDimStyle.Render("…"))
			break
		}
		style, ok := previewStyles[r]
		if !ok {
			style = menuDimStyle
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// Selected returns the chosen course, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != choicePlay || len(m.items) == 0 {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting reports whether the user quit from the menu.
func (m MenuModel) IsQuitting() bool {
	return m.choice == choiceQuit
}

// WantsScoreboard reports whether the user asked for the run history.
func (m MenuModel) WantsScoreboard() bool {
	return m.choice == choiceScores
}

// Config returns the runtime config with the latest terminal size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.cfg
}

// MenuResult is what the menu was left with.
type MenuResult struct {
	GameID          string
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	r := MenuResult{Config: m.cfg}
	switch m.choice {
	case choicePlay:
		item := m.items[m.cursor]
		r.GameID, r.LevelID = item.GameID, item.LevelID
	case choiceScores:
		r.WantsScoreboard = true
	default:
		r.Quit = true
	}
	return r
}

// RunMenu shows the menu full screen until the user picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, levels []config.Level) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, levels), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	if m, ok := final.(MenuModel); ok {
		return m.Result(), nil
	}
	return MenuResult{Config: cfg, Quit: true}, nil
}
