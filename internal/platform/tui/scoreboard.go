package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dogdash/internal/games/dogdash"
	"github.com/vovakirdan/dogdash/internal/registry"
	"github.com/vovakirdan/dogdash/internal/storage"
)

const (
	boardRuns  = 50 // Runs listed per mode
	wideBoard  = 90 // Width from which the stats panel sits beside the table
	panelWidth = 24
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e8a43a"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5d5d7c")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1a2e")).Background(lipgloss.Color("#ffd700")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5d5d7c")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5d5d7c")).Italic(true).Padding(1, 2)
	boardHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// boardKeys are the scoreboard bindings.
type boardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "endless/levels")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists past runs of each mode with their stats and the
// stored best scores.
type ScoreboardModel struct {
	store *storage.Store
	modes []registry.GameInfo
	mode  int

	runs   []storage.ScoreEntry
	stats  storage.RunStats
	causes map[string]int
	bests  []storage.BestEntry // Best scores of the shown mode

	table table.Model
	help  help.Model
	keys  boardKeys

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the scoreboard showing the first registered
// mode. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  registry.List(),
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= wideBoard
}

func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Course", Width: 14},
		{Title: "Ended by", Width: 9},
		{Title: "When", Width: 12},
	}

	rows := m.height - 9
	if !m.wide() {
		rows -= 8 // Stats panel below the table
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(rows, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#5d5d7c")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#1a1a2e")).
		Background(lipgloss.Color("#e8a43a"))
	t.SetStyles(s)
	return t
}

// load reads the shown mode from the store.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.causes, m.bests = nil, storage.RunStats{}, nil, nil

	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		m.runs, _ = m.store.TopRuns(id, boardRuns)
		m.stats, _ = m.store.Stats(id)
		m.causes, _ = m.store.Causes(id)
		if all, err := m.store.BestScores(); err == nil {
			for _, b := range all {
				if bestKeyMode(b.Key) == id {
					m.bests = append(m.bests, b)
				}
			}
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		course := r.Course
		if course == "" {
			course = "endless"
		}
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			course,
			r.Cause,
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			if len(m.modes) > 1 {
				m.mode = (m.mode + 1) % len(m.modes)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		style := boardTabStyle
		if i == m.mode {
			style = boardActiveTab
		}
		tabs[i] = style.Render(g.Title)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center, boardTitleStyle.Render("RUNS  "), strings.Join(tabs, " "))

	runs := boardEmptyStyle.Render("No runs recorded yet.\nGo fetch a high score!")
	if len(m.runs) > 0 {
		runs = m.table.View()
	}
	runs = boardFrameStyle.Render(runs)

	panel := boardFrameStyle.Width(panelWidth).Render(m.panel())

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, runs, " ", panel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, runs, panel)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", boardHelpStyle.Render(m.help.View(m.keys)))
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, view)
}

// panel renders the stats of the shown mode.
func (m ScoreboardModel) panel() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Runs      %d\n", m.stats.Runs)
	fmt.Fprintf(&b, "Average   %.1f\n", m.stats.Average)
	if m.stats.Finished > 0 {
		fmt.Fprintf(&b, "Finished  %d\n", m.stats.Finished)
	}

	if len(m.causes) > 0 {
		causes := make([]string, 0, len(m.causes))
		for c := range m.causes {
			causes = append(causes, c)
		}
		sort.Slice(causes, func(i, j int) bool {
			if m.causes[causes[i]] != m.causes[causes[j]] {
				return m.causes[causes[i]] > m.causes[causes[j]]
			}
			return causes[i] < causes[j]
		})

		b.WriteString("\nEnded by\n")
		for _, c := range causes {
			fmt.Fprintf(&b, "  %-8s %d\n", c, m.causes[c])
		}
	}

	if len(m.bests) > 0 {
		b.WriteString("\nBest\n")
		for _, e := range m.bests {
			fmt.Fprintf(&b, "  %-*s %d\n", panelWidth-12, bestKeyLabel(e.Key), e.Value)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard full screen. goBack is false when
// the user quit instead of going back.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

// bestKeyMode returns the game ID a best-score key belongs to.
func bestKeyMode(k string) string {
	switch {
	case k == dogdash.BestKey(""):
		return dogdash.IDInfinite
	case strings.HasPrefix(k, dogdash.IDLevels+"."):
		return dogdash.IDLevels
	}
	return ""
}

// bestKeyLabel returns the short course label of a best-score key.
func bestKeyLabel(k string) string {
	if k == dogdash.BestKey("") {
		return "endless"
	}
	label := strings.TrimSuffix(strings.TrimPrefix(k, dogdash.IDLevels+"."), ".bestScore")
	if n := panelWidth - 12; len(label) > n {
		label = label[:n]
	}
	return label
}
