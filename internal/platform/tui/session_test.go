package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	return NewSessionModel(nil, cfg, config.DefaultLevels(), log.New(io.Discard))
}

// send feeds msg to m and returns the updated session.
func send(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionMenuListsCourses(t *testing.T) {
	m := newTestSession(t)

	view := m.View()
	for _, want := range []string{"Endless run", "Backyard", "Park"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q:\n%s", want, view)
		}
	}
}

func TestSessionPlayAndBackToMenu(t *testing.T) {
	m := newTestSession(t)
	tick := TickMsg(time.Now())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewRun {
		t.Fatal("enter did not start a run")
	}

	m = send(t, m, runeKey(' '))
	m = send(t, m, tick)
	if !strings.Contains(m.View(), "Score") {
		t.Errorf("HUD not rendered:\n%s", m.View())
	}
	if m.run.state.Attempt != 1 {
		t.Fatalf("Attempt = %d, want 1", m.run.state.Attempt)
	}

	// Back is ignored while running.
	m = send(t, m, runeKey('b'))
	if m.view != viewRun {
		t.Fatal("back left a running game")
	}

	m = send(t, m, runeKey('p'))
	m = send(t, m, tick)
	if !m.run.state.Paused {
		t.Fatal("game not paused")
	}

	m = send(t, m, runeKey('b'))
	if m.view != viewMenu {
		t.Fatal("back while paused did not return to the menu")
	}
	if !strings.Contains(m.View(), "Endless run") {
		t.Error("menu not shown after leaving the game")
	}
}

func TestSessionLevelSelection(t *testing.T) {
	m := newTestSession(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewRun {
		t.Fatal("enter did not start a run")
	}

	r, ok := m.run.game.(RunReporter)
	if !ok {
		t.Fatal("game does not report runs")
	}
	if course, _ := r.RunSummary(); course != "02-park" {
		t.Errorf("course = %q, want 02-park", course)
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := newTestSession(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScores {
		t.Fatal("tab did not open the scoreboard")
	}
		m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatal("esc did not close the scoreboard")
	}
	if !strings.Contains(m.View(), "Endless run") {
		t.Error("menu not shown after the scoreboard")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if sm := next.(SessionModel); sm.view != viewClosed {
		t.Errorf("view = %d, want closed", sm.view)
	}
	if v := next.View(); v != "" {
		t.Errorf("View after quit = %q, want empty", v)
	}
}
