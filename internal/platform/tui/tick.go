// Package tui runs Dog Dash in a terminal: the Bubble Tea loop, key
// mapping, the course menu and scoreboard, and the Wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the running game to advance one step.
type TickMsg time.Time

// tickCmd schedules the next step at rate ticks per second. Each tick is
// scheduled from the previous one, so a slow frame delays the rest.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
