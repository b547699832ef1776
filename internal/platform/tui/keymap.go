package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dogdash/internal/core"
)

// MenuAction is what a key does on the menu screen.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

type playBinding struct {
	key    key.Binding
	action core.Action
}

type menuBinding struct {
	key    key.Binding
	action MenuAction
}

// KeyMapper turns key presses into run and menu actions. First match wins.
type KeyMapper struct {
	play []playBinding
	menu []menuBinding
}

// NewKeyMapper returns the default bindings.
func NewKeyMapper() *KeyMapper {
	quit := key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	back := key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "menu"))

	return &KeyMapper{
		play: []playBinding{
			{key.NewBinding(key.WithKeys(" ", "space", "w", "up"), key.WithHelp("space", "jump")), core.ActionJump},
			{key.NewBinding(key.WithKeys("enter")), core.ActionConfirm},
			{key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")), core.ActionPause},
			{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")), core.ActionRestart},
			{back, core.ActionBack},
			{quit, core.ActionQuit},
		},
		menu: []menuBinding{
			{key.NewBinding(key.WithKeys("up", "k", "w")), MenuActionUp},
			{key.NewBinding(key.WithKeys("down", "j", "s")), MenuActionDown},
			{key.NewBinding(key.WithKeys("enter", " ", "space")), MenuActionSelect},
			{key.NewBinding(key.WithKeys("tab")), MenuActionScoreboard},
			{back, MenuActionBack},
			{quit, MenuActionQuit},
		},
	}
}

// MapKey returns the run action of msg and whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.play {
		if key.Matches(msg, b.key) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the action of msg in frame and reports whether
// it asks to quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MapKeyToMenuAction returns the menu action of msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.key) {
			return b.action
		}
	}
	return MenuActionNone
}
