package core

// Action is a player intent, independent of the key or button behind it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionJump           // Jump; also starts and retries a run
	ActionConfirm        // Same as jump inside a run
	ActionPause          // Toggle pause while running
	ActionRestart        // Retry once the run is over
	ActionBack           // Leave to the menu
	ActionQuit           // Leave the program
	actionCount
)

var actionNames = [actionCount]string{"none", "jump", "confirm", "pause", "restart", "back", "quit"}

// String returns the lowercase action name.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// InputFrame is the set of actions pressed during one tick. Pressing an
// action twice in a tick counts once.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as pressed.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

// Has reports whether a was pressed.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether nothing was pressed.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear forgets every press.
func (f *InputFrame) Clear() {
	f.bits = 0
}
