package core

// RuntimeConfig is what the platform tells a game when it (re)starts it.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Steps per second
	Seed     int64 // World seed; 0 lets the platform pick one
}

// DefaultConfig is an 80x25 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60}
}

// GameState is the summary a platform needs between ticks: what to save,
// and whether leaving to the menu is allowed.
type GameState struct {
	Score    int
	Best     int
	Attempt  int  // 0 before the first start
	GameOver bool // Crashed or finished
	Complete bool // Finished a course
	Paused   bool
}

// StepResult is the outcome of one tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Ended reports whether an attempt ended on this tick.
func (r StepResult) Ended() bool {
	return Has(r.Events, EventDeath) || Has(r.Events, EventWin)
}
