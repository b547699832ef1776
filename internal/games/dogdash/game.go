// Package dogdash implements Dog Dash, a side-scrolling runner where a dog
// jumps spikes, blocks and pits on a course that is either generated
// procedurally without end or read from a hand-authored level.
package dogdash

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
	"github.com/vovakirdan/dogdash/internal/registry"
)

// Registered game IDs.
const (
	IDInfinite = "dogdash"
	IDLevels   = "dogdash_levels"
)

// Settings applied to every game created through the registry. They are
// set once by the CLI before any game starts.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       string
	bestStore        BestScoreStore
	eventSink        core.EventSink
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured difficulty.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel selects the first course of the levels mode by ID.
func SetStartLevel(id string) {
	startLevel = id
}

// SetBestStore sets where best scores are persisted.
func SetBestStore(store BestScoreStore) {
	bestStore = store
}

// SetEventSink sets the receiver of gameplay events, such as a sound player.
func SetEventSink(sink core.EventSink) {
	eventSink = sink
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a Session to the game registry.
type Game struct {
	id      string
	title   string
	levels  bool
	runtime core.RuntimeConfig
	cfg     config.DogDashConfig
	courses []*Course
	level   int
	session *Session
	paused  bool
	events  []core.Event // Events of the last tick
	frame   int
	levelID string // Preferred first course, overrides SetStartLevel
}

// NewInfinite creates the procedural endless game.
func NewInfinite() *Game {
	return &Game{id: IDInfinite, title: "Dog Dash"}
}

// NewLevels creates the fixed-course game.
func NewLevels() *Game {
	return &Game{id: IDLevels, title: "Dog Dash: Levels", levels: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a fresh session in the Start
// state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadDogDash(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "path", configPath, "err", err)
		cfg = config.DefaultDogDashConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.courses = nil
	g.level = 0
	if g.levels {
		courses, err := LoadCourses(cfg)
		if err != nil || len(courses) == 0 {
			logger.Warn("falling back to built-in levels", "err", err)
			cfg.Levels = config.DefaultLevels()
			courses, _ = LoadCourses(cfg)
		}
		g.courses = courses
		want := g.levelID
		if want == "" {
			want = startLevel
		}
		for i, c := range courses {
			if c.ID == want {
				g.level = i
			}
		}
	}

	g.paused = false
	g.events = nil
	g.frame = 0
	g.session = g.newSession()
}

func (g *Game) newSession() *Session {
	var course *Course
	if g.levels {
		course = g.courses[g.level]
	}
	return NewSession(Options{
		Config: g.cfg,
		Seed:   g.runtime.Seed,
		Course: course,
		Best:   bestStore,
		Sink:   eventSink,
		Logger: logger.With("game", g.id),
	})
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	over := s.State() == StateDead || s.State() == StateComplete

	if in.Has(core.ActionPause) && s.State() == StatePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		g.events = nil
		return core.StepResult{State: g.State()}
	}

	g.frame++
	press := in.Has(core.ActionJump) || in.Has(core.ActionConfirm)
	if over {
		press = press || in.Has(core.ActionRestart)
	}

	// A finished course moves on to the next one.
	if g.levels && s.State() == StateComplete && press && s.CanRetry() && len(g.courses) > 1 {
		g.level = (g.level + 1) % len(g.courses)
		g.session = g.newSession()
		g.session.StartAttempt()
		g.events = []core.Event{core.EventStart}
		return core.StepResult{State: g.State(), Events: g.events}
	}

	g.events = s.Step(press)
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	return core.GameState{
		Score:    s.Score(),
		Best:     s.Best(),
		Attempt:  s.Attempt(),
		GameOver: s.State() == StateDead || s.State() == StateComplete,
		Complete: s.State() == StateComplete,
		Paused:   g.paused,
	}
}

// SelectLevel picks the first course of this instance by ID. It takes
// effect on the next Reset.
func (g *Game) SelectLevel(id string) {
	g.levelID = id
}

// Session returns the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Snapshot returns the renderer view of the last tick.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot(g.events)
}

// Register the games with the registry
func init() {
	registry.Register(IDInfinite, func() registry.Game {
		return NewInfinite()
	})
	registry.Register(IDLevels, func() registry.Game {
		return NewLevels()
	})
}

// RunSummary reports the course and the cause of the last ended attempt.
func (g *Game) RunSummary() (course, cause string) {
	s := g.session
	if c := s.Course(); c != nil {
		course = c.ID
	}
	if s.State() == StateComplete {
		return course, "finish"
	}
	return course, string(s.Cause())
}
