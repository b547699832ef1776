package dogdash

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
)

// State is the run lifecycle state.
type State uint8

const (
	StateStart State = iota
	StatePlaying
	StateDead
	StateComplete
)

// String returns the state's wire name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StateDead:
		return "dead"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BestScoreStore persists best scores by key.
type BestScoreStore interface {
	LoadBest(key string) (int, error)
	SaveBest(key string, value int) error
}

// MemoryBest is an in-process BestScoreStore.
type MemoryBest struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryBest creates an empty in-memory store.
func NewMemoryBest() *MemoryBest {
	return &MemoryBest{values: make(map[string]int)}
}

// LoadBest returns the stored value, or 0 if the key is unknown.
func (m *MemoryBest) LoadBest(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

// SaveBest stores value under key.
func (m *MemoryBest) SaveBest(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// BestKey returns the persistence key for a mode. An empty levelID selects
// the infinite mode.
func BestKey(levelID string) string {
	if levelID == "" {
		return "dogdash.bestScore"
	}
	return "dogdash_levels." + levelID + ".bestScore"
}

// Options configures a Session.
type Options struct {
	Config config.DogDashConfig
	Seed   int64
	Course *Course        // nil plays the infinite procedural course
	Best   BestScoreStore // nil keeps the best score in memory only
	Sink   core.EventSink // Receives every tick event, may be nil
	Logger *log.Logger    // nil discards
}

// Session owns one player's run: the world, the actor, and the attempt
// bookkeeping. It is not safe for concurrent use.
type Session struct {
	cfg     config.DogDashConfig
	physics *Physics
	course  *Course
	seeds   *rand.Rand // Draws a fresh generator seed per attempt

	world *World
	gen   *Generator
	actor Actor
	pose  Presentation

	state     State
	attempt   int
	score     int
	best      int
	newBest   bool
	cause     Cause
	idleTicks int // Ticks spent in Dead or Complete
	ticks     int // Ticks of the current attempt

	bestKey string
	store   BestScoreStore
	sink    core.EventSink
	logger  *log.Logger
}

// NewSession creates a session in the Start state and loads the best score.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := opts.Best
	if store == nil {
		store = NewMemoryBest()
	}

	s := &Session{
		cfg:     opts.Config,
		physics: NewPhysics(opts.Config),
		course:  opts.Course,
		seeds:   rand.New(rand.NewSource(opts.Seed)),
		store:   store,
		sink:    opts.Sink,
		logger:  logger,
	}
	if s.course != nil {
		s.bestKey = BestKey(s.course.ID)
	} else {
		s.bestKey = BestKey("")
	}

	best, err := store.LoadBest(s.bestKey)
	if err != nil {
		s.logger.Warn("load best score", "key", s.bestKey, "err", err)
	}
	s.best = best

	s.reset()
	return s
}

// reset rebuilds the world and actor for a fresh attempt.
func (s *Session) reset() {
	if s.course != nil {
		s.gen = nil
		s.world = NewWorld(s.cfg.World, s.course)
	} else {
		s.gen = NewGenerator(s.cfg, rand.New(rand.NewSource(s.seeds.Int63())))
		s.world = NewWorld(s.cfg.World, s.gen)
	}
	s.actor = NewActor(s.cfg)
	s.pose = NewPresentation()
	s.score = 0
	s.newBest = false
	s.cause = CauseNone
	s.idleTicks = 0
	s.ticks = 0
	s.world.EnsureGenerated(s.actor.Column(s.cfg.World.BlockSize))
}

// StartAttempt begins a new attempt with a freshly generated world.
func (s *Session) StartAttempt() {
	if s.attempt > 0 {
		s.reset()
	}
	s.attempt++
	s.state = StatePlaying
	s.logger.Debug("attempt started", "attempt", s.attempt, "course", s.courseName())
	s.emit([]core.Event{core.EventStart})
}

// OnDeath ends the current attempt with score and updates the best score.
// It does nothing outside the Playing state.
func (s *Session) OnDeath(score int) {
	if s.state != StatePlaying {
		return
	}
	s.state = StateDead
	s.score = score
	s.idleTicks = 0
	s.recordBest()
	s.logger.Info("attempt ended",
		"attempt", s.attempt,
		"score", s.score,
		"cause", string(s.cause),
		"course", s.courseName(),
	)
}

// onComplete ends the current attempt at the finish line.
func (s *Session) onComplete() {
	s.state = StateComplete
	s.idleTicks = 0
	s.recordBest()
	s.logger.Info("course complete", "attempt", s.attempt, "score", s.score, "course", s.courseName())
}

func (s *Session) recordBest() {
	if s.score <= s.best {
		return
	}
	s.best = s.score
	s.newBest = true
	if err := s.store.SaveBest(s.bestKey, s.best); err != nil {
		s.logger.Warn("save best score", "key", s.bestKey, "err", err)
		return
	}
	s.logger.Debug("best score updated", "key", s.bestKey, "best", s.best)
}

// Step advances the session by one tick. press is a coalesced jump (or
// retry) edge. It returns the events of the tick.
func (s *Session) Step(press bool) []core.Event {
	switch s.state {
	case StateStart:
		if press {
			s.StartAttempt()
			return []core.Event{core.EventStart}
		}
		return nil

	case StateDead, StateComplete:
		s.idleTicks++
		if press && s.CanRetry() {
			s.StartAttempt()
			return []core.Event{core.EventStart}
		}
		return nil
	}

	s.ticks++
	res := s.physics.Step(&s.actor, s.world, press, s.finishX())
	s.score = max(s.score, s.actor.Column(s.cfg.World.BlockSize))
	s.pose.Update(s.actor, res.Events)

	switch res.Outcome {
	case OutcomeDead:
		s.cause = res.Cause
		s.OnDeath(s.actor.Column(s.cfg.World.BlockSize))
	case OutcomeComplete:
		s.onComplete()
	}

	s.emit(res.Events)
	return res.Events
}

// Retry restarts from Dead or Complete once the retry delay has elapsed.
// It reports whether a new attempt started.
func (s *Session) Retry() bool {
	if (s.state == StateDead || s.state == StateComplete) && s.CanRetry() {
		s.StartAttempt()
		return true
	}
	return false
}

// CanRetry reports whether the retry delay after an ended attempt is over.
func (s *Session) CanRetry() bool {
	return s.idleTicks > s.cfg.Run.RetryDelay
}

func (s *Session) emit(events []core.Event) {
	if s.sink == nil {
		return
	}
	for _, e := range events {
		s.sink.HandleEvent(e)
	}
}

func (s *Session) finishX() float64 {
	if s.course == nil {
		return 0
	}
	return s.course.FinishX()
}

func (s *Session) courseName() string {
	if s.course == nil {
		return "infinite"
	}
	return s.course.ID
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Attempt returns the current attempt number, 0 before the first start.
func (s *Session) Attempt() int { return s.attempt }

// Score returns the furthest column reached in the current attempt.
func (s *Session) Score() int { return s.score }

// Best returns the best score for this session's course.
func (s *Session) Best() int { return s.best }

// NewBest reports whether the last ended attempt set a new best.
func (s *Session) NewBest() bool { return s.newBest }

// Cause returns what ended the last attempt.
func (s *Session) Cause() Cause { return s.cause }

// Ticks returns the number of simulated ticks in the current attempt.
func (s *Session) Ticks() int { return s.ticks }

// Actor returns a copy of the actor's physics state.
func (s *Session) Actor() Actor { return s.actor }

// Pose returns the actor's cosmetic state.
func (s *Session) Pose() Presentation { return s.pose }

// World returns the live world. Callers must treat it as read-only.
func (s *Session) World() *World { return s.world }

// Course returns the fixed course, or nil in infinite mode.
func (s *Session) Course() *Course { return s.course }

// Config returns the session's configuration.
func (s *Session) Config() config.DogDashConfig { return s.cfg }
