package dogdash

import (
	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
)

// Actor is the physics state of the dog. Y grows downward; VY < 0 is up.
type Actor struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	PrevY    float64 `json:"-"`
	VY       float64 `json:"vy"`
	Grounded bool    `json:"grounded"`
}

// NewActor places a grounded actor at the configured start column.
func NewActor(cfg config.DogDashConfig) Actor {
	y := cfg.World.GroundY() - cfg.Player.Size
	return Actor{
		X:        float64(cfg.Player.StartColumn) * cfg.World.BlockSize,
		Y:        y,
		PrevY:    y,
		Grounded: true,
	}
}

// Column returns the column under the actor's left edge. This is the score
// column and the anchor for generation and eviction.
func (a Actor) Column(blockSize float64) int {
	return core.FloorDiv(a.X, blockSize)
}

// Hitbox returns the actor's inset collision box.
func (a Actor) Hitbox(p config.Player) core.Box {
	return core.NewBox(a.X, a.Y, p.Size, p.Size).Inset(p.InsetX, p.InsetY, p.InsetX, p.InsetY)
}

// Outcome is the terminal result of a tick.
type Outcome uint8

const (
	OutcomeAlive Outcome = iota
	OutcomeDead
	OutcomeComplete
)

// Cause names what ended an attempt.
type Cause string

const (
	CauseNone  Cause = ""
	CauseSpike Cause = "spike"
	CauseBlock Cause = "block"
	CausePit   Cause = "pit"
	CauseFall  Cause = "fall"
)

// TickResult reports what happened during one physics tick.
type TickResult struct {
	Outcome Outcome
	Cause   Cause
	Events  []core.Event
}

// Physics advances an actor against a world. It holds only configuration;
// all mutable state lives in the Actor and the World.
type Physics struct {
	cfg     config.DogDashConfig
	groundY float64
}

// NewPhysics creates a physics engine for cfg.
func NewPhysics(cfg config.DogDashConfig) *Physics {
	return &Physics{cfg: cfg, groundY: cfg.World.GroundY()}
}

// Step runs one fixed tick. The world is extended ahead of and trimmed behind
// the actor before any collision test. jump is a pending press; it is
// consumed whether or not the actor can jump. finishX <= 0 means no finish
// line.
//
// Collisions resolve in order ground, blocks, spikes, pads. The first lethal
// contact ends the tick.
func (p *Physics) Step(a *Actor, w *World, jump bool, finishX float64) TickResult {
	var res TickResult
	bs := p.cfg.World.BlockSize
	size := p.cfg.Player.Size

	a.PrevY = a.Y
	col := a.Column(bs)
	w.EnsureGenerated(col)
	w.EvictBehind(col)

	if jump && a.Grounded {
		a.VY = p.cfg.Physics.JumpImpulse
		a.Grounded = false
		res.Events = append(res.Events, core.EventJump)
	}

	a.X += p.cfg.Physics.Speed
	if !a.Grounded {
		a.VY += p.cfg.Physics.Gravity
	}
	a.Y += a.VY
	a.Grounded = false

	// Ground under the actor's center.
	center := core.FloorDiv(a.X+size/2, bs)
	if !w.IsPit(center) {
		if a.Y+size >= p.groundY {
			if a.PrevY+size < p.groundY-2 {
				res.Events = append(res.Events, core.EventLand)
			}
			a.Y = p.groundY - size
			a.VY = 0
			a.Grounded = true
		}
	} else if a.Y > p.cfg.World.Height+p.cfg.World.PitDeathDepth {
		return p.die(res, CausePit)
	}

	hb := a.Hitbox(p.cfg.Player)
	nearby := w.QueryNearby(a.X)

	for _, o := range nearby {
		if o.Kind != KindBlock || !hb.Overlaps(o.Hitbox(bs)) {
			continue
		}
		if a.PrevY+size > o.Y+p.cfg.Player.LandTolerance {
			return p.die(res, CauseBlock)
		}
		a.Y = o.Y - size
		a.VY = 0
		a.Grounded = true
		res.Events = append(res.Events, core.EventBlock)
	}

	for _, o := range nearby {
		if o.Kind == KindSpike && hb.Overlaps(o.Hitbox(bs)) {
			return p.die(res, CauseSpike)
		}
	}

	for _, o := range nearby {
		if o.Kind == KindPad && a.VY >= 0 && hb.Overlaps(o.Hitbox(bs)) {
			a.VY = p.cfg.Physics.PadImpulse
			a.Grounded = false
			res.Events = append(res.Events, core.EventPadBoost)
		}
	}

	if a.Y > p.cfg.World.Height+p.cfg.World.FallOutDepth {
		return p.die(res, CauseFall)
	}

	if finishX > 0 && a.X >= finishX {
		res.Outcome = OutcomeComplete
		res.Events = append(res.Events, core.EventWin)
	}

	return res
}

func (p *Physics) die(res TickResult, cause Cause) TickResult {
	res.Outcome = OutcomeDead
	res.Cause = cause
	res.Events = append(res.Events, core.EventDeath)
	return res
}
