// Package config provides YAML-based game configuration loading and
// difficulty management for Dog Dash.
package config

import (
	"errors"
	"fmt"
	"math"
)

// DogDashConfig contains every tuning constant of the simulation.
// Zero values are never meaningful; start from DefaultDogDashConfig.
type DogDashConfig struct {
	Physics    Physics          `yaml:"physics"`
	Player     Player           `yaml:"player"`
	World      World            `yaml:"world"`
	Generator  Generator        `yaml:"generator"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Run        Run              `yaml:"run"`
	Levels     []Level          `yaml:"levels"`
}

// Physics defines per-tick motion constants. Velocities are pixels per tick,
// negative is up.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	PadImpulse  float64 `yaml:"pad_impulse"`
	Speed       float64 `yaml:"speed"`
}

// Player defines the actor's size and hitbox insets in pixels.
type Player struct {
	Size          float64 `yaml:"size"`
	StartColumn   int     `yaml:"start_column"`
	InsetX        float64 `yaml:"inset_x"`        // Hitbox inset on left and right
	InsetY        float64 `yaml:"inset_y"`        // Hitbox inset on top and bottom
	LandTolerance float64 `yaml:"land_tolerance"` // Slack when landing on a block top
}

// World defines the play field and buffer windows. Distances in columns
// unless noted.
type World struct {
	BlockSize      float64 `yaml:"block_size"` // Pixels per column
	Width          float64 `yaml:"width"`      // Visible play area, pixels
	Height         float64 `yaml:"height"`     // Visible play area, pixels
	GroundOffset   float64 `yaml:"ground_offset"`
	ChunkSize      int     `yaml:"chunk_size"`
	GenAhead       int     `yaml:"gen_ahead"`
	SafeZone       int     `yaml:"safe_zone"`
	EvictionWindow int     `yaml:"eviction_window"`
	NearbyBlocks   float64 `yaml:"nearby_blocks"`   // Query half-width in blocks
	PitDeathDepth  float64 `yaml:"pit_death_depth"` // Pixels below Height
	FallOutDepth   float64 `yaml:"fall_out_depth"`  // Pixels below Height
}

// GroundY returns the pixel row of the ground line.
func (w World) GroundY() float64 {
	return w.Height - w.GroundOffset
}

// Ramp is a linear function of difficulty: Base + Slope*d.
type Ramp struct {
	Base  float64 `yaml:"base"`
	Slope float64 `yaml:"slope"`
}

// At evaluates the ramp at difficulty d.
func (r Ramp) At(d float64) float64 {
	return r.Base + r.Slope*d
}

// Generator holds the archetype band and spacing parameters of the
// procedural course generator.
type Generator struct {
	GapBand          Ramp    `yaml:"gap_band"`
	GapWideChance    Ramp    `yaml:"gap_wide_chance"`
	GapSpikeChance   Ramp    `yaml:"gap_spike_chance"`
	GapSpikeMinLevel float64 `yaml:"gap_spike_min_level"`

	PlatformBand        Ramp `yaml:"platform_band"`
	PlatformSpikeChance Ramp `yaml:"platform_spike_chance"`

	PadBand     Ramp    `yaml:"pad_band"`
	PadMinLevel float64 `yaml:"pad_min_level"`
	PadRun      Ramp    `yaml:"pad_run"` // Base + floor(Slope*d*r) spikes

	ClusterSpread Ramp `yaml:"cluster_spread"` // 1 + floor(r*At(d)) spikes

	MinGap      Ramp `yaml:"min_gap"`
	MinGapFloor int  `yaml:"min_gap_floor"`
	MaxGap      Ramp `yaml:"max_gap"`
	MaxGapFloor int  `yaml:"max_gap_floor"`
}

// SpacingRange returns the [min, max] column spacing after a feature placed
// at difficulty d. Both bounds are floored to integers and clamped to their
// floors, so the range is never empty or non-positive.
func (g Generator) SpacingRange(d float64) (int, int) {
	lo := max(g.MinGapFloor, int(math.Floor(g.MinGap.At(d))))
	hi := max(g.MaxGapFloor, int(math.Floor(g.MaxGap.At(d))))
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Run defines attempt lifecycle parameters.
type Run struct {
	RetryDelay int `yaml:"retry_delay"` // Ticks after death before a retry is accepted
}

// Level is a hand-authored course for the fixed-level mode.
type Level struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Layout string `yaml:"layout"`
}

// Validate reports configuration values the simulation cannot run with.
func (c DogDashConfig) Validate() error {
	var errs []error

	if c.World.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("world.block_size must be positive, got %v", c.World.BlockSize))
	}
	if c.World.Height <= c.World.GroundOffset {
		errs = append(errs, fmt.Errorf("world.height (%v) must exceed world.ground_offset (%v)", c.World.Height, c.World.GroundOffset))
	}
	if c.Physics.Speed <= 0 {
		errs = append(errs, fmt.Errorf("physics.speed must be positive, got %v", c.Physics.Speed))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity))
	}
	if math.Abs(c.Physics.PadImpulse) <= math.Abs(c.Physics.JumpImpulse) {
		errs = append(errs, errors.New("physics.pad_impulse must be stronger than physics.jump_impulse"))
	}
	if c.World.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("world.chunk_size must be positive, got %d", c.World.ChunkSize))
	}
	if c.World.GenAhead < 0 || c.World.EvictionWindow < 0 || c.World.SafeZone < 0 {
		errs = append(errs, errors.New("world.gen_ahead, world.eviction_window and world.safe_zone must not be negative"))
	}
	if c.Player.Size <= 2*c.Player.InsetX || c.Player.Size <= 2*c.Player.InsetY {
		errs = append(errs, errors.New("player hitbox insets leave no hitbox"))
	}
	if c.Generator.MinGapFloor < 1 {
		errs = append(errs, fmt.Errorf("generator.min_gap_floor must be at least 1, got %d", c.Generator.MinGapFloor))
	}
	if c.Difficulty.Progression.Type == "column" && c.Difficulty.Progression.MaxAt <= 0 {
		errs = append(errs, errors.New("difficulty.progression.max_at must be positive for column progression"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid dogdash config: %w", errors.Join(errs...))
	}
	return nil
}
