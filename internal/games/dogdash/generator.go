package dogdash

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/dogdash/internal/config"
)

// Archetype identifies the shape of a generated feature.
type Archetype uint8

const (
	ArchetypeGap      Archetype = iota + 1 // 2-3 pit columns, optional trailing spike
	ArchetypePlatform                      // 2-3 ground blocks, optional trailing spike
	ArchetypePadRun                        // Jump pad followed by a run of spikes
	ArchetypeSpikes                        // Cluster of adjacent spikes
)

// String returns the archetype name.
func (a Archetype) String() string {
	switch a {
	case ArchetypeGap:
		return "gap"
	case ArchetypePlatform:
		return "platform"
	case ArchetypePadRun:
		return "pad-run"
	case ArchetypeSpikes:
		return "spikes"
	default:
		return fmt.Sprintf("archetype(%d)", uint8(a))
	}
}

// Feature records one placed archetype instance.
type Feature struct {
	Archetype  Archetype
	Column     int     // First column of the feature
	Footprint  int     // Columns the cursor skips for the feature itself
	Spacing    int     // Empty columns that follow the footprint
	Difficulty float64 // Difficulty at Column
}

// End returns the column the cursor advanced to after this feature.
func (f Feature) End() int {
	return f.Column + f.Footprint + f.Spacing
}

// Generator is the procedural Source for the infinite mode. It walks a
// persistent cursor through the world, choosing an archetype at each stop
// by a weighted roll whose bands shift with the difficulty at that column.
type Generator struct {
	cfg     config.Generator
	world   config.World
	curve   config.DifficultyCurve
	rng     *rand.Rand
	cursor  int
	groundY float64
}

// NewGenerator creates a generator that draws from rng. The same rng seed
// and config always produce the same course.
func NewGenerator(cfg config.DogDashConfig, rng *rand.Rand) *Generator {
	return &Generator{
		cfg:     cfg.Generator,
		world:   cfg.World,
		curve:   config.NewDifficultyCurve(cfg.Difficulty),
		rng:     rng,
		groundY: cfg.World.GroundY(),
	}
}

// Cursor returns the next column the generator will consider.
func (g *Generator) Cursor() int {
	return g.cursor
}

// Fill implements Source.
func (g *Generator) Fill(w *World, start, end int) {
	g.Generate(w, start, end)
}

// Generate places features starting at the cursor until it reaches end and
// returns them in placement order. A feature that starts before end may
// place content past it; the cursor carries over into the next call so the
// spacing after that feature still holds.
func (g *Generator) Generate(w *World, start, end int) []Feature {
	var placed []Feature

	col := max(g.cursor, start)
	for col < end {
		if col < g.world.SafeZone {
			col++
			continue
		}

		f := g.place(w, col)
		placed = append(placed, f)
		col = f.End()
	}
	g.cursor = col

	return placed
}

// place rolls and writes a single feature at col.
func (g *Generator) place(w *World, col int) Feature {
	d := g.curve.Level(col)
	roll := g.rng.Float64()

	lo, hi := g.cfg.SpacingRange(d)
	spacing := lo + g.rng.Intn(hi-lo+1)

	f := Feature{Column: col, Spacing: spacing, Difficulty: d}

	switch {
	case roll < g.cfg.GapBand.At(d):
		width := 2
		if g.rng.Float64() < g.cfg.GapWideChance.At(d) {
			width = 3
		}
		for i := 0; i < width; i++ {
			w.MarkPit(col + i)
		}
		if d > g.cfg.GapSpikeMinLevel && g.rng.Float64() < g.cfg.GapSpikeChance.At(d) {
			w.AddObstacle(g.obstacle(KindSpike, col+width+1))
		}
		f.Archetype, f.Footprint = ArchetypeGap, width

	case roll < g.cfg.PlatformBand.At(d):
		width := 2 + g.rng.Intn(2)
		for i := 0; i < width; i++ {
			w.AddObstacle(g.obstacle(KindBlock, col+i))
		}
		if g.rng.Float64() < g.cfg.PlatformSpikeChance.At(d) {
			w.AddObstacle(g.obstacle(KindSpike, col+width+1))
		}
		f.Archetype, f.Footprint = ArchetypePlatform, width

	case roll < g.cfg.PadBand.At(d) && d > g.cfg.PadMinLevel:
		w.AddObstacle(g.obstacle(KindPad, col))
		run := int(g.cfg.PadRun.Base) + int(math.Floor(g.cfg.PadRun.Slope*d*g.rng.Float64()))
		for i := 1; i <= run; i++ {
			w.AddObstacle(g.obstacle(KindSpike, col+i))
		}
		f.Archetype, f.Footprint = ArchetypePadRun, run+1

	default:
		count := 1 + int(math.Floor(g.rng.Float64()*g.cfg.ClusterSpread.At(d)))
		for i := 0; i < count; i++ {
			w.AddObstacle(g.obstacle(KindSpike, col+i))
		}
		f.Archetype, f.Footprint = ArchetypeSpikes, count
	}

	return f
}

// obstacle builds a ground-level obstacle at column.
func (g *Generator) obstacle(kind Kind, column int) Obstacle {
	return Obstacle{
		Kind: kind,
		X:    float64(column) * g.world.BlockSize,
		Y:    g.groundY - g.world.BlockSize,
	}
}
