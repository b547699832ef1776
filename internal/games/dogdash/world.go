package dogdash

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/dogdash/internal/config"
)

// Source fills a world with course content for the column range [start, end).
// Implementations append in non-decreasing column order and never revisit a
// column they already wrote.
type Source interface {
	Fill(w *World, start, end int)
}

// World is the windowed course buffer: live obstacles ordered by x, plus the
// set of pit columns. It grows forward on demand and is trimmed behind the dog.
type World struct {
	cfg    config.World
	source Source

	obstacles []Obstacle // Ordered by X
	pits      map[int]struct{}
	pitOrder  []int // Ascending pit columns, mirrors pits for trimming

	generatedUpTo int
	lastPit       int
}

// NewWorld creates an empty world fed by source.
func NewWorld(cfg config.World, source Source) *World {
	return &World{
		cfg:       cfg,
		source:    source,
		obstacles: make([]Obstacle, 0, 64),
		pits:      make(map[int]struct{}),
		lastPit:   math.MinInt,
	}
}

// GeneratedUpTo returns the exclusive column bound of generated content.
func (w *World) GeneratedUpTo() int {
	return w.generatedUpTo
}

// EnsureGenerated extends the world chunk by chunk until it reaches at least
// GenAhead columns past playerColumn.
func (w *World) EnsureGenerated(playerColumn int) {
	for playerColumn+w.cfg.GenAhead > w.generatedUpTo {
		w.Generate(w.generatedUpTo, w.generatedUpTo+w.cfg.ChunkSize)
	}
}

// Generate asks the source for [start, end) and advances GeneratedUpTo to end.
func (w *World) Generate(start, end int) {
	if end < w.generatedUpTo {
		panic(fmt.Sprintf("dogdash: generate end %d behind generated bound %d", end, w.generatedUpTo))
	}
	if w.source != nil {
		w.source.Fill(w, start, end)
	}
	w.generatedUpTo = end
}

// AddObstacle appends an obstacle. Obstacles must arrive in x order.
func (w *World) AddObstacle(o Obstacle) {
	if n := len(w.obstacles); n > 0 && o.X < w.obstacles[n-1].X {
		panic(fmt.Sprintf("dogdash: obstacle at x=%v appended after x=%v", o.X, w.obstacles[n-1].X))
	}
	w.obstacles = append(w.obstacles, o)
}

// MarkPit removes the ground from column. Pits must arrive in ascending order.
func (w *World) MarkPit(column int) {
	if column <= w.lastPit {
		panic(fmt.Sprintf("dogdash: pit column %d marked after %d", column, w.lastPit))
	}
	w.lastPit = column
	w.pits[column] = struct{}{}
	w.pitOrder = append(w.pitOrder, column)
}

// IsPit reports whether column has no ground.
func (w *World) IsPit(column int) bool {
	_, ok := w.pits[column]
	return ok
}

// EvictBehind drops every obstacle and pit more than EvictionWindow columns
// behind playerColumn. Content inside the window is untouched.
func (w *World) EvictBehind(playerColumn int) {
	cutoff := playerColumn - w.cfg.EvictionWindow

	i := sort.Search(len(w.obstacles), func(i int) bool {
		return w.obstacles[i].Column(w.cfg.BlockSize) >= cutoff
	})
	if i > 0 {
		w.obstacles = w.obstacles[i:]
	}

	j := 0
	for j < len(w.pitOrder) && w.pitOrder[j] < cutoff {
		delete(w.pits, w.pitOrder[j])
		j++
	}
	if j > 0 {
		w.pitOrder = w.pitOrder[j:]
	}
}

// QueryNearby returns the obstacles within NearbyBlocks block widths of x.
// The result aliases the buffer and is valid until the next mutation.
func (w *World) QueryNearby(x float64) []Obstacle {
	r := w.cfg.NearbyBlocks * w.cfg.BlockSize
	return w.Between(x-r, x+r)
}

// Between returns the obstacles with lo <= X <= hi, in buffer order.
// The result aliases the buffer and is valid until the next mutation.
func (w *World) Between(lo, hi float64) []Obstacle {
	start := sort.Search(len(w.obstacles), func(i int) bool {
		return w.obstacles[i].X >= lo
	})
	end := start
	for end < len(w.obstacles) && w.obstacles[end].X <= hi {
		end++
	}
	return w.obstacles[start:end]
}

// Obstacles returns every live obstacle in buffer order.
func (w *World) Obstacles() []Obstacle {
	return w.obstacles
}

// Pits returns the live pit columns in ascending order.
func (w *World) Pits() []int {
	return w.pitOrder
}

// PitsBetween returns the pit columns in [from, to].
func (w *World) PitsBetween(from, to int) []int {
	start := sort.SearchInts(w.pitOrder, from)
	end := start
	for end < len(w.pitOrder) && w.pitOrder[end] <= to {
		end++
	}
	return w.pitOrder[start:end]
}
