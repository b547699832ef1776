package dogdash

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/dogdash/internal/config"
)

// Layout runes, one per column.
const (
	RuneGround      = '.'
	RuneSpike       = '^'
	RuneBlock       = '#'
	RuneRaisedBlock = '='
	RunePad         = 'p'
	RunePit         = '_'
	RuneFinish      = '|'
)

// ErrNoFinish is returned for a layout without a finish line.
var ErrNoFinish = errors.New("layout has no finish line")

// Course is a parsed hand-authored level. It is a Source for the world:
// columns past the layout are plain ground.
type Course struct {
	ID     string
	Name   string
	layout []rune
	finish int

	blockSize float64
	groundY   float64
}

// ParseCourse validates a level layout against the world geometry.
// The first SafeZone columns must be plain ground and the layout must contain
// exactly one finish line.
func ParseCourse(level config.Level, world config.World) (*Course, error) {
	layout := []rune(strings.TrimSpace(level.Layout))
	finish := -1

	for i, r := range layout {
		switch r {
		case RuneGround, RuneSpike, RuneBlock, RuneRaisedBlock, RunePad, RunePit:
		case RuneFinish:
			if finish >= 0 {
				return nil, fmt.Errorf("dogdash: level %q: second finish line at column %d", level.ID, i)
			}
			finish = i
		default:
			return nil, fmt.Errorf("dogdash: level %q: unknown rune %q at column %d", level.ID, r, i)
		}
		if i < world.SafeZone && r != RuneGround {
			return nil, fmt.Errorf("dogdash: level %q: column %d is inside the start zone", level.ID, i)
		}
	}
	if finish < 0 {
		return nil, fmt.Errorf("dogdash: level %q: %w", level.ID, ErrNoFinish)
	}

	return &Course{
		ID:        level.ID,
		Name:      level.Name,
		layout:    layout,
		finish:    finish,
		blockSize: world.BlockSize,
		groundY:   world.GroundY(),
	}, nil
}

// FinishColumn returns the column of the finish line.
func (c *Course) FinishColumn() int {
	return c.finish
}

// FinishX returns the finish line in world pixels.
func (c *Course) FinishX() float64 {
	return float64(c.finish) * c.blockSize
}

// Len returns the layout length in columns.
func (c *Course) Len() int {
	return len(c.layout)
}

// Fill implements Source.
func (c *Course) Fill(w *World, start, end int) {
	end = min(end, len(c.layout))
	for col := max(start, 0); col < end; col++ {
		x := float64(col) * c.blockSize
		ground := c.groundY - c.blockSize

		switch c.layout[col] {
		case RuneSpike:
			w.AddObstacle(Obstacle{Kind: KindSpike, X: x, Y: ground})
		case RuneBlock:
			w.AddObstacle(Obstacle{Kind: KindBlock, X: x, Y: ground})
		case RuneRaisedBlock:
			w.AddObstacle(Obstacle{Kind: KindBlock, X: x, Y: ground - c.blockSize})
		case RunePad:
			w.AddObstacle(Obstacle{Kind: KindPad, X: x, Y: ground})
		case RunePit:
			w.MarkPit(col)
		}
	}
}

// LoadCourses parses every configured level, in order.
func LoadCourses(cfg config.DogDashConfig) ([]*Course, error) {
	courses := make([]*Course, 0, len(cfg.Levels))
	seen := make(map[string]bool, len(cfg.Levels))
	for _, l := range cfg.Levels {
		if seen[l.ID] {
			return nil, fmt.Errorf("dogdash: duplicate level id %q", l.ID)
		}
		seen[l.ID] = true

		c, err := ParseCourse(l, cfg.World)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}
