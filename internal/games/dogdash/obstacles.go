package dogdash

import (
	"fmt"

	"github.com/vovakirdan/dogdash/internal/core"
)

// Kind is the obstacle type. It decides how a collision resolves.
type Kind uint8

const (
	KindSpike Kind = iota + 1 // Lethal on touch
	KindBlock                 // Solid from above, lethal from the side or below
	KindPad                   // Launches the dog upward, never lethal
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case KindSpike:
		return "spike"
	case KindBlock:
		return "block"
	case KindPad:
		return "pad"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name for JSON snapshots.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Obstacle is a single course element, positioned by its top-left corner in
// world pixels. Obstacles are immutable once placed.
type Obstacle struct {
	Kind Kind    `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Column returns the world column the obstacle occupies.
func (o Obstacle) Column(blockSize float64) int {
	return core.FloorDiv(o.X, blockSize)
}

// Box returns the obstacle's full block-sized bounds.
func (o Obstacle) Box(blockSize float64) core.Box {
	return core.NewBox(o.X, o.Y, blockSize, blockSize)
}

// Hitbox returns the region that triggers this obstacle's collision rule.
// Spikes use a narrower box than their sprite; pads only react along their
// bottom strip.
func (o Obstacle) Hitbox(blockSize float64) core.Box {
	b := blockSize
	switch o.Kind {
	case KindSpike:
		return core.NewBox(o.X+b/4, o.Y+b/8, b/2, b-b/8)
	case KindPad:
		strip := b * 3 / 8
		return core.NewBox(o.X+b/8, o.Y+b-strip, b-b/4, strip)
	default:
		return o.Box(blockSize)
	}
}
