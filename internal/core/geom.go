// Package core holds the types shared by the simulation and its frontends:
// geometry, input frames, events and the cell screen. It imports nothing
// outside the standard library so game logic stays testable on its own.
package core

import "math"

// Box is an axis-aligned box in world pixels, Y growing downwards.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewBox creates a box with its top-left corner at (x, y).
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Overlaps reports whether b and o share a positive area. Boxes that only
// touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Inset shrinks b by the given margin on each side.
func (b Box) Inset(left, top, right, bottom float64) Box {
	return Box{X: b.X + left, Y: b.Y + top, W: b.W - left - right, H: b.H - top - bottom}
}

// Rect is a rectangle of screen cells.
type Rect struct {
	X, Y, W, H int
}

// NewRect creates a rectangle with its top-left cell at (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the column just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the row just below the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// FloorDiv maps a pixel coordinate to its grid index.
func FloorDiv(v, unit float64) int {
	return int(math.Floor(v / unit))
}
